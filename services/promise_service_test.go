package services

import (
	"testing"

	"civichub/models"
)

func evidenceMix(supporting, opposing int) []models.Evidence {
	var out []models.Evidence
	for i := 0; i < supporting; i++ {
		out = append(out, models.Evidence{Status: models.EvidenceSupporting})
	}
	for i := 0; i < opposing; i++ {
		out = append(out, models.Evidence{Status: models.EvidenceOpposing})
	}
	return out
}

func TestInferStatus(t *testing.T) {
	tests := []struct {
		name       string
		supporting int
		opposing   int
		want       string
	}{
		{"no evidence", 0, 0, models.PromiseStatusUnverified},
		{"below threshold", 2, 0, models.PromiseStatusInProgress},
		{"kept at threshold", 3, 1, models.PromiseStatusKept},
		{"broken at threshold", 1, 3, models.PromiseStatusBroken},
		{"tie stays in progress", 3, 3, models.PromiseStatusInProgress},
		{"single opposing", 0, 1, models.PromiseStatusInProgress},
		{"strong majority kept", 7, 2, models.PromiseStatusKept},
	}
	for _, tt := range tests {
		got := InferStatus(evidenceMix(tt.supporting, tt.opposing))
		if got != tt.want {
			t.Errorf("%s (%d/%d): status = %s, want %s", tt.name, tt.supporting, tt.opposing, got, tt.want)
		}
	}
}

func TestInferStatusIgnoresUnknownStances(t *testing.T) {
	evidence := append(evidenceMix(3, 0), models.Evidence{Status: "disputed"})
	if got := InferStatus(evidence); got != models.PromiseStatusKept {
		t.Errorf("unknown stance should not block a verdict, got %s", got)
	}
}
