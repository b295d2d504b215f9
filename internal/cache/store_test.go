package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	if err := InitRedis(mr.Addr(), "", 0); err != nil {
		t.Fatalf("init against test redis failed: %v", err)
	}
	t.Cleanup(func() { rdb = nil })
	return mr
}

func TestFailedInitLeavesCacheDisabled(t *testing.T) {
	if err := InitRedis("127.0.0.1:1", "", 0); err == nil {
		t.Fatal("expected init against a closed port to fail")
	}
	if GetRedisClient() != nil {
		t.Fatal("failed init must not install a client")
	}

	// degraded mode: reads miss, writes drop, the limiter fails open
	var out string
	if GetJSON("k", &out) {
		t.Error("GetJSON should miss without redis")
	}
	SetJSON("k", "v", time.Minute)
	if !Allow("rate:test", 1, time.Minute) {
		t.Error("limiter should fail open without redis")
	}
	if !Allow("rate:test", 1, time.Minute) {
		t.Error("limiter should stay open without redis")
	}
}

func TestAllowEnforcesWindowLimit(t *testing.T) {
	mr := startRedis(t)

	for i := 0; i < 3; i++ {
		if !Allow("rate:create", 3, time.Minute) {
			t.Fatalf("call %d should be within limit", i+1)
		}
	}
	if Allow("rate:create", 3, time.Minute) {
		t.Error("fourth call in the window should be denied")
	}

	mr.FastForward(time.Minute)
	if !Allow("rate:create", 3, time.Minute) {
		t.Error("new window should allow again")
	}
}

func TestAllowBoundaryAdmitsExactlyOne(t *testing.T) {
	startRedis(t)

	for i := 0; i < 4; i++ {
		if !Allow("rate:edge", 5, time.Minute) {
			t.Fatalf("warm-up call %d denied", i+1)
		}
	}

	// two callers racing at count 4 with max 5: INCR hands out 5 and 6,
	// so exactly one passes
	first := Allow("rate:edge", 5, time.Minute)
	second := Allow("rate:edge", 5, time.Minute)
	if !first || second {
		t.Errorf("boundary admitted first=%v second=%v, want true/false", first, second)
	}
}

func TestOfficialCacheRoundTrip(t *testing.T) {
	startRedis(t)

	type profile struct{ Name string }
	SetOfficial("abc", profile{Name: "Mayor"})

	var got profile
	if !GetOfficial("abc", &got) || got.Name != "Mayor" {
		t.Errorf("cached profile = %+v", got)
	}

	InvalidateOfficial("abc")
	if GetOfficial("abc", &got) {
		t.Error("invalidated profile still served")
	}
}
