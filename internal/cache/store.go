package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// TTLs for the read-heavy surfaces. Official profiles are viewed far more
// often than rated, but averages are written through on every rating
// mutation, so a longer TTL is safe.
const (
	LeaderboardTTL     = 30 * time.Second
	OfficialProfileTTL = 5 * time.Minute
)

func leaderboardKey(limit int) string {
	return fmt.Sprintf("leaderboard:%d", limit)
}

func officialKey(officialID string) string {
	return "official:" + officialID
}

// GetJSON reads a cached JSON value into dest, returning false on miss or
// when Redis is unavailable
func GetJSON(key string, dest interface{}) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// SetJSON caches a JSON value with a TTL, best effort
func SetJSON(key string, value interface{}, ttl time.Duration) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	rdb.Set(ctx, key, raw, ttl)
}

// GetLeaderboard reads the cached leaderboard payload for a limit
func GetLeaderboard(limit int, dest interface{}) bool {
	return GetJSON(leaderboardKey(limit), dest)
}

// SetLeaderboard caches a leaderboard payload
func SetLeaderboard(limit int, value interface{}) {
	SetJSON(leaderboardKey(limit), value, LeaderboardTTL)
}

// GetOfficial reads a cached official profile
func GetOfficial(officialID string, dest interface{}) bool {
	return GetJSON(officialKey(officialID), dest)
}

// SetOfficial caches an official profile
func SetOfficial(officialID string, value interface{}) {
	SetJSON(officialKey(officialID), value, OfficialProfileTTL)
}

// InvalidateOfficial drops the cached profile after an average recompute
func InvalidateOfficial(officialID string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, officialKey(officialID))
}

// Allow increments a fixed-window rate-limit counter and reports whether
// the action is still within limit. The INCR runs first and the decision
// acts on its returned value, so concurrent callers at the boundary
// cannot both slip through. Redis being down fails open so the limiter
// can never take the API with it.
func Allow(key string, max int, window time.Duration) bool {
	if rdb == nil {
		return true
	}

	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if n == 1 {
		rdb.Expire(ctx, key, window)
	}
	return n <= int64(max)
}
