package types

import (
	"time"
)

// SourceTag identifies which adapter produced a snapshot. It is recorded
// for diagnostics only; trust between sources is decided by the
// reconciliation ladder, never re-derived from this tag.
type SourceTag string

const (
	SourceRemote SourceTag = "remote"
	SourceLocal  SourceTag = "local"
)

// TokenCounts holds the token counters reported for one session window.
type TokenCounts struct {
	InputTokens              int `json:"inputTokens"`
	OutputTokens             int `json:"outputTokens"`
	CacheCreationInputTokens int `json:"cacheCreationInputTokens"`
	CacheReadInputTokens     int `json:"cacheReadInputTokens"`
}

// QuotaTokens returns the tokens that count against the session quota.
// Cache reads are billed at a steep discount and are excluded.
func (tc TokenCounts) QuotaTokens() int {
	return tc.InputTokens + tc.OutputTokens + tc.CacheCreationInputTokens
}

// Snapshot is the normalized, source-agnostic result of one
// reconciliation cycle.
type Snapshot struct {
	// Percentage is the provider-reported utilization of the current
	// window, clamped to [0,100]. Nil when no source supplied one.
	Percentage *int `json:"percentage,omitempty"`
	// RemainingMinutes is the whole minutes until the window resets,
	// 0 when unknown or already elapsed.
	RemainingMinutes int `json:"remaining_minutes"`
	// Cost is the window cost in USD, 0 when the source has none.
	Cost float64 `json:"cost_usd"`
	// Tokens are the window's token counters (local source only).
	Tokens TokenCounts `json:"tokens"`
	// Source tags the adapter that produced this snapshot.
	Source SourceTag `json:"source"`
	// FetchedAt is when the cycle completed.
	FetchedAt time.Time `json:"fetched_at"`
}

// HasPercentage reports whether a utilization figure is present.
func (s Snapshot) HasPercentage() bool {
	return s.Percentage != nil
}

// Pct returns a Percentage pointer for literal values, clamped to [0,100].
func Pct(v int) *int {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return &v
}
