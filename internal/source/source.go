// Package source contains the usage data adapters. Each adapter turns
// one unreliable upstream (the remote usage endpoint, the local
// accounting CLI) into a normalized types.Snapshot, or reports that no
// data is available this cycle.
package source

import (
	"context"
	"time"

	"github.com/sdpower/ccwatch-go/internal/types"
)

// Source is one usage data provider. Fetch returns (nil, nil) on a soft
// failure (source has no data right now) and (nil, err) on a hard one;
// the reconciliation engine treats both as "fall back", the error is for
// diagnostics only.
type Source interface {
	Name() types.SourceTag
	Fetch(ctx context.Context) (*types.Snapshot, error)
}

// remainingMinutes converts a reset instant into whole minutes from now,
// floored, never negative.
func remainingMinutes(resetsAt, now time.Time) int {
	mins := int(resetsAt.Sub(now).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}
