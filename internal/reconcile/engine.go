// Package reconcile merges the usage sources into one snapshot per
// cycle using a strict priority ladder.
package reconcile

import (
	"context"

	"github.com/sdpower/ccwatch-go/internal/source"
	"github.com/sdpower/ccwatch-go/internal/types"
	"go.uber.org/zap"
)

// Engine runs the two-source fallback ladder. Exactly one source's
// fragment is used per cycle; fields are never blended across sources.
type Engine struct {
	remote source.Source
	local  source.Source
	log    *zap.Logger
}

func New(remote, local source.Source, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{remote: remote, local: local, log: log}
}

// Reconcile produces the cycle's snapshot:
//
//  1. Remote source. A fragment carrying a percentage is final; the
//     local source is not consulted at all.
//  2. Local source. Any fragment is used as-is (percentage stays
//     absent).
//  3. Neither produced data: the cycle fails with a TerminalError. The
//     next scheduled tick retries naturally.
//
// The remote attempt strictly precedes the local one so a successful
// remote call never pays for a wasted subprocess spawn.
func (e *Engine) Reconcile(ctx context.Context) (types.Snapshot, error) {
	remote, remoteErr := e.remote.Fetch(ctx)
	if remoteErr != nil {
		e.log.Debug("reconcile: remote source unavailable", zap.Error(remoteErr))
	}
	if remote != nil && remote.HasPercentage() {
		return *remote, nil
	}

	local, localErr := e.local.Fetch(ctx)
	if localErr != nil {
		e.log.Debug("reconcile: local source unavailable", zap.Error(localErr))
	}
	if local != nil {
		return *local, nil
	}

	return types.Snapshot{}, &types.TerminalError{Remote: remoteErr, Local: localErr}
}
