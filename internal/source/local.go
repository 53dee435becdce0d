package source

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sdpower/ccwatch-go/internal/runner"
	"github.com/sdpower/ccwatch-go/internal/types"
	"go.uber.org/zap"
)

// DefaultLocalCommand asks the accounting CLI for the presently active
// window only, in JSON.
const DefaultLocalCommand = "ccusage blocks --active --json"

// CommandRunner is the subprocess contract the local adapter needs.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (*runner.Result, error)
}

// blocksReport mirrors the accounting CLI's JSON output.
type blocksReport struct {
	Blocks []windowBlock `json:"blocks"`
}

type windowBlock struct {
	ID          string            `json:"id"`
	IsActive    bool              `json:"isActive"`
	CostUSD     float64           `json:"costUSD"`
	TokenCounts types.TokenCounts `json:"tokenCounts"`
	Projection  *blockProjection  `json:"projection"`
}

type blockProjection struct {
	RemainingMinutes float64 `json:"remainingMinutes"`
}

// Local derives usage from the local accounting CLI. It never produces a
// percentage: the old reverse-engineered quota formula was dropped as
// too inaccurate, and the tool itself reports none.
type Local struct {
	name    string
	args    []string
	timeout time.Duration

	runner CommandRunner
	log    *zap.Logger
	now    func() time.Time
}

// NewLocal builds the local adapter from a command template string
// (program name plus fixed flags).
func NewLocal(command string, timeout time.Duration, run CommandRunner, log *zap.Logger) *Local {
	if command == "" {
		command = DefaultLocalCommand
	}
	if run == nil {
		run = runner.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	parts := strings.Fields(command)
	if len(parts) == 0 {
		parts = strings.Fields(DefaultLocalCommand)
	}
	return &Local{
		name:    parts[0],
		args:    parts[1:],
		timeout: timeout,
		runner:  run,
		log:     log,
		now:     time.Now,
	}
}

func (s *Local) Name() types.SourceTag {
	return types.SourceLocal
}

// Fetch runs the accounting CLI and extracts the active window. Cost and
// the remaining-minutes projection are taken as-is from the tool, never
// recomputed. A missing active window is a soft failure; malformed
// individual fields simply decode to zero.
func (s *Local) Fetch(ctx context.Context) (*types.Snapshot, error) {
	res, err := s.runner.Run(ctx, s.name, s.args, s.timeout)
	if err != nil {
		s.log.Warn("local: command failed", zap.String("command", s.name), zap.Error(err))
		return nil, err
	}

	var report blocksReport
	if err := json.Unmarshal([]byte(res.Stdout), &report); err != nil {
		s.log.Debug("local: malformed output", zap.Error(err))
		return nil, &types.ParseError{Source: types.SourceLocal, Err: err}
	}

	block, ok := activeBlock(report.Blocks)
	if !ok {
		s.log.Debug("local: no active window")
		return nil, nil
	}

	snap := &types.Snapshot{
		Cost:      block.CostUSD,
		Tokens:    block.TokenCounts,
		Source:    types.SourceLocal,
		FetchedAt: s.now(),
	}
	if block.Projection != nil && block.Projection.RemainingMinutes > 0 {
		snap.RemainingMinutes = int(block.Projection.RemainingMinutes)
	}
	return snap, nil
}

func activeBlock(blocks []windowBlock) (windowBlock, bool) {
	for _, b := range blocks {
		if b.IsActive {
			return b, true
		}
	}
	return windowBlock{}, false
}
