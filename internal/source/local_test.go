package source

import (
	"context"
	"testing"
	"time"

	"github.com/sdpower/ccwatch-go/internal/runner"
	"github.com/sdpower/ccwatch-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout string
	err    error

	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (*runner.Result, error) {
	f.gotName = name
	f.gotArgs = args
	if f.err != nil {
		return nil, f.err
	}
	return &runner.Result{Stdout: f.stdout}, nil
}

const activeBlockJSON = `{
	"blocks": [
		{"id": "2026-08-23T05:00:00Z", "isActive": false, "costUSD": 9.90},
		{
			"id": "2026-08-23T10:00:00Z",
			"isActive": true,
			"costUSD": 4.21,
			"tokenCounts": {
				"inputTokens": 10,
				"outputTokens": 5,
				"cacheCreationInputTokens": 3,
				"cacheReadInputTokens": 1000
			},
			"projection": {"remainingMinutes": 202.7}
		}
	]
}`

func TestLocalFetchActiveWindow(t *testing.T) {
	run := &fakeRunner{stdout: activeBlockJSON}
	s := NewLocal("", 30*time.Second, run, nil)

	snap, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "ccusage", run.gotName)
	assert.Equal(t, []string{"blocks", "--active", "--json"}, run.gotArgs)

	assert.False(t, snap.HasPercentage())
	assert.Equal(t, 4.21, snap.Cost)
	assert.Equal(t, 202, snap.RemainingMinutes)
	assert.Equal(t, "local", string(snap.Source))
}

func TestLocalFetchExcludesCacheReadTokens(t *testing.T) {
	run := &fakeRunner{stdout: activeBlockJSON}
	s := NewLocal("", 30*time.Second, run, nil)

	snap, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 18, snap.Tokens.QuotaTokens())
}

func TestLocalFetchNoActiveWindow(t *testing.T) {
	run := &fakeRunner{stdout: `{"blocks": [{"id": "old", "isActive": false}]}`}
	s := NewLocal("", 30*time.Second, run, nil)

	snap, err := s.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestLocalFetchMissingFieldsDefaultToZero(t *testing.T) {
	run := &fakeRunner{stdout: `{"blocks": [{"isActive": true}]}`}
	s := NewLocal("", 30*time.Second, run, nil)

	snap, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 0.0, snap.Cost)
	assert.Equal(t, 0, snap.RemainingMinutes)
	assert.Equal(t, 0, snap.Tokens.QuotaTokens())
}

func TestLocalFetchProcessError(t *testing.T) {
	run := &fakeRunner{err: &types.ProcessError{Command: "ccusage", Stderr: "no data directory"}}
	s := NewLocal("", 30*time.Second, run, nil)

	snap, err := s.Fetch(context.Background())
	assert.Error(t, err)
	assert.Nil(t, snap)
}

func TestLocalFetchMalformedOutput(t *testing.T) {
	run := &fakeRunner{stdout: "WARN: not json at all"}
	s := NewLocal("", 30*time.Second, run, nil)

	snap, err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)

	var pe *types.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestLocalCommandTemplateOverride(t *testing.T) {
	run := &fakeRunner{stdout: `{"blocks": []}`}
	s := NewLocal("npx ccusage@latest blocks --active --json", 30*time.Second, run, nil)

	_, _ = s.Fetch(context.Background())
	assert.Equal(t, "npx", run.gotName)
	assert.Equal(t, []string{"ccusage@latest", "blocks", "--active", "--json"}, run.gotArgs)
}
