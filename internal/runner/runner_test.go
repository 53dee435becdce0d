package runner

import (
	"context"
	"testing"
	"time"

	"github.com/sdpower/ccwatch-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	r := New()
	res, err := r.Run(context.Background(), "sh", []string{"-c", "echo hello; echo oops >&2"}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, "oops\n", res.Stderr)
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	r := New()
	start := time.Now()
	_, err := r.Run(context.Background(), "sh", []string{"-c", "sleep 5"}, 200*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, err)
	var te *types.TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "sh", te.Command)
	// Must resolve near the deadline, not after the sleep finishes.
	assert.Less(t, elapsed, 3*time.Second)
}

func TestRunNonZeroExit(t *testing.T) {
	r := New()
	_, err := r.Run(context.Background(), "sh", []string{"-c", "echo boom >&2; exit 3"}, 5*time.Second)

	var pe *types.ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Stderr)
}

func TestRunMissingBinary(t *testing.T) {
	r := New()
	_, err := r.Run(context.Background(), "definitely-not-a-real-binary", nil, time.Second)

	var pe *types.ProcessError
	require.ErrorAs(t, err, &pe)
}
