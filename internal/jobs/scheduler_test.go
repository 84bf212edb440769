package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPruner struct {
	pruned int64
	err    error
	calls  int
}

func (p *stubPruner) PruneExpired(_ context.Context) (int64, error) {
	p.calls++
	return p.pruned, p.err
}

func TestPruneRevokedInvokesPruner(t *testing.T) {
	pruner := &stubPruner{pruned: 3}
	s := NewScheduler(pruner, zerolog.Nop())

	s.pruneRevoked()
	assert.Equal(t, 1, pruner.calls)
}

func TestPruneRevokedSurvivesError(t *testing.T) {
	pruner := &stubPruner{err: errors.New("connection refused")}
	s := NewScheduler(pruner, zerolog.Nop())

	// Must not panic; the error is logged and the next run retries.
	s.pruneRevoked()
	assert.Equal(t, 1, pruner.calls)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&stubPruner{}, zerolog.Nop())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStartWithoutPrunerIsNoop(t *testing.T) {
	s := NewScheduler(nil, zerolog.Nop())
	require.NoError(t, s.Start())
}
