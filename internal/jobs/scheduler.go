package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Pruner drops revocation entries whose embedded token expiry has passed.
type Pruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

// Scheduler runs the revocation-registry compaction. Pruning only bounds
// storage: an expired token is rejected by the verifier before the registry
// is consulted, so correctness never depends on this job.
type Scheduler struct {
	cron        *cron.Cron
	revocations Pruner
	log         zerolog.Logger
}

func NewScheduler(revocations Pruner, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		revocations: revocations,
		log:         log,
	}
}

func (s *Scheduler) Start() error {
	if s.revocations == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 3 * * *", s.pruneRevoked); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for any running job to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) pruneRevoked() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pruned, err := s.revocations.PruneExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("prune revoked tokens failed")
		return
	}
	if pruned > 0 {
		s.log.Info().Int64("pruned", pruned).Msg("revocation registry compacted")
	}
}
