package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	// DefaultInterval matches the original application's 16 ms cadence.
	DefaultInterval = 16 * time.Millisecond
	DefaultDt       = 0.016
)

// Sampler drives a World at a fixed cadence: every interval it advances
// the physics and pushes the resulting snapshot to its output channel.
// The lock is never held while waiting out the inter-tick delay or while
// delivering a snapshot.
type Sampler struct {
	world    *World
	interval time.Duration
	dt       float64
	substeps int
	log      *slog.Logger
}

func NewSampler(w *World, interval time.Duration, dt float64, substeps int, log *slog.Logger) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if dt <= 0 {
		dt = DefaultDt
	}
	if substeps < 1 {
		substeps = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sampler{world: w, interval: interval, dt: dt, substeps: substeps, log: log}
}

// Run ticks until the context is cancelled or the world is closed,
// emitting one snapshot per tick on out. Degenerate dynamics never stop
// the loop; the integrator freezes the chain instead of erroring. Run
// does not close out.
func (s *Sampler) Run(ctx context.Context, out chan<- Snapshot) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("sampler started",
		"interval", s.interval, "dt", s.dt, "substeps", s.substeps)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sampler stopped", "reason", "context cancelled")
			return ctx.Err()
		case <-ticker.C:
		}

		snap, err := s.world.Step(s.dt, s.substeps)
		if err != nil {
			if errors.Is(err, ErrWorldClosed) {
				s.log.Info("sampler stopped", "reason", "world closed")
				return nil
			}
			return err
		}

		select {
		case out <- snap:
		case <-ctx.Done():
			s.log.Info("sampler stopped", "reason", "context cancelled")
			return ctx.Err()
		}
	}
}
