package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/kbaid4/testwecicada/internal/logging"
)

// ReferenceFunc returns every handle currently referenced by event metadata.
type ReferenceFunc func(ctx context.Context) (map[string]struct{}, error)

// Sweeper periodically deletes blobs that no event references. Blobs younger
// than the grace period are kept so that an upload whose metadata is still
// being saved is not collected.
type Sweeper struct {
	store BlobStore
	refs  ReferenceFunc
	grace time.Duration
	log   logging.Logger
	now   func() time.Time

	sched   *cron.Cron
	removed prometheus.Counter
	failed  prometheus.Counter
}

// NewSweeper registers its counters on reg when reg is non-nil.
func NewSweeper(store BlobStore, refs ReferenceFunc, grace time.Duration, log logging.Logger, reg prometheus.Registerer) *Sweeper {
	s := &Sweeper{
		store: store,
		refs:  refs,
		grace: grace,
		log:   log.With("component", "blob_sweeper"),
		now:   time.Now,
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wecicada",
			Subsystem: "storage",
			Name:      "orphans_removed_total",
			Help:      "Unreferenced blobs deleted by the sweeper.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wecicada",
			Subsystem: "storage",
			Name:      "sweep_failures_total",
			Help:      "Sweeper runs that could not complete.",
		}),
	}
	if reg != nil {
		reg.MustRegister(s.removed, s.failed)
	}
	return s
}

// Start schedules RunOnce with a standard cron spec or descriptor such as
// "@every 1h". Overlapping runs are skipped.
func (s *Sweeper) Start(spec string) error {
	s.sched = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := s.sched.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error(ctx, "sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("storage: sweep schedule %q: %w", spec, err)
	}
	s.sched.Start()
	s.log.Info(context.Background(), "sweeper started", "schedule", spec, "grace", s.grace.String())
	return nil
}

// Stop halts scheduling and returns a context that is done once any
// running sweep has finished.
func (s *Sweeper) Stop() context.Context {
	if s.sched == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return s.sched.Stop()
}

// RunOnce deletes every unreferenced blob older than the grace period and
// reports how many were removed.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	refs, err := s.refs(ctx)
	if err != nil {
		s.failed.Inc()
		return 0, fmt.Errorf("storage: sweep references: %w", err)
	}
	blobs, err := s.store.List(ctx)
	if err != nil {
		s.failed.Inc()
		return 0, err
	}

	cutoff := s.now().Add(-s.grace)
	removed := 0
	for _, b := range blobs {
		if _, ok := refs[b.Handle]; ok || b.ModTime.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, b.Handle); err != nil {
			s.log.Warn(ctx, "orphan delete failed", "handle", b.Handle, "error", err)
			continue
		}
		removed++
		s.removed.Inc()
	}
	if removed > 0 {
		s.log.Info(ctx, "orphans removed", "count", removed)
	}
	return removed, nil
}
