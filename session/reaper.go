package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is how often the reaper sweeps expired sessions
const DefaultSweepInterval = 10 * time.Minute

// Reaper periodically sweeps expired session records. It runs alongside
// the request-handling goroutines; racing with lazy eviction on read is
// harmless since both end with the record removed.
type Reaper struct {
	store    *Store
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	log      *zap.SugaredLogger
}

// NewReaper creates a reaper for the given store
func NewReaper(store *Store, interval time.Duration, log *zap.SugaredLogger) *Reaper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Reaper{
		store:    store,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}
}

// Start begins the sweep loop
func (r *Reaper) Start() {
	r.wg.Add(1)
	go r.run()
	if r.log != nil {
		r.log.Infow("session reaper started", "interval", r.interval)
	}
}

// Stop gracefully stops the reaper
func (r *Reaper) Stop() {
	r.cancel()
	r.wg.Wait()
	if r.log != nil {
		r.log.Infow("session reaper stopped")
	}
}

func (r *Reaper) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			removed := r.store.Sweep()
			if removed > 0 && r.log != nil {
				r.log.Debugw("swept expired sessions", "removed", removed)
			}
		}
	}
}
