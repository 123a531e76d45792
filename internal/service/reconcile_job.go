// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/vetfinder/internal/logger"
)

// ReconcileJob periodically refreshes the favorites cache from the
// authoritative remote set, repairing any drift an optimistic update left
// behind.
type ReconcileJob interface {
	// Start launches the background refresh loop. A previous run is
	// stopped first. interval defaults to 5 minutes when non-positive.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the loop and blocks until it has exited. Safe to call
	// when the job is not running.
	Stop()
}

type reconcileJob struct {
	favorites FavoritesService
	log       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReconcileJob creates a [ReconcileJob] over favorites. The job is idle
// until Start is called.
func NewReconcileJob(favorites FavoritesService, log *logger.Logger) ReconcileJob {
	return &reconcileJob{favorites: favorites, log: log}
}

func (j *reconcileJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				err := j.favorites.Refresh(jobCtx)
				switch {
				case err == nil:
				case errors.Is(err, ErrNotSignedIn):
					// Nothing to reconcile until sign-in.
				default:
					j.log.Warn().Err(err).Msg("favorites reconcile failed")
				}
			}
		}
	}()
}

func (j *reconcileJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
