package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/vetfinder/internal/logger"
)

// countingFavorites counts Refresh calls.
type countingFavorites struct {
	FavoritesService
	refreshes atomic.Int64
}

func (c *countingFavorites) Refresh(context.Context) error {
	c.refreshes.Add(1)
	return nil
}

func TestReconcileJob_RefreshesOnTicks(t *testing.T) {
	favorites := &countingFavorites{}
	job := NewReconcileJob(favorites, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return favorites.refreshes.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestReconcileJob_StopHaltsRefreshing(t *testing.T) {
	favorites := &countingFavorites{}
	job := NewReconcileJob(favorites, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return favorites.refreshes.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	job.Stop()
	after := favorites.refreshes.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, favorites.refreshes.Load())
}

func TestReconcileJob_StopWithoutStartIsNoop(t *testing.T) {
	job := NewReconcileJob(&countingFavorites{}, logger.Nop())
	job.Stop()
}

func TestReconcileJob_RestartReplacesPreviousRun(t *testing.T) {
	favorites := &countingFavorites{}
	job := NewReconcileJob(favorites, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return favorites.refreshes.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)
}
