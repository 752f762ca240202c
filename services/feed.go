package services

import (
	"context"
	"sync"
	"sync/atomic"

	"wirewatch/models"
)

// Feed holds the update currently on display. Each refresh supersedes the
// previous update wholesale; nothing is merged and nothing is persisted.
type Feed struct {
	fetcher *ContentFetcher

	mu      sync.RWMutex
	current *models.Update

	refreshing atomic.Bool
}

func NewFeed(fetcher *ContentFetcher) *Feed {
	return &Feed{fetcher: fetcher}
}

// Current returns the displayed update, or nil before the first successful
// refresh.
func (f *Feed) Current() *models.Update {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Refresh fetches a new update and assigns it. Overlapping refreshes are
// tolerated; assignment order decides which result wins.
func (f *Feed) Refresh(ctx context.Context) (*models.Update, error) {
	f.refreshing.Store(true)
	defer f.refreshing.Store(false)

	update, err := f.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.current = update
	f.mu.Unlock()
	return update, nil
}

// Refreshing reports whether a refresh is in flight. Advisory only: callers
// use it to suppress redundant manual triggers, not as mutual exclusion.
func (f *Feed) Refreshing() bool {
	return f.refreshing.Load()
}
