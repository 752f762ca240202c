package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RefreshScheduler drives the feed: once at startup and again at the top of
// every clock hour, checked at one-second granularity.
type RefreshScheduler struct {
	feed *Feed
	now  func() time.Time
	tick time.Duration
}

func NewRefreshScheduler(feed *Feed) *RefreshScheduler {
	return &RefreshScheduler{feed: feed, now: time.Now, tick: time.Second}
}

// Start runs the schedule until ctx is cancelled. The initial refresh happens
// inline on the spawned goroutine; failures are logged and the next trigger
// tries again.
func (s *RefreshScheduler) Start(ctx context.Context) {
	go func() {
		s.safeRefresh(ctx)

		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()

		var lastFired time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := s.now()
				if !s.atTopOfHour(now, lastFired) {
					continue
				}
				lastFired = now
				s.safeRefresh(ctx)
			}
		}
	}()
}

// safeRefresh recovers per invocation so a panicking refresh costs that
// cycle, never the loop.
func (s *RefreshScheduler) safeRefresh(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("scheduler: refresh panicked")
		}
	}()
	s.refresh(ctx)
}

// atTopOfHour fires when the wall clock reads minute zero, second zero. The
// lastFired guard keeps a single trigger per hour even if ticks drift inside
// the same second.
func (s *RefreshScheduler) atTopOfHour(now, lastFired time.Time) bool {
	if now.Minute() != 0 || now.Second() != 0 {
		return false
	}
	return lastFired.IsZero() || now.Sub(lastFired) > time.Minute
}

func (s *RefreshScheduler) refresh(ctx context.Context) {
	update, err := s.feed.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("scheduler: refresh failed")
		return
	}
	log.Info().
		Str("id", update.ID).
		Str("urgency", string(update.Urgency)).
		Msg("scheduler: update refreshed")
}
