// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/notify"
	"github.com/Etherlyvan/movie-mate/internal/store"
)

const (
	// DefaultStaleAfter is how long a bookmark sits unwatched before a
	// reminder fires
	DefaultStaleAfter = 7 * 24 * time.Hour
)

// BookmarkReminder periodically nudges users about bookmarks they have
// not watched yet.
type BookmarkReminder struct {
	store      store.UserStore
	dispatcher *notify.Dispatcher
	logger     logger.Logger
	interval   time.Duration
	staleAfter time.Duration
	stopCh     chan struct{}
}

// NewBookmarkReminder creates a new reminder loop.
func NewBookmarkReminder(
	s store.UserStore,
	dispatcher *notify.Dispatcher,
	log logger.Logger,
	interval time.Duration,
	staleAfter time.Duration,
) *BookmarkReminder {
	if staleAfter == 0 {
		staleAfter = DefaultStaleAfter
	}

	return &BookmarkReminder{
		store:      s,
		dispatcher: dispatcher,
		logger:     log,
		interval:   interval,
		staleAfter: staleAfter,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the periodic reminder process
func (br *BookmarkReminder) Start(ctx context.Context) error {
	ticker := time.NewTicker(br.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := br.Run(ctx); err != nil {
					br.logger.Error("bookmark reminder sweep failed",
						logger.Error(err))
				}
			case <-br.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reminder loop
func (br *BookmarkReminder) Stop() {
	close(br.stopCh)
}

// Run performs one sweep: every user with bookmark reminders enabled and
// at least one bookmark older than staleAfter gets a single reminder push.
func (br *BookmarkReminder) Run(ctx context.Context) error {
	br.logger.Debug("running bookmark reminder sweep")

	ids, err := br.store.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	now := time.Now()
	sent := 0

	for _, id := range ids {
		u, err := br.store.GetUser(ctx, id)
		if err != nil {
			br.logger.Warn("failed to load user during reminder sweep",
				logger.String("user_id", id),
				logger.Error(err))
			continue
		}
		if !u.Preferences.Notifications.BookmarkReminders {
			continue
		}

		stale := 0
		oldest := ""
		for _, b := range u.Bookmarks {
			if now.Sub(b.DateAdded) < br.staleAfter {
				continue
			}
			stale++
			if oldest == "" {
				oldest = b.MovieTitle
			}
		}
		if stale == 0 {
			continue
		}

		outcome := br.dispatcher.SendToUser(ctx, id, notify.BuildPayload(reminderEvent(stale, oldest)))
		if outcome.Status == notify.StatusSent {
			sent++
		}
	}

	if sent > 0 {
		br.logger.Info("bookmark reminder sweep completed",
			logger.Int("users_scanned", len(ids)),
			logger.Int("reminders_sent", sent))
	}
	return nil
}

func reminderEvent(stale int, oldest string) notify.Event {
	body := fmt.Sprintf("%q is still waiting in your bookmarks.", oldest)
	if stale > 1 {
		body = fmt.Sprintf("%q and %d more movies are waiting in your bookmarks.", oldest, stale-1)
	}
	return notify.Custom{
		Title: "🍿 Movie Night?",
		Body:  body,
		URL:   "/bookmark",
		Tag:   "bookmark-reminder",
	}
}
