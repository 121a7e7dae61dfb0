package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tsymba/refurbwatch/internal/config"
	"github.com/tsymba/refurbwatch/internal/models"
	"github.com/tsymba/refurbwatch/internal/notifier"
	"github.com/tsymba/refurbwatch/internal/parser"
)

// Dispatcher accepts fire-and-forget tasks. Task results are never observed.
type Dispatcher interface {
	Submit(task func()) bool
}

// Watcher is an orchestrator that polls the listing page, dedups matches
// against the seen-set and dispatches notifications for new listings.
type Watcher struct {
	log          *slog.Logger
	parser       parser.HTMLParser
	notifier     notifier.Notifier
	pool         Dispatcher
	terms        []string
	pollInterval time.Duration
	retryDelay   time.Duration
	notify       bool
	dedupByLink  bool

	// seen is written by the poll loop and read by the /status handler,
	// hence the lock.
	mu   sync.RWMutex
	seen map[string]struct{}
}

type Interface interface {
	// Run polls until the context is canceled.
	Run(ctx context.Context)
	// RunCycle performs one fetch/filter/dedup/dispatch pass and returns
	// the number of matching listings encountered.
	RunCycle(ctx context.Context) (int, error)
	// SeenCount returns the size of the seen-set.
	SeenCount() int
}

// NewWatcher creates a new Watcher instance with an empty seen-set.
func NewWatcher(
	log *slog.Logger,
	htmlParser parser.HTMLParser,
	ntf notifier.Notifier,
	pool Dispatcher,
	cfg *config.Config,
) *Watcher {
	return &Watcher{
		log:          log,
		parser:       htmlParser,
		notifier:     ntf,
		pool:         pool,
		terms:        cfg.Terms,
		pollInterval: cfg.PollInterval,
		retryDelay:   cfg.RetryDelay,
		notify:       cfg.Notify,
		dedupByLink:  cfg.DedupByLink,
		seen:         make(map[string]struct{}),
	}
}

// Run drives the poll loop until the context is canceled. A failed cycle
// sleeps the retry delay and starts over; a successful one sleeps the poll
// interval.
func (w *Watcher) Run(ctx context.Context) {
	const opn = "watcher.Run"
	log := w.log.With("op", opn)

	for {
		if ctx.Err() != nil {
			log.InfoContext(ctx, "Watcher stopped")
			return
		}

		matched, err := w.RunCycle(ctx)
		if err != nil {
			log.WarnContext(ctx, "Cycle failed, retrying", "error", err, "retry_in", w.retryDelay)
			if !sleepCtx(ctx, w.retryDelay) {
				log.InfoContext(ctx, "Watcher stopped")
				return
			}
			continue
		}

		log.InfoContext(ctx, "Cycle complete",
			"matched", matched, "seen", w.SeenCount(), "sleep", w.pollInterval)
		if !sleepCtx(ctx, w.pollInterval) {
			log.InfoContext(ctx, "Watcher stopped")
			return
		}
	}
}

// RunCycle performs one full pass: fetch the page, extract matching listings,
// log each one, and dispatch a notification per listing not seen before. It
// returns the number of matching listings. On error nothing is added to the
// seen-set and nothing is dispatched.
func (w *Watcher) RunCycle(ctx context.Context) (int, error) {
	const opn = "watcher.RunCycle"
	log := w.log.With("op", opn)

	resp, err := w.parser.GetHTMLResponse(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get html response: %w", opn, err)
	}
	defer resp.Body.Close()

	listings, err := w.parser.MatchingListings(ctx, resp.Body, w.terms)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to extract listings: %w", opn, err)
	}

	for _, listing := range listings {
		// Every matching listing is logged each cycle, novel or not.
		log.InfoContext(ctx, "Listing", "title", listing.Title,
			"price", listing.Price, "specs", listing.Specs, "link", listing.Link)

		if !w.markSeen(listing.Key(w.dedupByLink)) {
			continue
		}

		if w.notify && w.notifier != nil {
			w.dispatch(ctx, listing)
		}
	}

	return len(listings), nil
}

// SeenCount returns the number of distinct listings seen since start.
func (w *Watcher) SeenCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.seen)
}

// markSeen inserts the key into the seen-set and reports whether it was new.
func (w *Watcher) markSeen(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[key]; ok {
		return false
	}
	w.seen[key] = struct{}{}

	return true
}

// dispatch hands the listing to the worker pool. The loop never waits for or
// observes the outcome; a failed send is logged by the worker.
func (w *Watcher) dispatch(ctx context.Context, listing models.Listing) {
	w.pool.Submit(func() {
		if err := w.notifier.Notify(ctx, listing); err != nil {
			w.log.ErrorContext(ctx, "Failed to dispatch notification",
				"title", listing.Title, "error", err)
		}
	})
}

// sleepCtx sleeps for d unless the context is canceled first. It reports
// whether the full duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
