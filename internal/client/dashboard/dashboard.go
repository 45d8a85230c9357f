// Package dashboard is the staff console's model of the CMS: the last fetched
// copy of every collection, the counters derived from it, a poller that keeps
// it fresh, and the moderation and editing actions.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/client/services"
	"github.com/dmitrijs2005/casiec/internal/client/toast"
	"github.com/dmitrijs2005/casiec/internal/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultPollInterval is how often the poller refreshes every collection.
const DefaultPollInterval = 10 * time.Second

// Snapshot is the dashboard's view of the backend at UpdatedAt. A collection
// that failed to load is empty.
type Snapshot struct {
	Articles     []models.Article
	Applications []models.Application
	Inquiries    []models.Inquiry
	Ticker       []models.TickerItem
	Carousel     []models.CarouselItem
	Campaigns    []models.Campaign
	Team         []models.TeamMember
	UpdatedAt    time.Time
}

// UnreadInquiries counts inquiries that are Unread and were never opened.
func (s Snapshot) UnreadInquiries() int {
	n := 0
	for _, i := range s.Inquiries {
		if i.Unread() {
			n++
		}
	}
	return n
}

func (s Snapshot) PendingApplications() int {
	n := 0
	for _, a := range s.Applications {
		if a.Status == models.StatusPending {
			n++
		}
	}
	return n
}

func (s Snapshot) Application(id string) (models.Application, bool) {
	for _, a := range s.Applications {
		if a.ID == id {
			return a, true
		}
	}
	return models.Application{}, false
}

func (s Snapshot) Inquiry(id string) (models.Inquiry, bool) {
	for _, i := range s.Inquiries {
		if i.ID == id {
			return i, true
		}
	}
	return models.Inquiry{}, false
}

type Dashboard struct {
	content      services.ContentService
	applications services.ApplicationService
	inquiries    services.InquiryService
	notifier     toast.Notifier
	logger       logging.Logger
	interval     time.Duration

	// reports whether a staff session is still held; nil means always
	authenticated func() bool

	mu        sync.RWMutex
	snap      Snapshot
	started   uint64 // refreshes begun
	storedSeq uint64 // sequence number of snap

	pollMu sync.Mutex
	stop   context.CancelFunc
	done   chan struct{}
}

type Option func(*Dashboard)

// WithSessionCheck makes the poller stop itself once authenticated reports
// false, e.g. after a failed token refresh cleared the session.
func WithSessionCheck(authenticated func() bool) Option {
	return func(d *Dashboard) { d.authenticated = authenticated }
}

// New builds a dashboard. A non-positive interval means DefaultPollInterval.
func New(
	content services.ContentService,
	applications services.ApplicationService,
	inquiries services.InquiryService,
	notifier toast.Notifier,
	logger logging.Logger,
	interval time.Duration,
	opts ...Option,
) *Dashboard {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	d := &Dashboard{
		content:      content,
		applications: applications,
		inquiries:    inquiries,
		notifier:     notifier,
		logger:       logger,
		interval:     interval,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap
}

// fetch loads one collection into dst. A failure is logged and toasted and
// leaves dst empty; it never fails the refresh.
func fetch[T any](ctx context.Context, d *Dashboard, name string, dst *[]T, load func(context.Context) ([]T, error)) func() error {
	return func() error {
		items, err := load(ctx)
		if err != nil {
			d.logger.Warn(ctx, "dashboard collection unavailable", "collection", name, "error", err)
			// a lost session gets one notice from the poller, not one per collection
			if !errors.Is(err, client.ErrUnauthorized) {
				d.notifier.Error(fmt.Sprintf("Could not load %s.", name))
			}
			items = nil
		}
		*dst = items
		return nil
	}
}

// Refresh reloads all seven collections concurrently and replaces the
// snapshot, unless a refresh begun later has already stored one. It returns
// the snapshot in place afterwards.
func (d *Dashboard) Refresh(ctx context.Context) Snapshot {
	d.mu.Lock()
	d.started++
	seq := d.started
	d.mu.Unlock()

	var next Snapshot

	var g errgroup.Group
	g.Go(fetch(ctx, d, "articles", &next.Articles, d.content.Articles))
	g.Go(fetch(ctx, d, "applications", &next.Applications, d.applications.List))
	g.Go(fetch(ctx, d, "inquiries", &next.Inquiries, d.inquiries.List))
	g.Go(fetch(ctx, d, "ticker", &next.Ticker, d.content.Ticker))
	g.Go(fetch(ctx, d, "carousel", &next.Carousel, d.content.Carousel))
	g.Go(fetch(ctx, d, "campaigns", &next.Campaigns, d.content.Campaigns))
	g.Go(fetch(ctx, d, "team", &next.Team, d.content.Team))
	_ = g.Wait()

	next.UpdatedAt = time.Now()

	d.mu.Lock()
	if seq < d.storedSeq {
		cur := d.snap
		d.mu.Unlock()
		d.logger.Debug(ctx, "discarding superseded dashboard refresh", "seq", seq)
		return cur
	}
	d.snap, d.storedSeq = next, seq
	d.mu.Unlock()

	d.logger.Debug(ctx, "dashboard refreshed",
		"articles", len(next.Articles), "applications", len(next.Applications),
		"inquiries", len(next.Inquiries), "pending", next.PendingApplications(),
		"unread", next.UnreadInquiries())
	return next
}

// Start refreshes once and then every interval until ctx ends, Stop is
// called or the session check fails. Starting a running poller is a no-op.
func (d *Dashboard) Start(ctx context.Context) {
	d.pollMu.Lock()
	defer d.pollMu.Unlock()
	if d.stop != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.stop, d.done = cancel, done

	go func() {
		defer close(done)
		if !d.poll(ctx) {
			d.halt(ctx, done)
			return
		}

		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !d.poll(ctx) {
					d.halt(ctx, done)
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (d *Dashboard) sessionLive() bool {
	return d.authenticated == nil || d.authenticated()
}

// poll runs one refresh and reports whether polling should go on.
func (d *Dashboard) poll(ctx context.Context) bool {
	if !d.sessionLive() {
		return false
	}
	d.Refresh(ctx)
	return ctx.Err() != nil || d.sessionLive()
}

// halt is the poller stopping itself. done identifies the poller so a newer
// one started in the meantime is left alone.
func (d *Dashboard) halt(ctx context.Context, done chan struct{}) {
	d.logger.Info(ctx, "session lost, dashboard poller stopped")
	d.notifier.Info("Your session has ended. Please sign in again.")

	d.pollMu.Lock()
	if d.done == done {
		d.stop()
		d.stop, d.done = nil, nil
	}
	d.pollMu.Unlock()
}

// Stop halts the poller and waits for an in-flight refresh to finish.
func (d *Dashboard) Stop() {
	d.pollMu.Lock()
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.pollMu.Unlock()

	if stop == nil {
		return
	}
	stop()
	<-done
}

func (d *Dashboard) Running() bool {
	d.pollMu.Lock()
	defer d.pollMu.Unlock()
	return d.stop != nil
}

// act runs op, toasts the outcome and refreshes on success. The error toast
// carries the backend's message when there is one.
func (d *Dashboard) act(ctx context.Context, success, failure string, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		d.logger.Warn(ctx, "dashboard action failed", "action", failure, "error", err)
		d.notifier.Error(client.Message(err, failure))
		return err
	}
	d.notifier.Success(success)
	d.Refresh(ctx)
	return nil
}
