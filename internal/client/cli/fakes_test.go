package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/casiec/internal/client/dashboard"
	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/client/services"
	"github.com/dmitrijs2005/casiec/internal/client/toast"
	"github.com/dmitrijs2005/casiec/internal/client/views"
	"github.com/dmitrijs2005/casiec/internal/client/wizard"
)

type fakeAuth struct {
	authenticated bool

	loginEmail, loginPassword string
	loginResult               services.LoginResult
	loginErr                  error

	verifyEmail, verifyCode string
	verifyErr               error

	logouts int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (services.LoginResult, error) {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr == nil && !f.loginResult.RequiresOTP {
		f.authenticated = true
	}
	return f.loginResult, f.loginErr
}

func (f *fakeAuth) Verify2FA(_ context.Context, email, code string) error {
	f.verifyEmail, f.verifyCode = email, code
	if f.verifyErr == nil {
		f.authenticated = true
	}
	return f.verifyErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.authenticated = false
	return nil
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated }

type fakeContent struct {
	services.ContentService

	team    []models.TeamMember
	teamErr error
	article models.Article
}

func (f *fakeContent) Team(context.Context) ([]models.TeamMember, error) { return f.team, f.teamErr }
func (f *fakeContent) Ticker(context.Context) ([]models.TickerItem, error) {
	return []models.TickerItem{{Text: "NGX up 2%", Category: models.TickerMarket}}, nil
}
func (f *fakeContent) Carousel(context.Context) ([]models.CarouselItem, error) { return nil, nil }
func (f *fakeContent) Article(_ context.Context, id string) (models.Article, error) {
	a := f.article
	a.ID = id
	return a, nil
}

type fakeInquiries struct {
	services.InquiryService

	sent         []models.ContactMessage
	subscribed   []string
	subscribeErr error
}

func (f *fakeInquiries) Send(_ context.Context, msg models.ContactMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeInquiries) Subscribe(_ context.Context, email string) error {
	f.subscribed = append(f.subscribed, email)
	return f.subscribeErr
}

type statusCall struct {
	category models.Category
	id       string
	status   models.ApplicationStatus
}

type fakeBoard struct {
	Board

	mu        sync.Mutex
	snap      dashboard.Snapshot
	running   bool
	starts    int
	stops     int
	refreshes int

	savedArticle *models.Article
	savedImage   *models.Image
	ticker       []models.TickerItem
	statuses     []statusCall
	opened       []string
}

func (f *fakeBoard) Snapshot() dashboard.Snapshot { return f.snap }
func (f *fakeBoard) Refresh(context.Context) dashboard.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	f.snap.UpdatedAt = time.Now()
	return f.snap
}
func (f *fakeBoard) Start(context.Context) { f.starts++; f.running = true }
func (f *fakeBoard) Stop() {
	if f.running {
		f.stops++
	}
	f.running = false
}
func (f *fakeBoard) Running() bool { return f.running }

func (f *fakeBoard) SaveArticle(_ context.Context, a models.Article, img *models.Image) error {
	f.savedArticle, f.savedImage = &a, img
	return nil
}
func (f *fakeBoard) PostTicker(_ context.Context, text string, c models.TickerCategory) error {
	f.ticker = append(f.ticker, models.TickerItem{Text: text, Category: c, IsManual: true})
	return nil
}
func (f *fakeBoard) UpdateApplicationStatus(_ context.Context, c models.Category, id string, s models.ApplicationStatus) error {
	f.statuses = append(f.statuses, statusCall{category: c, id: id, status: s})
	return nil
}
func (f *fakeBoard) OpenInquiry(_ context.Context, id string) (models.Inquiry, error) {
	f.opened = append(f.opened, id)
	in, _ := f.snap.Inquiry(id)
	return in, nil
}

type fakeSubmitter struct {
	errs     []error
	calls    int
	category models.Category
	payload  models.ApplicationPayload
}

func (f *fakeSubmitter) Submit(_ context.Context, c models.Category, p models.ApplicationPayload) error {
	f.calls++
	f.category, f.payload = c, p
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

type fixture struct {
	app       *App
	auth      *fakeAuth
	content   *fakeContent
	inquiries *fakeInquiries
	board     *fakeBoard
	submitter *fakeSubmitter
	router    *views.Router
	toasts    *toast.Queue
	wizard    *wizard.Wizard
	out       *bytes.Buffer
	printed   *[]string
}

// newFixture builds an App over fakes; input feeds the prompts line by line.
func newFixture(t *testing.T, input ...string) *fixture {
	t.Helper()
	f := &fixture{
		auth:      &fakeAuth{},
		content:   &fakeContent{},
		inquiries: &fakeInquiries{},
		board:     &fakeBoard{},
		submitter: &fakeSubmitter{},
		router:    views.NewRouter(),
		toasts:    toast.NewQueue(time.Minute),
		out:       &bytes.Buffer{},
		printed:   stubPrintln(t),
	}
	f.wizard = wizard.New(f.submitter, f.toasts)

	var in bytes.Buffer
	for _, l := range input {
		in.WriteString(l + "\n")
	}
	f.app = NewApp(Deps{
		Router:    f.router,
		Wizard:    f.wizard,
		Auth:      f.auth,
		Content:   f.content,
		Inquiries: f.inquiries,
		Board:     f.board,
		Toasts:    f.toasts,
		In:        &in,
		Out:       f.out,
	})
	return f
}

// messages drains the toast queue and returns the texts.
func (f *fixture) messages() []string {
	var out []string
	for _, t := range f.toasts.Drain() {
		out = append(out, t.Message)
	}
	return out
}
