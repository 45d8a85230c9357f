package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/casiec/internal/client/dashboard"
	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/client/services"
	"github.com/dmitrijs2005/casiec/internal/client/toast"
	"github.com/dmitrijs2005/casiec/internal/client/views"
	"github.com/dmitrijs2005/casiec/internal/client/wizard"
	"github.com/dmitrijs2005/casiec/internal/logging"
)

// Board is the part of the dashboard the console drives.
type Board interface {
	Snapshot() dashboard.Snapshot
	Refresh(ctx context.Context) dashboard.Snapshot
	Start(ctx context.Context)
	Stop()
	Running() bool

	SaveArticle(ctx context.Context, a models.Article, img *models.Image) error
	DeleteArticle(ctx context.Context, id string) error
	SaveTeamMember(ctx context.Context, m models.TeamMember, img *models.Image) error
	DeleteTeamMember(ctx context.Context, id string) error
	SaveCampaign(ctx context.Context, c models.Campaign, img *models.Image) error
	DeleteCampaign(ctx context.Context, id string) error
	SaveCarouselItem(ctx context.Context, item models.CarouselItem) error
	DeleteCarouselItem(ctx context.Context, id string) error
	PostTicker(ctx context.Context, text string, category models.TickerCategory) error
	DeleteTicker(ctx context.Context, id string) error
	UpdateApplicationStatus(ctx context.Context, category models.Category, id string, status models.ApplicationStatus) error
	DeleteApplication(ctx context.Context, category models.Category, id string) error
	OpenInquiry(ctx context.Context, id string) (models.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error
	DeleteInquiry(ctx context.Context, id string) error
}

// SessionInfo exposes the stored access token's expiry for the prompt.
type SessionInfo interface {
	Expiry() (time.Time, bool)
}

// Deps are the collaborators an App needs. In and Out default to the
// process's stdin and stdout.
type Deps struct {
	Router    *views.Router
	Wizard    *wizard.Wizard
	Auth      services.AuthService
	Content   services.ContentService
	Inquiries services.InquiryService
	Board     Board
	Toasts    *toast.Queue
	Session   SessionInfo
	Logger    logging.Logger
	In        io.Reader
	Out       io.Writer
}

// App is the interactive CASIEC console.
type App struct {
	router    *views.Router
	wizard    *wizard.Wizard
	auth      services.AuthService
	content   services.ContentService
	inquiries services.InquiryService
	board     Board
	toasts    *toast.Queue
	session   SessionInfo
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(d Deps) *App {
	in, out := d.In, d.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	a := &App{
		router:    d.Router,
		wizard:    d.Wizard,
		auth:      d.Auth,
		content:   d.Content,
		inquiries: d.Inquiries,
		board:     d.Board,
		toasts:    d.Toasts,
		session:   d.Session,
		logger:    logger,
		reader:    bufio.NewReader(in),
		out:       out,
	}
	a.router.OnChange(func(v views.View) {
		a.logger.Debug(context.Background(), "view changed", "view", v.Hash())
	})
	return a
}

// Run greets the user, resumes a stored staff session and blocks in the
// REPL until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.board.Stop()

	fmt.Fprintln(a.out, "Welcome to the CASIEC console (type 'help' for commands)")
	if a.isLoggedIn() {
		a.logger.Info(ctx, "resuming stored session")
		a.board.Start(ctx)
	}
	_ = a.render(ctx, a.router.Current())
	a.flush()

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// status is shown in the prompt: the current view and, for staff, the
// dashboard counters and token expiry.
func (a *App) status() string {
	s := a.router.Current().Hash()
	if !a.isLoggedIn() {
		return s
	}
	snap := a.board.Snapshot()
	s += fmt.Sprintf(" (%d unread, %d pending", snap.UnreadInquiries(), snap.PendingApplications())
	if a.session != nil {
		if exp, ok := a.session.Expiry(); ok {
			s += ", token until " + exp.Local().Format(time.Kitchen)
		}
	}
	return s + ")"
}

// afterCommand prints queued toasts and stops the poller once the session
// is gone, e.g. after a failed token refresh.
func (a *App) afterCommand(_ context.Context) {
	if a.board.Running() && !a.isLoggedIn() {
		a.board.Stop()
		fmt.Fprintln(a.out, "Your session has ended. Please sign in again.")
	}
	a.flush()
}

func (a *App) flush() {
	toast.Print(a.out, a.toasts.Drain())
}
