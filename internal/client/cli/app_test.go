package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/dashboard"
	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/client/services"
	"github.com/dmitrijs2005/casiec/internal/client/views"
	"github.com/dmitrijs2005/casiec/internal/client/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestApply_SupportPathSubmitsWithoutBVN(t *testing.T) {
	f := newFixture(t,
		"2",               // path: business support
		"Expert Advisory", // product
		"Acme Farms", "RC123", "", "Export advice", "y",
		"y",
		"Ada Obi", "CEO", "ada@acme.ng", "0803 123 4567",
	)

	require.NoError(t, f.app.Apply(context.Background(), ""))

	require.Equal(t, 1, f.submitter.calls)
	assert.Equal(t, models.CategorySupport, f.submitter.category)
	assert.Equal(t, "Expert Advisory", f.submitter.payload.AdvisoryPillars)
	assert.Empty(t, f.submitter.payload.BVN)
	assert.Equal(t, wizard.DefaultIndustry, f.submitter.payload.IndustryFocus)
	assert.Equal(t, "+2348031234567", f.submitter.payload.Phone)
	assert.Contains(t, f.out.String(), "Application submitted successfully!")
	assert.False(t, f.wizard.IsOpen(), "the draft is discarded afterwards")
}

func TestApply_BackThenCancel(t *testing.T) {
	f := newFixture(t, "back", "cancel")

	require.NoError(t, f.app.Apply(context.Background(), "financial"))

	assert.Zero(t, f.submitter.calls)
	assert.Contains(t, *f.printed, "Application cancelled.")
	assert.Contains(t, f.out.String(), "What are you looking for?", "back from products shows the path step")
	assert.False(t, f.wizard.IsOpen())
}

func TestApply_BadBVNReprompts(t *testing.T) {
	f := newFixture(t,
		"1",
		"Acme", "RC1", "Agriculture", "Tractor", "n",
		"y",
		"Ada", "CEO", "ada@acme.ng", "08031234567", "123",
		"", "", "", "", "12345678901",
	)

	require.NoError(t, f.app.Apply(context.Background(), "funding"))

	require.Equal(t, 1, f.submitter.calls, "incomplete drafts never reach the backend")
	assert.Equal(t, "Asset Finance", f.submitter.payload.FinancialProduct)
	assert.Equal(t, "12345678901", f.submitter.payload.BVN)
	assert.Equal(t, "Ada", f.submitter.payload.FullName)
	assert.Contains(t, *f.printed, "step incomplete: BVN must be exactly 11 digits")
}

func TestApply_SubmitFailureOffersRetry(t *testing.T) {
	f := newFixture(t,
		"Expert Advisory",
		"Acme", "RC1", "", "Advice", "y",
		"y",
		"Ada", "CEO", "ada@acme.ng", "0803",
		"y",
	)
	f.submitter.errs = []error{client.ErrUnavailable}

	require.NoError(t, f.app.Apply(context.Background(), "support"))

	assert.Equal(t, 2, f.submitter.calls)
	assert.Contains(t, f.out.String(), "Failed to submit application. Please try again later.")
	assert.Contains(t, f.out.String(), "Application submitted successfully!")
}

func TestApply_UnknownPath(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.app.Apply(context.Background(), "mortgage"), wizard.ErrUnknownPath)
	assert.False(t, f.wizard.IsOpen())
}

func TestApply_EOFAbandonsDraft(t *testing.T) {
	f := newFixture(t, "1")
	require.ErrorIs(t, f.app.Apply(context.Background(), ""), io.EOF)
	assert.False(t, f.wizard.IsOpen())
}

func TestLogin_PasswordThenCode(t *testing.T) {
	stubPassword(t, "hunter2")
	f := newFixture(t, "ada@casiec.ng", " 123456 ")
	f.auth.loginResult = services.LoginResult{RequiresOTP: true, Email: "ada@casiec.ng"}

	require.NoError(t, f.app.Login(context.Background()))

	assert.Equal(t, "hunter2", f.auth.loginPassword)
	assert.Equal(t, "123456", f.auth.verifyCode)
	assert.Equal(t, 1, f.board.starts)
	assert.Equal(t, views.RouteAdmin, f.router.Current().Route)
	assert.Contains(t, *f.printed, "A verification code was sent to ada@casiec.ng.")
	assert.Contains(t, f.messages(), "Signed in.")
}

func TestLogin_Failures(t *testing.T) {
	t.Run("password rejected", func(t *testing.T) {
		stubPassword(t, "wrong")
		f := newFixture(t, "ada@casiec.ng")
		f.auth.loginErr = &client.APIError{StatusCode: 400, Message: "Invalid credentials"}

		require.NoError(t, f.app.Login(context.Background()))
		assert.Zero(t, f.board.starts)
		assert.Equal(t, []string{"Invalid credentials"}, f.messages())
	})

	t.Run("bad code", func(t *testing.T) {
		stubPassword(t, "pw")
		f := newFixture(t, "ada@casiec.ng", "000000")
		f.auth.loginResult = services.LoginResult{RequiresOTP: true, Email: "ada@casiec.ng", Message: "Code sent"}
		f.auth.verifyErr = services.ErrInvalidVerification

		require.NoError(t, f.app.Login(context.Background()))
		assert.Zero(t, f.board.starts)
		assert.Equal(t, views.RouteHome, f.router.Current().Route)
		assert.Equal(t, []string{"Invalid or expired code."}, f.messages())
		assert.Contains(t, *f.printed, "Code sent")
	})

	t.Run("code rejected by backend", func(t *testing.T) {
		stubPassword(t, "pw")
		f := newFixture(t, "ada@casiec.ng", "000000")
		f.auth.loginResult = services.LoginResult{RequiresOTP: true, Email: "ada@casiec.ng"}
		f.auth.verifyErr = fmt.Errorf("verify 2fa: %w", &client.APIError{StatusCode: 401, Message: "Invalid or expired code."})

		require.NoError(t, f.app.Login(context.Background()))
		assert.Zero(t, f.board.starts)
		assert.Equal(t, []string{"Invalid or expired code."}, f.messages())
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.auth.authenticated = true
	f.board.running = true
	f.router.Navigate("#admin")

	require.NoError(t, f.app.Logout(context.Background()))

	assert.Equal(t, 1, f.auth.logouts)
	assert.Equal(t, 1, f.board.stops)
	assert.Equal(t, views.RouteHome, f.router.Current().Route)
	assert.Equal(t, []string{"Signed out."}, f.messages())
}

func TestAfterCommand_StopsPollerWhenSessionLost(t *testing.T) {
	f := newFixture(t)
	f.board.running = true
	f.toasts.Error("Could not load articles.")

	f.app.afterCommand(context.Background())

	assert.Equal(t, 1, f.board.stops)
	assert.Contains(t, f.out.String(), "Your session has ended. Please sign in again.")
	assert.Contains(t, f.out.String(), "Could not load articles.")
	assert.Empty(t, f.messages(), "toasts are printed once")
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "#home", f.app.status())

	f.auth.authenticated = true
	f.board.snap = dashboard.Snapshot{
		Applications: []models.Application{{Status: models.StatusPending}, {Status: models.StatusApproved}},
		Inquiries:    []models.Inquiry{{Status: models.InquiryUnread}},
	}
	assert.Equal(t, "#home (1 unread, 1 pending)", f.app.status())
}

func TestGo_RendersPages(t *testing.T) {
	f := newFixture(t)
	f.content.team = []models.TeamMember{{Name: "Ada Obi", Role: "MD", Specialization: "Credit"}}

	require.NoError(t, f.app.Go(context.Background(), "team"))
	assert.Contains(t, *f.printed, "== Team ==")
	assert.Contains(t, *f.printed, "Ada Obi, MD (Credit)")

	require.NoError(t, f.app.Go(context.Background(), "#funding"))
	assert.Contains(t, *f.printed, " 1. Asset Finance")

	require.NoError(t, f.app.Go(context.Background(), "nowhere"))
	assert.Equal(t, views.RouteHome, f.router.Current().Route)
	assert.Contains(t, *f.printed, "[Market] NGX up 2%")

	f.content.article = models.Article{Title: "Rates outlook", Content: "Body"}
	require.NoError(t, f.app.Go(context.Background(), "article/42"))
	assert.Contains(t, *f.printed, "== Article 42 ==")
	assert.Contains(t, *f.printed, "Rates outlook")
}

func TestGo_FetchFailureToasts(t *testing.T) {
	f := newFixture(t)
	f.content.teamErr = errors.New("connection refused")

	require.NoError(t, f.app.Go(context.Background(), "team"))
	assert.Equal(t, []string{"Could not load team."}, f.messages())
}

func TestGo_AdminNeedsLogin(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Go(context.Background(), "admin"))
	assert.Contains(t, *f.printed, "Staff sign-in required. Type 'login'.")
	assert.Zero(t, f.board.refreshes)

	f.auth.authenticated = true
	require.NoError(t, f.app.Go(context.Background(), "admin"))
	assert.Equal(t, 1, f.board.refreshes)
}

func TestContactAndSubscribe(t *testing.T) {
	f := newFixture(t, "Ada", "ADA@acme.ng", "", "Loans", "Hello", "", "")

	require.NoError(t, f.app.Contact(context.Background()))
	require.Len(t, f.inquiries.sent, 1)
	assert.Equal(t, "Loans", f.inquiries.sent[0].Subject)
	assert.Equal(t, "Hello", f.inquiries.sent[0].Message)

	require.NoError(t, f.app.Subscribe(context.Background(), ""))
	assert.Empty(t, f.inquiries.subscribed, "empty email is rejected locally")

	f.inquiries.subscribeErr = &client.APIError{StatusCode: 409, Message: "Email already subscribed"}
	require.NoError(t, f.app.Subscribe(context.Background(), "ada@acme.ng"))
	assert.Equal(t, []string{"ada@acme.ng"}, f.inquiries.subscribed)
	assert.Equal(t, []string{
		"Message sent. We will get back to you shortly.",
		"Please enter your email address.",
		"Email already subscribed",
	}, f.messages())
}

func TestApplication_StatusUsesCategory(t *testing.T) {
	f := newFixture(t)
	f.board.snap = dashboard.Snapshot{
		UpdatedAt:    time.Now(),
		Applications: []models.Application{{ID: "a1", Type: models.PathBusinessSupport}},
	}

	require.NoError(t, f.app.Application(context.Background(), []string{"a1", "status", "APPROVED"}))
	assert.Equal(t, []statusCall{{category: models.CategorySupport, id: "a1", status: models.StatusApproved}}, f.board.statuses)

	require.Error(t, f.app.Application(context.Background(), []string{"a1", "status", "maybe"}))
	require.Error(t, f.app.Application(context.Background(), []string{"zz"}))
	assert.Equal(t, 1, f.board.refreshes, "an unknown id triggers one reload")
}

func TestInquiry_OpenMarksAndPrints(t *testing.T) {
	f := newFixture(t)
	f.board.snap = dashboard.Snapshot{
		Inquiries: []models.Inquiry{{ID: "c9", FullName: "Ada", Subject: "Loan", Message: "Please call me"}},
	}

	require.NoError(t, f.app.Inquiry(context.Background(), []string{"c9"}))
	assert.Equal(t, []string{"c9"}, f.board.opened)
	assert.Contains(t, *f.printed, "Please call me")

	require.Error(t, f.app.Inquiry(context.Background(), []string{"c9", "status", "lost"}))
}

func TestCMS_EditArticleKeepsUnchangedFields(t *testing.T) {
	f := newFixture(t, "New title", "", "", "", "", "", "")
	f.board.snap = dashboard.Snapshot{
		UpdatedAt: time.Now(),
		Articles:  []models.Article{{ID: "7", Title: "Old", Category: "Markets", Author: "Desk", Content: "Body"}},
	}

	require.NoError(t, f.app.CMS(context.Background(), []string{"articles", "edit", "7"}))

	require.NotNil(t, f.board.savedArticle)
	assert.Equal(t, models.Article{ID: "7", Title: "New title", Category: "Markets", Author: "Desk", Content: "Body"}, *f.board.savedArticle)
	assert.Nil(t, f.board.savedImage)
}

func TestCMS_NewArticleWithImage(t *testing.T) {
	orig := readFile
	readFile = func(string) ([]byte, error) { return []byte("png"), nil }
	t.Cleanup(func() { readFile = orig })

	f := newFixture(t, "Title", "News", "Short", "", "", "Body text", "", "/tmp/pics/cover.png")
	f.board.snap.UpdatedAt = time.Now()

	require.NoError(t, f.app.CMS(context.Background(), []string{"articles", "new"}))

	require.NotNil(t, f.board.savedArticle)
	assert.Empty(t, f.board.savedArticle.ID, "new records are created, not patched")
	assert.Equal(t, "Body text", f.board.savedArticle.Content)
	assert.Equal(t, &models.Image{FileName: "cover.png", Data: []byte("png")}, f.board.savedImage)
}

func TestCMS_Ticker(t *testing.T) {
	f := newFixture(t, "Rates cut by 50bps", "", "   ")
	f.board.snap.UpdatedAt = time.Now()

	require.NoError(t, f.app.CMS(context.Background(), []string{"ticker", "new"}))
	assert.Equal(t, []models.TickerItem{{Text: "Rates cut by 50bps", Category: models.TickerMarket, IsManual: true}}, f.board.ticker)

	require.NoError(t, f.app.CMS(context.Background(), []string{"ticker", "new"}))
	assert.Len(t, f.board.ticker, 1)
	assert.Equal(t, []string{"Ticker text cannot be empty."}, f.messages())
}

func TestCMS_Usage(t *testing.T) {
	f := newFixture(t)
	require.Error(t, f.app.CMS(context.Background(), nil))
	require.Error(t, f.app.CMS(context.Background(), []string{"posters"}))
	require.Error(t, f.app.CMS(context.Background(), []string{"team", "edit"}))
	require.Error(t, f.app.CMS(context.Background(), []string{"ticker", "edit", "1"}))

	err := f.app.CMS(context.Background(), []string{"articles", "edit", "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
