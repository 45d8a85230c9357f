package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/casiec/internal/client/dashboard"
	"github.com/dmitrijs2005/casiec/internal/client/models"
)

const dateLayout = "2006-01-02 15:04"

// Dash refreshes the dashboard and prints its counters and work queues.
func (a *App) Dash(ctx context.Context) error {
	snap := a.board.Refresh(ctx)

	printlnFn(fmt.Sprintf("Articles %d | Team %d | Campaigns %d | Carousel %d | Ticker %d",
		len(snap.Articles), len(snap.Team), len(snap.Campaigns), len(snap.Carousel), len(snap.Ticker)))
	printlnFn(fmt.Sprintf("Pending applications: %d of %d", snap.PendingApplications(), len(snap.Applications)))
	for _, app := range snap.Applications {
		if app.Status == models.StatusPending {
			printApplicationLine(app)
		}
	}
	printlnFn(fmt.Sprintf("Unread inquiries: %d of %d", snap.UnreadInquiries(), len(snap.Inquiries)))
	for _, in := range snap.Inquiries {
		if in.Unread() {
			printInquiryLine(in)
		}
	}
	printlnFn("Updated " + snap.UpdatedAt.Format(time.TimeOnly))
	return nil
}

func printApplicationLine(app models.Application) {
	printlnFn(fmt.Sprintf("  %s  %-8s %-9s %s, %s (%s)",
		app.ID, app.Category(), app.Status, app.BusinessName, app.Product, formatDate(app.Date)))
}

func printInquiryLine(in models.Inquiry) {
	printlnFn(fmt.Sprintf("  %s  %-8s %s <%s>: %s (%s)",
		in.ID, in.Status, in.FullName, in.Email, in.Subject, formatDate(in.Date)))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

// snapshot returns the last snapshot, loading one first if none was taken.
func (a *App) snapshot(ctx context.Context) dashboard.Snapshot {
	snap := a.board.Snapshot()
	if snap.UpdatedAt.IsZero() {
		snap = a.board.Refresh(ctx)
	}
	return snap
}

// Application shows, moderates or deletes one application:
//
//	app <id>
//	app <id> status <pending|reviewed|approved|declined>
//	app <id> delete
func (a *App) Application(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: app <id> [status <s>|delete]")
	}
	id := args[0]

	app, ok := a.snapshot(ctx).Application(id)
	if !ok {
		if app, ok = a.board.Refresh(ctx).Application(id); !ok {
			return fmt.Errorf("application %s not found", id)
		}
	}

	if len(args) == 1 {
		printApplication(app)
		return nil
	}

	switch args[1] {
	case "status":
		if len(args) < 3 {
			return fmt.Errorf("usage: app <id> status <pending|reviewed|approved|declined>")
		}
		status, err := models.ParseApplicationStatus(args[2])
		if err != nil {
			return err
		}
		_ = a.board.UpdateApplicationStatus(ctx, app.Category(), app.ID, status)
	case "delete":
		ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete application from %s?", app.BusinessName), a.out)
		if err != nil || !ok {
			return err
		}
		_ = a.board.DeleteApplication(ctx, app.Category(), app.ID)
	default:
		return fmt.Errorf("unknown application action %q", args[1])
	}
	return nil
}

func printApplication(app models.Application) {
	printlnFn(fmt.Sprintf("%s application %s (%s)", app.Category(), app.ID, app.Status))
	printlnFn("Product:   " + app.Product)
	printlnFn(fmt.Sprintf("Business:  %s, %s, %s", app.BusinessName, app.RegNumber, app.Industry))
	printlnFn(fmt.Sprintf("Contact:   %s, %s <%s> %s", app.FullName, app.Role, app.Email, app.Phone))
	printlnFn("Submitted: " + formatDate(app.Date))
	printlnFn(app.Description)
}

// Inquiry opens, moderates or deletes one contact message:
//
//	inquiry <id>
//	inquiry <id> status <Unread|Replied|Archived>
//	inquiry <id> delete
func (a *App) Inquiry(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: inquiry <id> [status <s>|delete]")
	}
	id := args[0]

	if len(args) == 1 {
		in, err := a.board.OpenInquiry(ctx, id)
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("From:    %s <%s> %s", in.FullName, in.Email, in.Phone))
		printlnFn("Subject: " + in.Subject)
		printlnFn("Date:    " + formatDate(in.Date))
		printlnFn("")
		printlnFn(in.Message)
		return nil
	}

	switch args[1] {
	case "status":
		if len(args) < 3 {
			return fmt.Errorf("usage: inquiry <id> status <Unread|Replied|Archived>")
		}
		status, err := parseInquiryStatus(args[2])
		if err != nil {
			return err
		}
		_ = a.board.UpdateInquiryStatus(ctx, id, status)
	case "delete":
		ok, err := GetConfirm(a.reader, "Delete this inquiry?", a.out)
		if err != nil || !ok {
			return err
		}
		_ = a.board.DeleteInquiry(ctx, id)
	default:
		return fmt.Errorf("unknown inquiry action %q", args[1])
	}
	return nil
}

func parseInquiryStatus(s string) (models.InquiryStatus, error) {
	for _, st := range []models.InquiryStatus{models.InquiryUnread, models.InquiryReplied, models.InquiryArchived} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return models.ParseInquiryStatus(s)
}
