package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/services"
	"github.com/dmitrijs2005/casiec/internal/client/views"
	"github.com/dmitrijs2005/casiec/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login signs a staff member in. The backend usually answers the password
// with a 2FA challenge, in which case the emailed code is asked for next.
//
// On success the dashboard poller starts and the admin view is shown. The
// password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		a.logger.Info(ctx, "login failed", "email", email, "error", err)
		a.toasts.Error(client.Message(err, "Invalid email or password."))
		return nil
	}

	if res.RequiresOTP {
		msg := res.Message
		if msg == "" {
			msg = fmt.Sprintf("A verification code was sent to %s.", res.Email)
		}
		printlnFn(msg)

		code, err := getSimpleText(a.reader, "Enter verification code", a.out)
		if err != nil {
			return err
		}
		if err := a.auth.Verify2FA(ctx, res.Email, code); err != nil {
			a.logger.Info(ctx, "2fa verification failed", "email", res.Email, "error", err)
			fallback := "Verification failed."
			if errors.Is(err, services.ErrInvalidVerification) {
				fallback = "Invalid or expired code."
			}
			a.toasts.Error(client.Message(err, fallback))
			return nil
		}
	}

	a.logger.Info(ctx, "signed in", "email", email)
	a.toasts.Success("Signed in.")
	a.board.Start(ctx)
	return a.Go(ctx, string(views.RouteAdmin))
}

// Logout stops the poller, ends the session and returns to the home view.
func (a *App) Logout(ctx context.Context) error {
	a.board.Stop()
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "logout cleanup failed", "error", err)
	}
	a.router.RedirectHome()
	a.toasts.Info("Signed out.")
	return nil
}
