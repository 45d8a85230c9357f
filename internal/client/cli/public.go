package cli

import (
	"context"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/models"
)

// Contact collects a message for the team and sends it.
func (a *App) Contact(ctx context.Context) error {
	var (
		msg models.ContactMessage
		err error
	)
	if msg.FullName, err = GetSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if msg.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if msg.Phone, err = GetSimpleText(a.reader, "Phone (optional)", a.out); err != nil {
		return err
	}
	if msg.Subject, err = GetSimpleText(a.reader, "Subject", a.out); err != nil {
		return err
	}
	if msg.Message, err = GetMultiline(a.reader, "Message", "", a.out); err != nil {
		return err
	}

	if msg.Email == "" {
		a.toasts.Error("Please enter your email address.")
		return nil
	}
	if err := a.inquiries.Send(ctx, msg); err != nil {
		a.logger.Warn(ctx, "contact message failed", "error", err)
		a.toasts.Error(client.Message(err, "Could not send your message. Please try again later."))
		return nil
	}
	a.toasts.Success("Message sent. We will get back to you shortly.")
	return nil
}

// Subscribe adds email to the newsletter, prompting for it when empty.
func (a *App) Subscribe(ctx context.Context, email string) error {
	if email == "" {
		var err error
		if email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
			return err
		}
	}
	if email == "" {
		a.toasts.Error("Please enter your email address.")
		return nil
	}
	if err := a.inquiries.Subscribe(ctx, email); err != nil {
		a.logger.Warn(ctx, "subscription failed", "error", err)
		a.toasts.Error(client.Message(err, "Subscription failed. Please try again later."))
		return nil
	}
	a.toasts.Success("Subscribed! Watch your inbox for updates.")
	return nil
}
