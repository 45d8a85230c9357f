package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/models"
)

const (
	resContact = "contact"

	defaultInquiryName    = "Anonymous"
	defaultInquirySubject = "Newsletter/General"
	defaultInquiryMessage = "No message provided"
)

// InquiryService covers the contact form and newsletter sign-ups, which the
// backend keeps in one collection. A contact without a subject is a
// subscription.
type InquiryService interface {
	List(ctx context.Context) ([]models.Inquiry, error)
	Subscriptions(ctx context.Context) ([]models.Subscription, error)
	Send(ctx context.Context, msg models.ContactMessage) error
	Subscribe(ctx context.Context, email string) error
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error
	MarkOpened(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type inquiryService struct {
	api API
}

func NewInquiryService(api API) InquiryService {
	return &inquiryService{api: api}
}

type contactWire struct {
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message,omitempty"`
	Status    string `json:"status,omitempty"`
	Opened    bool   `json:"opened,omitempty"`
}

func (s *inquiryService) contacts(ctx context.Context) ([]contactWire, error) {
	var wire []contactWire
	if err := s.api.Do(ctx, http.MethodGet, "/"+resContact, nil, &wire); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return wire, nil
}

func (s *inquiryService) List(ctx context.Context) ([]models.Inquiry, error) {
	wire, err := s.contacts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Inquiry, 0, len(wire))
	for _, w := range wire {
		st, err := models.ParseInquiryStatus(w.Status)
		if err != nil {
			st = models.InquiryUnread
		}
		out = append(out, models.Inquiry{
			ID:       w.ID,
			Date:     parseTime(w.CreatedAt),
			FullName: orDefault(w.FullName, defaultInquiryName),
			Email:    w.Email,
			Phone:    w.Phone,
			Subject:  orDefault(w.Subject, defaultInquirySubject),
			Message:  orDefault(w.Message, defaultInquiryMessage),
			Status:   st,
			Opened:   w.Opened,
		})
	}
	return out, nil
}

func (s *inquiryService) Subscriptions(ctx context.Context) ([]models.Subscription, error) {
	wire, err := s.contacts(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Subscription
	for _, w := range wire {
		if w.Subject != "" {
			continue
		}
		out = append(out, models.Subscription{ID: w.ID, Email: w.Email, Date: parseTime(w.CreatedAt)})
	}
	return out, nil
}

func (s *inquiryService) Send(ctx context.Context, msg models.ContactMessage) error {
	payload := contactWire{
		Email:    strings.ToLower(strings.TrimSpace(msg.Email)),
		FullName: msg.FullName,
		Subject:  msg.Subject,
		Message:  msg.Message,
	}
	if msg.Phone != "" {
		payload.Phone = models.NormalizePhoneNumber(msg.Phone)
	}
	body, err := client.JSONBody(payload)
	if err != nil {
		return err
	}
	if err := s.api.Do(ctx, http.MethodPost, "/"+resContact, body, nil); err != nil {
		return fmt.Errorf("send inquiry: %w", err)
	}
	return nil
}

func (s *inquiryService) Subscribe(ctx context.Context, email string) error {
	body, err := client.JSONBody(map[string]string{"email": strings.ToLower(strings.TrimSpace(email))})
	if err != nil {
		return err
	}
	if err := s.api.Do(ctx, http.MethodPost, "/"+resContact, body, nil); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	body, err := client.JSONBody(map[string]string{"status": string(status)})
	if err != nil {
		return err
	}
	if err := s.api.Do(ctx, http.MethodPatch, resourcePath(resContact, id), body, nil); err != nil {
		return fmt.Errorf("update inquiry %s: %w", id, err)
	}
	return nil
}

func (s *inquiryService) MarkOpened(ctx context.Context, id string) error {
	if err := s.api.Do(ctx, http.MethodPut, resourcePath(resContact, id)+"/opened", nil, nil); err != nil {
		return fmt.Errorf("mark inquiry %s opened: %w", id, err)
	}
	return nil
}

func (s *inquiryService) Delete(ctx context.Context, id string) error {
	if err := s.api.Do(ctx, http.MethodDelete, resourcePath(resContact, id), nil, nil); err != nil {
		return fmt.Errorf("delete inquiry %s: %w", id, err)
	}
	return nil
}
