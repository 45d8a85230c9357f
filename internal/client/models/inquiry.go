package models

import (
	"fmt"
	"time"
)

type InquiryStatus string

const (
	InquiryUnread   InquiryStatus = "Unread"
	InquiryReplied  InquiryStatus = "Replied"
	InquiryArchived InquiryStatus = "Archived"
	InquiryOpened   InquiryStatus = "opened"
)

func ParseInquiryStatus(s string) (InquiryStatus, error) {
	switch InquiryStatus(s) {
	case "":
		return InquiryUnread, nil
	case InquiryUnread, InquiryReplied, InquiryArchived, InquiryOpened:
		return InquiryStatus(s), nil
	}
	return "", fmt.Errorf("unknown inquiry status %q", s)
}

// Inquiry is a contact-form message as seen by staff. Opened is tracked by
// the backend independently of Status.
type Inquiry struct {
	ID       string
	Date     time.Time
	FullName string
	Email    string
	Phone    string
	Subject  string
	Message  string
	Status   InquiryStatus
	Opened   bool
}

// Unread reports whether the inquiry still needs attention.
func (i Inquiry) Unread() bool {
	return i.Status == InquiryUnread && !i.Opened
}

// Subscription is a newsletter sign-up; the backend stores it as a contact
// message without a subject.
type Subscription struct {
	ID    string
	Email string
	Date  time.Time
}

// ContactMessage is what the public contact form sends.
type ContactMessage struct {
	FullName string
	Email    string
	Phone    string
	Subject  string
	Message  string
}
