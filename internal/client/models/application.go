package models

import (
	"fmt"
	"strings"
	"time"
)

// PathType is the inquiry branch chosen in the first wizard step.
type PathType string

const (
	PathFinancial       PathType = "financial"
	PathBusinessSupport PathType = "business_support"
)

func (p PathType) Valid() bool {
	return p == PathFinancial || p == PathBusinessSupport
}

// Category returns the backend collection that stores applications of this path.
func (p PathType) Category() Category {
	if p == PathFinancial {
		return CategoryFinance
	}
	return CategorySupport
}

// Category names the backend collection an application lives in.
type Category string

const (
	CategoryFinance Category = "finance"
	CategorySupport Category = "support"
)

func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(s)) {
	case CategoryFinance:
		return CategoryFinance, nil
	case CategorySupport:
		return CategorySupport, nil
	}
	return "", fmt.Errorf("unknown application category %q", s)
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusReviewed ApplicationStatus = "Reviewed"
	StatusApproved ApplicationStatus = "Approved"
	StatusDeclined ApplicationStatus = "Declined"
)

var applicationStatuses = []ApplicationStatus{StatusPending, StatusReviewed, StatusApproved, StatusDeclined}

// ParseApplicationStatus accepts any casing; the backend stores lowercase.
// An empty string maps to StatusPending.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	if s == "" {
		return StatusPending, nil
	}
	for _, st := range applicationStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Wire is the lowercase form the backend expects in status updates.
func (s ApplicationStatus) Wire() string {
	return strings.ToLower(string(s))
}

// Application is a submitted financial or business-support inquiry.
type Application struct {
	ID           string
	Date         time.Time
	Type         PathType
	Product      string
	BusinessName string
	RegNumber    string
	Industry     string
	FullName     string
	Role         string
	Email        string
	Phone        string
	Description  string
	Status       ApplicationStatus
}

func (a Application) Category() Category {
	return a.Type.Category()
}

// ApplicationPayload is the body posted to /finance or /support.
type ApplicationPayload struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DesignatedRole   string `json:"designatedRole"`
	BusinessName     string `json:"businessName"`
	IsRegistered     bool   `json:"isRegistered"`
	RegNumber        string `json:"regNumber"`
	IndustryFocus    string `json:"industryFocus"`
	Requirement      string `json:"requirement"`
	FinancialProduct string `json:"financialProduct,omitempty"`
	AdvisoryPillars  string `json:"advisoryPillars,omitempty"`
	BVN              string `json:"bvn,omitempty"`
}
