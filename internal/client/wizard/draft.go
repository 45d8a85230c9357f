package wizard

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/client/models"
)

// Profile is the business information collected in step 3.
type Profile struct {
	BusinessName string
	RegNumber    string
	Industry     string
	Description  string
	Registered   bool
}

// Contact is the applicant information collected in step 5.
type Contact struct {
	FullName string
	Role     string
	Email    string
	Phone    string
	BVN      string
}

// Draft is the in-progress inquiry. It lives only while the wizard is open.
type Draft struct {
	Path         models.PathType
	Product      string
	Profile      Profile
	Acknowledged bool
	Contact      Contact
}

func newDraft(path models.PathType) Draft {
	return Draft{Path: path, Profile: Profile{Industry: DefaultIndustry}}
}

const bvnLength = 11

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// validate checks the predicate guarding the transition out of step.
func (d Draft) validate(step Step) error {
	switch step {
	case StepPathSelect:
		if !d.Path.Valid() {
			return fmt.Errorf("%w: choose a path", ErrIncomplete)
		}
	case StepProductSelect:
		if blank(d.Product) {
			return fmt.Errorf("%w: choose a product", ErrIncomplete)
		}
	case StepProfileEntry:
		var missing []string
		if blank(d.Profile.BusinessName) {
			missing = append(missing, "business name")
		}
		if blank(d.Profile.RegNumber) {
			missing = append(missing, "registration number")
		}
		if blank(d.Profile.Industry) {
			missing = append(missing, "industry")
		}
		if blank(d.Profile.Description) {
			missing = append(missing, "description")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
		}
	case StepAcknowledgement:
		if !d.Acknowledged {
			return fmt.Errorf("%w: documentation requirements not acknowledged", ErrIncomplete)
		}
	case StepContactEntry:
		var missing []string
		if blank(d.Contact.FullName) {
			missing = append(missing, "full name")
		}
		if blank(d.Contact.Role) {
			missing = append(missing, "role")
		}
		if blank(d.Contact.Email) {
			missing = append(missing, "email")
		}
		if blank(d.Contact.Phone) {
			missing = append(missing, "phone")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
		}
		if d.Path == models.PathFinancial && (len(d.Contact.BVN) != bvnLength || !isDigits(d.Contact.BVN)) {
			return fmt.Errorf("%w: BVN must be exactly %d digits", ErrIncomplete, bvnLength)
		}
	}
	return nil
}

// Payload packages the draft into the request body for its category.
func (d Draft) Payload() models.ApplicationPayload {
	p := models.ApplicationPayload{
		FullName:       d.Contact.FullName,
		Email:          d.Contact.Email,
		Phone:          models.NormalizePhoneNumber(d.Contact.Phone),
		DesignatedRole: d.Contact.Role,
		BusinessName:   d.Profile.BusinessName,
		IsRegistered:   d.Profile.RegNumber != "",
		RegNumber:      d.Profile.RegNumber,
		IndustryFocus:  d.Profile.Industry,
		Requirement:    d.Profile.Description,
	}
	if d.Path == models.PathFinancial {
		p.FinancialProduct = d.Product
		p.BVN = d.Contact.BVN
	} else {
		p.AdvisoryPillars = d.Product
	}
	return p
}
