package wizard

import "github.com/dmitrijs2005/casiec/internal/client/models"

var financialProducts = []string{
	"Asset Finance",
	"Consumer Loan",
	"Working Capital Loans",
	"Group Loans",
	"Gender Credit",
	"Refinancing Credit",
	"Creative Economy Loans",
	"TOP Onlending Loans",
	"Clean Energy Credit",
}

var supportServices = []string{
	"Business Support Services",
	"Corporate Finance, Research & Advisory",
	"Supply Chain, Commodity Trading & Distribution",
	"Expert Advisory",
}

// Industries lists the sectors a business profile may pick from.
var Industries = []string{"General", "Agriculture", "Creative", "Tech", "Manufacturing", "Trade"}

// DefaultIndustry is preselected on every fresh draft.
const DefaultIndustry = "General"

var baseChecklist = []string{
	"Completed Application letter (Form & Search Report)",
	"Bank Statement (6/12 months) or Financials (1 year)",
	"Valid ID (Passport/National ID/Driver's License) & Passport Photograph",
	"BVN and NIM (National Identification Number)",
	"Payment evidence of Search fee",
	"Guarantor(s) Form & Documentation",
	"Valid Cheque leaves (Guarantor and Borrower)",
	"Asset Debenture & Movable Stocks details",
	"Confirmed Address & Pledged Assets Verification",
}

var registeredChecklist = []string{
	"CAC Registration Documents (Certificates/Status Reports)",
	"Valid Statutory Regulatory Certifications",
	"Transaction Brief / Business Plan (Recommended)",
}

var unregisteredChecklist = []string{
	"Personal/Staff Support introduction letter (if applicable)",
	"Photocopy of valid Company ID card",
}

// Products returns the product or service labels offered on path.
func Products(path models.PathType) []string {
	var src []string
	switch path {
	case models.PathFinancial:
		src = financialProducts
	case models.PathBusinessSupport:
		src = supportServices
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Checklist returns the documents the applicant must acknowledge. CAC
// registered businesses get the registration items, others the personal ones.
func Checklist(registered bool) []string {
	extra := unregisteredChecklist
	if registered {
		extra = registeredChecklist
	}
	out := make([]string, 0, len(baseChecklist)+len(extra))
	out = append(out, baseChecklist...)
	return append(out, extra...)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
