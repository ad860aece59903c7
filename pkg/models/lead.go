package models

import (
	"strings"
	"time"
)

// Unknown is the sentinel used for fields that could not be extracted.
// Extraction absence is not an error; consumers must treat Unknown the
// same way as an empty value.
const Unknown = "Unknown"

// FilteredScore marks a lead that failed the final SIC filter. Filtered
// leads stay in the collection until aggregation so counts remain uniform
// through the pipeline.
const FilteredScore = -1

// Appointment is one row from an officer's "other appointments" list.
type Appointment struct {
	Company       string `json:"company"`
	CompanyNumber string `json:"company_number,omitempty"`
	Date          string `json:"date"`
}

// OfficerDetail holds the fields scraped from an officer's own profile page.
type OfficerDetail struct {
	DateOfBirth  string        `json:"date_of_birth"`
	Nationality  string        `json:"nationality"`
	Residence    string        `json:"residence"`
	Occupation   string        `json:"occupation"`
	AppointedOn  string        `json:"appointed_on"`
	Appointments []Appointment `json:"appointments,omitempty"`
}

// Officer is a company officer as listed on the registry's people page.
// It is owned by exactly one Lead and never mutated after extraction.
type Officer struct {
	Name   string         `json:"name"`
	Role   string         `json:"role"`
	Status string         `json:"status"`
	Link   string         `json:"link,omitempty"`
	Detail *OfficerDetail `json:"detail,omitempty"`
}

// Lead represents one extracted business entity with registry, contact and
// officer data. Identity is the normalized company name (see Key).
type Lead struct {
	CompanyName   string    `json:"company_name"`
	CompanyNumber string    `json:"company_number,omitempty"`
	Website       string    `json:"website"`
	Location      string    `json:"location"`
	Source        string    `json:"source"`
	ScrapedAt     time.Time `json:"scraped_at"`

	// Registry fields
	Status            string   `json:"status,omitempty"`
	CompanyType       string   `json:"company_type,omitempty"`
	IncorporationDate string   `json:"incorporation_date,omitempty"`
	FoundedYear       string   `json:"founded_year,omitempty"`
	SICCodes          []string `json:"sic_codes,omitempty"`
	AccountsNext      string   `json:"accounts_next,omitempty"`
	AccountsLast      string   `json:"accounts_last,omitempty"`
	ConfirmationNext  string   `json:"confirmation_next,omitempty"`
	ConfirmationLast  string   `json:"confirmation_last,omitempty"`

	// Contact fields
	Phone         string            `json:"phone,omitempty"`
	PhoneVerified bool              `json:"phone_verified"`
	Email         string            `json:"email,omitempty"`
	EmailVerified bool              `json:"email_verified"`
	Socials       map[string]string `json:"socials,omitempty"`

	// Decision makers
	CEOName     string `json:"ceo_name,omitempty"`
	CEOLinkedIn string `json:"ceo_linkedin,omitempty"`

	// Company details
	EmployeeCount  int    `json:"employee_count,omitempty"`
	WebsiteSummary string `json:"website_summary,omitempty"`

	Officers []Officer `json:"officers,omitempty"`

	// Intelligence
	PainPoints   []string `json:"pain_points,omitempty"`
	ICPMatch     float64  `json:"icp_match"`
	QualityScore int      `json:"quality_score"`
}

// Key returns the deduplication identity: the lower-cased, trimmed company
// name. Leads with equal keys are the same business.
func (l *Lead) Key() string {
	return strings.ToLower(strings.TrimSpace(l.CompanyName))
}

// RecalcQualityScore recomputes the quality score as the weighted presence
// sum over the fixed field set. It is deterministic and idempotent: the
// score depends only on the current field values. A FilteredScore sentinel
// set by the pipeline is preserved.
func (l *Lead) RecalcQualityScore() {
	if l.QualityScore == FilteredScore {
		return
	}
	score := 0
	if l.Phone != "" {
		score += 20
	}
	if l.Email != "" {
		score += 20
	}
	if len(l.Socials) > 0 {
		score += 15
	}
	if l.CEOName != "" {
		score += 15
	}
	if l.EmployeeCount > 0 {
		score += 10
	}
	if l.PhoneVerified {
		score += 10
	}
	if l.EmailVerified {
		score += 10
	}
	l.QualityScore = score
}

// HasContact reports whether both essential contact channels were found.
func (l *Lead) HasContact() bool {
	return l.Phone != "" && l.Email != ""
}

// Outcome is the tagged result of enriching one lead. Filtered leads carry
// a reason instead of silently vanishing; the aggregation stage performs
// the actual removal.
type Outcome struct {
	Lead   *Lead
	Kept   bool
	Reason string
}

// Kept wraps a lead that survived enrichment.
func KeptOutcome(l *Lead) Outcome {
	return Outcome{Lead: l, Kept: true}
}

// Filtered marks a lead for removal at aggregation and stamps the sentinel
// score so downstream consumers using the numeric convention agree.
func FilteredOutcome(l *Lead, reason string) Outcome {
	l.QualityScore = FilteredScore
	return Outcome{Lead: l, Kept: false, Reason: reason}
}

// OutreachMessage is the structured message produced by the outreach
// collaborator for one surviving lead.
type OutreachMessage struct {
	CompanyName  string `json:"company_name"`
	Subject      string `json:"subject"`
	Greeting     string `json:"greeting"`
	Body         string `json:"body"`
	CallToAction string `json:"call_to_action"`
}
