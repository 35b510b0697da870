package gohighlevel

import (
	"strconv"
	"strings"
	"unicode"
)

type Contact struct {
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Address1     string            `json:"address1"`
	City         string            `json:"city"`
	State        string            `json:"state"`
	PostalCode   string            `json:"postalCode"`
	Source       string            `json:"source"`
	Tags         []string          `json:"tags"`
	CustomFields map[string]string `json:"customFields"`
	LocationID   string            `json:"locationId,omitempty"`
}

type Opportunity struct {
	ContactID       string `json:"contactId"`
	LocationID      string `json:"locationId,omitempty"`
	Name            string `json:"name"`
	PipelineID      string `json:"pipelineId,omitempty"`
	PipelineStageID string `json:"pipelineStageId,omitempty"`
	Status          string `json:"status"`
	MonetaryValue   int64  `json:"monetaryValue"`
}

// customFieldKeys maps form field keys to GoHighLevel custom field keys.
// Fields listed in fieldDefaults fall back to a value instead of "".
var customFieldKeys = [][2]string{
	{"formType", "form_type"},
	{"applicantType", "applicant_type"},
	{"coApplicantFirstName", "co_applicant_first_name"},
	{"coApplicantLastName", "co_applicant_last_name"},
	{"coApplicantCreditScore", "co_applicant_credit_score"},
	{"creditScore", "credit_score"},
	{"liquidAssets", "liquid_assets"},
	{"monthlyIncome", "monthly_income"},
	{"bankruptcy", "bankruptcy_history"},
	{"employmentStatus", "employment_status"},
	{"selfEmployedYears", "self_employed_years"},
	{"completedTaxes", "completed_taxes"},
	{"propertyType", "property_type"},
	{"propertyUse", "property_use"},
	{"purchasePrice", "purchase_price"},
	{"downPayment", "down_payment"},
	{"purchaseTimeline", "purchase_timeline"},
	{"openToSecondOpinion", "open_to_second_opinion"},
	{"reasonForSecondOpinion", "reason_for_second_opinion"},
	{"hasRealEstateAgent", "has_real_estate_agent"},
	{"currentLoanStatus", "current_loan_status"},
	{"refinanceReason", "refinance_reason"},
	{"currentHomeValue", "current_home_value"},
	{"monthlyPayment", "monthly_payment"},
	{"yearsRemainingOnLoan", "years_remaining_on_loan"},
	{"militaryService", "military_service"},
	{"militaryStatus", "military_status"},
}

var fieldDefaults = map[string]string{
	"creditScore":      "unknown",
	"employmentStatus": "unknown",
}

// ContactFromLead builds the contact body from a flat lead payload.
func ContactFromLead(lead map[string]string, source string) Contact {
	custom := make(map[string]string, len(customFieldKeys))
	for _, kv := range customFieldKeys {
		v := lead[kv[0]]
		if v == "" {
			v = fieldDefaults[kv[0]]
		}
		custom[kv[1]] = v
	}

	return Contact{
		FirstName:    lead["firstName"],
		LastName:     lead["lastName"],
		Email:        lead["email"],
		Phone:        lead["phone"],
		Address1:     lead["propertyAddress"],
		City:         lead["city"],
		State:        lead["state"],
		PostalCode:   lead["zipCode"],
		Source:       source,
		Tags:         []string{Tag(lead["formType"])},
		CustomFields: custom,
	}
}

// Tag is the contact tag for a form type.
func Tag(formType string) string {
	if formType == "buy" {
		return "Home Purchase"
	}
	return "Refinance"
}

// OpportunityFromLead names the opportunity "<tag> - <first> <last>" and
// values it at the digits of the purchase price, 0 when absent.
func OpportunityFromLead(contactID string, lead map[string]string) Opportunity {
	return Opportunity{
		ContactID:     contactID,
		Name:          Tag(lead["formType"]) + " - " + lead["firstName"] + " " + lead["lastName"],
		Status:        "open",
		MonetaryValue: MonetaryValue(lead["purchasePrice"]),
	}
}

// MonetaryValue keeps only the digits, so "201k-500k" is 201500.
func MonetaryValue(price string) int64 {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, price)
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
