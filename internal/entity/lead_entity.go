package entity

import (
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadCrmSubmitted LeadStatus = "crm_submitted"
	LeadCrmFailed    LeadStatus = "crm_failed"
	// LeadCrmSkipped means no CRM credentials were configured.
	LeadCrmSkipped LeadStatus = "crm_skipped"
)

// Lead is a submitted application as stored for follow-up.
type Lead struct {
	Id            uuid.UUID
	FormType      string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Answers       map[string]string
	PayloadHash   string
	Status        LeadStatus
	ContactId     string
	OpportunityId string
	CrmError      string
	Attempts      int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func (l *Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}
