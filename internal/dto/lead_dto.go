package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitLeadRequest is the flat answer map plus formType. Values are strings.
type SubmitLeadRequest map[string]string

type SubmitLeadResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	LeadId       string `json:"lead_id,omitempty"`
	ContactId    string `json:"contactId,omitempty"`
	GhlSubmitted bool   `json:"ghlSubmitted"`
	Duplicate    bool   `json:"duplicate,omitempty"`
}

type LeadHealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

type LeadResponse struct {
	Id            uuid.UUID         `json:"id"`
	FormType      string            `json:"form_type"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Status        string            `json:"status"`
	ContactId     string            `json:"contact_id,omitempty"`
	OpportunityId string            `json:"opportunity_id,omitempty"`
	CrmError      string            `json:"crm_error,omitempty"`
	Attempts      int               `json:"attempts"`
	Answers       map[string]string `json:"answers"`
	CreatedAt     time.Time         `json:"created_at"`
}

// LeadReceivedMessage is the watermill payload published after a lead is stored.
type LeadReceivedMessage struct {
	LeadId    uuid.UUID         `json:"lead_id"`
	FormType  string            `json:"form_type"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	CrmStatus string            `json:"crm_status"`
	Answers   map[string]string `json:"answers"`
}
