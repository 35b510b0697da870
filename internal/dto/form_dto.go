package dto

import (
	"time"

	"mortgage-connect-be/pkg/formflow"

	"github.com/google/uuid"
)

type CreateFormSessionRequest struct {
	Variant string `json:"variant" validate:"required,oneof=buy refinance"`
}

type AnswerRequest struct {
	Value string `json:"value"`
}

// StepView is the wizard page for the current step. Position and Total count
// visible steps under the answers so far, so Total can change as the
// applicant answers branching questions.
type StepView struct {
	SessionId          uuid.UUID         `json:"session_id"`
	Variant            string            `json:"variant"`
	Status             string            `json:"status"`
	StepId             string            `json:"step_id"`
	FieldKey           string            `json:"field_key"`
	Prompt             string            `json:"prompt"`
	Input              string            `json:"input"`
	Options            []formflow.Option `json:"options,omitempty"`
	Position           int               `json:"position"`
	Total              int               `json:"total"`
	CanGoBack          bool              `json:"can_go_back"`
	AutoAdvanceMs      int64             `json:"auto_advance_ms,omitempty"`
	Answer             string            `json:"answer,omitempty"`
	AwaitingSubmission bool              `json:"awaiting_submission"`
	LastError          string            `json:"last_error,omitempty"`
}

type SubmissionResult struct {
	Submitted bool   `json:"submitted"`
	Pending   bool   `json:"pending,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
	Reference string `json:"reference,omitempty"`
	Redirect  string `json:"redirect,omitempty"`
	Message   string `json:"message,omitempty"`
}

// AnswerResponse carries the next page, or the submission outcome after an
// affirmative confirmation.
type AnswerResponse struct {
	Step       *StepView         `json:"step,omitempty"`
	Submission *SubmissionResult `json:"submission,omitempty"`
}

type VariantResponse struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Steps       int    `json:"steps"`
}

type MessageView struct {
	Id        uuid.UUID `json:"id"`
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	FieldKey  string    `json:"field_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TranscriptResponse struct {
	SessionId uuid.UUID     `json:"session_id"`
	Variant   string        `json:"variant"`
	Status    string        `json:"status"`
	Messages  []MessageView `json:"messages"`
}
