package dto

import "mortgage-connect-be/pkg/formflow"

type FrameType string

const (
	FrameSession    FrameType = "session"
	FrameTyping     FrameType = "typing"
	FrameMessage    FrameType = "message"
	FrameControls   FrameType = "controls"
	FrameError      FrameType = "error"
	FrameSubmitting FrameType = "submitting"
	FrameSubmitted  FrameType = "submitted"

	FrameAnswer FrameType = "answer"
	FrameRetry  FrameType = "retry"
)

// ChatFrame is one websocket message in either direction. Only the fields
// relevant to Type are set.
type ChatFrame struct {
	Type      FrameType         `json:"type"`
	SessionId string            `json:"session_id,omitempty"`
	Text      string            `json:"text,omitempty"`
	Speaker   string            `json:"speaker,omitempty"`
	FieldKey  string            `json:"field_key,omitempty"`
	StepId    string            `json:"step_id,omitempty"`
	Input     string            `json:"input,omitempty"`
	Options   []formflow.Option `json:"options,omitempty"`
	Message   string            `json:"message,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
	Redirect  string            `json:"redirect,omitempty"`
	Value     string            `json:"value,omitempty"`
}
