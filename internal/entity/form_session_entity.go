package entity

import (
	"sync"
	"time"

	"mortgage-connect-be/pkg/formflow"

	"github.com/google/uuid"
)

type FormMode string

const (
	FormModeWizard FormMode = "wizard"
	FormModeChat   FormMode = "chat"
)

type SessionStatus string

const (
	SessionActive     SessionStatus = "active"
	SessionSubmitting SessionStatus = "submitting"
	SessionSubmitted  SessionStatus = "submitted"
	// SessionHalted follows a navigation defect. The session accepts no
	// further input.
	SessionHalted SessionStatus = "halted"
)

type Speaker string

const (
	SpeakerBot  Speaker = "bot"
	SpeakerUser Speaker = "user"
)

// Message is one transcript line. Transcripts only grow.
type Message struct {
	Id        uuid.UUID
	Speaker   Speaker
	Text      string
	FieldKey  string
	CreatedAt time.Time
}

// FormSession is one applicant's pass through a questionnaire. Callers hold
// the session lock while reading or replacing Cursor, Answers or Status.
type FormSession struct {
	mu sync.Mutex

	Id         uuid.UUID
	Variant    string
	Mode       FormMode
	Cursor     formflow.Cursor
	Answers    formflow.Answers
	Transcript []Message
	Status     SessionStatus
	Gate       *formflow.Gate
	LastError  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewFormSession(variant string, mode FormMode, start formflow.Cursor, gate *formflow.Gate) *FormSession {
	now := time.Now()
	return &FormSession{
		Id:        uuid.New(),
		Variant:   variant,
		Mode:      mode,
		Cursor:    start,
		Answers:   formflow.NewAnswers(),
		Status:    SessionActive,
		Gate:      gate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *FormSession) Lock()   { s.mu.Lock() }
func (s *FormSession) Unlock() { s.mu.Unlock() }

// Append adds a transcript line. The caller holds the lock.
func (s *FormSession) Append(speaker Speaker, text, fieldKey string) Message {
	msg := Message{
		Id:        uuid.New(),
		Speaker:   speaker,
		Text:      text,
		FieldKey:  fieldKey,
		CreatedAt: time.Now(),
	}
	s.Transcript = append(s.Transcript, msg)
	s.UpdatedAt = msg.CreatedAt
	return msg
}

// Advance replaces cursor and answers together. The caller holds the lock.
func (s *FormSession) Advance(cur formflow.Cursor, answers formflow.Answers) {
	s.Cursor = cur
	s.Answers = answers
	s.UpdatedAt = time.Now()
}

// TranscriptCopy returns a snapshot safe to hand outside the lock.
func (s *FormSession) TranscriptCopy() []Message {
	out := make([]Message, len(s.Transcript))
	copy(out, s.Transcript)
	return out
}

func (s *FormSession) AcceptsInput() bool {
	return s.Status == SessionActive
}
