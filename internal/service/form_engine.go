package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mortgage-connect-be/internal/catalog"
	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/repository/contract"
	"mortgage-connect-be/pkg/formflow"

	"github.com/google/uuid"
)

const (
	haltedMessage = "Something went wrong. Please refresh the page and start over."
	retryMessage  = "We couldn't submit your application. Please try again."
)

// formEngine is the session bookkeeping shared by the wizard and chat
// adapters: opening sessions, applying answers and firing the gate.
type formEngine struct {
	registry  *catalog.Registry
	sessions  contract.FormSessionRepository
	submitter formflow.Submitter
	brand     *config.Brand
	logger    logger.ILogger
	module    string
}

func newFormEngine(
	registry *catalog.Registry,
	sessions contract.FormSessionRepository,
	submitter formflow.Submitter,
	brand *config.Brand,
	log logger.ILogger,
	module string,
) *formEngine {
	return &formEngine{
		registry:  registry,
		sessions:  sessions,
		submitter: submitter,
		brand:     brand,
		logger:    log,
		module:    module,
	}
}

func (e *formEngine) open(ctx context.Context, variant string, mode entity.FormMode) (*entity.FormSession, *formflow.Catalog, error) {
	cat, err := e.registry.ForVariant(variant)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	start, err := cat.Start()
	if err != nil {
		e.logger.Error(e.module, "Catalog has no starting step", map[string]interface{}{"variant": variant, "error": err.Error()})
		return nil, nil, err
	}

	sess := entity.NewFormSession(variant, mode, start, formflow.NewGate(e.submitter))
	if err := e.sessions.Save(ctx, sess); err != nil {
		return nil, nil, err
	}

	e.logger.Info(e.module, "Form session started", map[string]interface{}{
		"session_id": sess.Id.String(),
		"variant":    variant,
		"mode":       string(mode),
	})
	return sess, cat, nil
}

func (e *formEngine) load(ctx context.Context, id uuid.UUID, mode entity.FormMode) (*entity.FormSession, *formflow.Catalog, error) {
	sess, err := e.sessions.FindById(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, ErrSessionNotFound
	}
	if mode != "" && sess.Mode != mode {
		return nil, nil, ErrModeMismatch
	}
	cat, err := e.registry.ForVariant(sess.Variant)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownVariant, sess.Variant)
	}
	return sess, cat, nil
}

// answer applies raw to the current step. The caller holds the session lock.
// Validation errors leave the session untouched.
func (e *formEngine) answer(sess *entity.FormSession, cat *formflow.Catalog, raw string) (formflow.Transition, error) {
	if err := statusError(sess.Status); err != nil {
		return formflow.Transition{}, err
	}

	tr, err := cat.Answer(sess.Cursor, sess.Answers, raw)
	if err != nil {
		if formflow.IsNavigation(err) {
			e.halt(sess, err)
		}
		return formflow.Transition{}, err
	}

	if tr.Outcome == formflow.OutcomeComplete {
		// every catalog ends at a confirmation step
		navErr := &formflow.NavigationError{
			Variant: cat.Variant(),
			From:    tr.Step.ID,
			Reason:  "ran out of steps before confirmation",
		}
		sess.Advance(tr.Cursor, tr.Answers)
		e.halt(sess, navErr)
		return formflow.Transition{}, navErr
	}

	sess.Advance(tr.Cursor, tr.Answers)
	return tr, nil
}

func (e *formEngine) halt(sess *entity.FormSession, cause error) {
	sess.Status = entity.SessionHalted
	sess.LastError = haltedMessage
	sess.UpdatedAt = time.Now()
	e.logger.Error(e.module, "Form session halted", map[string]interface{}{
		"session_id": sess.Id.String(),
		"variant":    sess.Variant,
		"position":   sess.Cursor.Position,
		"error":      cause.Error(),
	})
}

// submit fires the session's gate with the current answers. The caller must
// not hold the session lock. On failure the session returns to active with
// answers intact so the identical payload can be retried.
func (e *formEngine) submit(ctx context.Context, sess *entity.FormSession) (*dto.SubmissionResult, error) {
	sess.Lock()
	switch sess.Status {
	case entity.SessionSubmitted:
		sess.Unlock()
		return e.submittedResult(""), nil
	case entity.SessionHalted:
		sess.Unlock()
		return nil, ErrSessionHalted
	}
	if !sess.Cursor.Complete {
		sess.Unlock()
		return nil, ErrNotAwaitingSubmission
	}
	app := formflow.Application{Variant: sess.Variant, Answers: sess.Answers}
	gate := sess.Gate
	sess.Status = entity.SessionSubmitting
	sess.Unlock()

	receipt, err := gate.Fire(ctx, app)

	sess.Lock()
	defer sess.Unlock()

	switch {
	case err == nil, errors.Is(err, formflow.ErrAlreadySubmitted):
		sess.Status = entity.SessionSubmitted
		sess.Answers = formflow.NewAnswers()
		sess.LastError = ""
		sess.UpdatedAt = time.Now()
		if delErr := e.sessions.Delete(ctx, sess.Id); delErr != nil {
			e.logger.Warn(e.module, "Failed to discard submitted session", map[string]interface{}{"session_id": sess.Id.String(), "error": delErr.Error()})
		}
		e.logger.Info(e.module, "Application submitted", map[string]interface{}{
			"session_id": sess.Id.String(),
			"variant":    sess.Variant,
			"reference":  receipt.Reference,
			"attempts":   gate.Attempts(),
		})
		return e.submittedResult(receipt.Reference), nil

	case errors.Is(err, formflow.ErrSubmissionInFlight):
		return &dto.SubmissionResult{Pending: true, Message: "Your application is being submitted."}, err

	default:
		sess.Status = entity.SessionActive
		sess.LastError = retryMessage
		sess.UpdatedAt = time.Now()
		e.logger.Warn(e.module, "Submission failed", map[string]interface{}{
			"session_id": sess.Id.String(),
			"variant":    sess.Variant,
			"attempts":   gate.Attempts(),
			"error":      err.Error(),
		})
		return &dto.SubmissionResult{Retryable: true, Message: retryMessage}, err
	}
}

func (e *formEngine) submittedResult(reference string) *dto.SubmissionResult {
	return &dto.SubmissionResult{
		Submitted: true,
		Reference: reference,
		Redirect:  e.brand.ThankYouPath,
		Message:   "Thank you! Your application has been submitted.",
	}
}

func (e *formEngine) transcript(sess *entity.FormSession) *dto.TranscriptResponse {
	msgs := sess.TranscriptCopy()
	out := &dto.TranscriptResponse{
		SessionId: sess.Id,
		Variant:   sess.Variant,
		Status:    string(sess.Status),
		Messages:  make([]dto.MessageView, len(msgs)),
	}
	for i, m := range msgs {
		out.Messages[i] = dto.MessageView{
			Id:        m.Id,
			Speaker:   string(m.Speaker),
			Text:      m.Text,
			FieldKey:  m.FieldKey,
			CreatedAt: m.CreatedAt,
		}
	}
	return out
}

func statusError(status entity.SessionStatus) error {
	switch status {
	case entity.SessionHalted:
		return ErrSessionHalted
	case entity.SessionSubmitting:
		return formflow.ErrSubmissionInFlight
	case entity.SessionSubmitted:
		return ErrSessionClosed
	}
	return nil
}
