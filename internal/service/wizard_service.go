package service

import (
	"context"
	"errors"
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

// IWizardService drives the paginated form: one step per page, back
// navigation, retry after a failed submission.
type IWizardService interface {
	Variants(ctx context.Context) []dto.VariantResponse
	Create(ctx context.Context, req *dto.CreateFormSessionRequest) (*dto.StepView, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.StepView, error)
	Answer(ctx context.Context, id uuid.UUID, req *dto.AnswerRequest) (*dto.AnswerResponse, error)
	Back(ctx context.Context, id uuid.UUID) (*dto.StepView, error)
	Submit(ctx context.Context, id uuid.UUID) (*dto.SubmissionResult, error)
	Discard(ctx context.Context, id uuid.UUID) error
}

type wizardService struct {
	engine      *formEngine
	autoAdvance time.Duration
}

func NewWizardService(
	registry *catalog.Registry,
	sessions contract.FormSessionRepository,
	submitter formflow.Submitter,
	brand *config.Brand,
	autoAdvance time.Duration,
	log logger.ILogger,
) IWizardService {
	return &wizardService{
		engine:      newFormEngine(registry, sessions, submitter, brand, log, "WizardService"),
		autoAdvance: autoAdvance,
	}
}

func (s *wizardService) Variants(ctx context.Context) []dto.VariantResponse {
	var out []dto.VariantResponse
	for _, id := range s.engine.registry.Variants() {
		cat, err := s.engine.registry.ForVariant(id)
		if err != nil {
			continue
		}
		v := dto.VariantResponse{Id: id, Title: id, Steps: cat.Len()}
		if opt, ok := s.engine.brand.FormOption(id); ok {
			v.Title = opt.Title
			v.Description = opt.Description
			v.Image = opt.Image
		}
		out = append(out, v)
	}
	return out
}

func (s *wizardService) Create(ctx context.Context, req *dto.CreateFormSessionRequest) (*dto.StepView, error) {
	sess, cat, err := s.engine.open(ctx, req.Variant, entity.FormModeWizard)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	return s.view(sess, cat), nil
}

func (s *wizardService) Show(ctx context.Context, id uuid.UUID) (*dto.StepView, error) {
	sess, cat, err := s.engine.load(ctx, id, entity.FormModeWizard)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	return s.view(sess, cat), nil
}

func (s *wizardService) Answer(ctx context.Context, id uuid.UUID, req *dto.AnswerRequest) (*dto.AnswerResponse, error) {
	sess, cat, err := s.engine.load(ctx, id, entity.FormModeWizard)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	tr, err := s.engine.answer(sess, cat, req.Value)
	if err != nil {
		sess.Unlock()
		return nil, err
	}
	if tr.Outcome != formflow.OutcomeSubmit {
		defer sess.Unlock()
		return &dto.AnswerResponse{Step: s.view(sess, cat)}, nil
	}
	sess.Unlock()

	// A failed submission is not an error for the page: the applicant stays
	// on the confirmation view and can retry.
	result, err := s.engine.submit(ctx, sess)
	if err != nil && result == nil {
		return nil, err
	}
	resp := &dto.AnswerResponse{Submission: result}
	if !result.Submitted {
		sess.Lock()
		resp.Step = s.view(sess, cat)
		sess.Unlock()
	}
	return resp, nil
}

func (s *wizardService) Back(ctx context.Context, id uuid.UUID) (*dto.StepView, error) {
	sess, cat, err := s.engine.load(ctx, id, entity.FormModeWizard)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	if err := statusError(sess.Status); err != nil {
		return nil, err
	}

	if sess.Cursor.Complete {
		// reopen the confirmation question itself
		sess.Advance(formflow.Cursor{Position: sess.Cursor.Position}, sess.Answers)
	} else {
		sess.Advance(cat.Back(sess.Cursor, sess.Answers), sess.Answers)
	}
	sess.LastError = ""
	return s.view(sess, cat), nil
}

func (s *wizardService) Submit(ctx context.Context, id uuid.UUID) (*dto.SubmissionResult, error) {
	sess, _, err := s.engine.load(ctx, id, entity.FormModeWizard)
	if err != nil {
		return nil, err
	}
	return s.engine.submit(ctx, sess)
}

func (s *wizardService) Discard(ctx context.Context, id uuid.UUID) error {
	sess, _, err := s.engine.load(ctx, id, entity.FormModeWizard)
	if err != nil {
		return err
	}
	if sess.Gate.Pending() {
		return formflow.ErrSubmissionInFlight
	}
	if err := s.engine.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.engine.logger.Info("WizardService", "Form session discarded", map[string]interface{}{"session_id": id.String()})
	return nil
}

// view renders the current step. The caller holds the session lock.
func (s *wizardService) view(sess *entity.FormSession, cat *formflow.Catalog) *dto.StepView {
	v := &dto.StepView{
		SessionId:          sess.Id,
		Variant:            sess.Variant,
		Status:             string(sess.Status),
		AwaitingSubmission: sess.Cursor.Complete,
		LastError:          sess.LastError,
	}

	step, ok := cat.StepAt(sess.Cursor.Position)
	if !ok {
		return v
	}

	path := cat.Path(sess.Answers)
	v.Total = len(path)
	v.Position = v.Total
	for i, id := range path {
		if id == step.ID {
			v.Position = i + 1
			break
		}
	}

	v.StepId = step.ID
	v.FieldKey = step.FieldKey
	v.Prompt = step.Render(sess.Answers)
	v.Input = string(step.Input)
	v.Options = step.Options
	v.Answer = sess.Answers.Get(step.FieldKey)
	if step.Input == formflow.InputSelect {
		v.AutoAdvanceMs = s.autoAdvance.Milliseconds()
	}
	if sess.Status == entity.SessionActive {
		v.CanGoBack = sess.Cursor.Complete || cat.CanGoBack(sess.Cursor, sess.Answers)
	}
	return v
}

// IsRetryableSubmission reports whether err came from a failed delivery that
// the applicant can retry.
func IsRetryableSubmission(err error) bool {
	var serr *formflow.SubmissionError
	return errors.As(err, &serr)
}
