package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"mortgage-connect-be/internal/catalog"
	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/repository/contract"
	"mortgage-connect-be/pkg/formflow"
	"mortgage-connect-be/pkg/typewriter"

	"github.com/google/uuid"
)

const (
	stillTypingMessage = "One moment, I'm still typing."
	submittedMessage   = "This application was already submitted."
	submitTimeout      = 30 * time.Second
)

// FrameSink receives outbound chat frames. Emit must not block.
type FrameSink interface {
	Emit(frame dto.ChatFrame)
}

// IConversationService drives the chat form: prompts are typed out, answers
// are echoed into an append-only transcript, and there is no way back.
type IConversationService interface {
	Start(ctx context.Context, variant string, sink FrameSink) (uuid.UUID, error)
	Receive(ctx context.Context, id uuid.UUID, frame dto.ChatFrame) error
	Close(id uuid.UUID)
	Transcript(ctx context.Context, id uuid.UUID) (*dto.TranscriptResponse, error)
}

type ConversationPacing struct {
	RevealDelay time.Duration
	SubmitPause time.Duration
}

// chatRuntime is the live half of a chat session: its socket, typewriter and
// the busy flag that is set while a prompt is revealed or an answer handled.
// closed is set once the application has been submitted.
type chatRuntime struct {
	sess   *entity.FormSession
	cat    *formflow.Catalog
	sink   FrameSink
	tw     *typewriter.Typewriter
	ctx    context.Context
	cancel context.CancelFunc
	busy   atomic.Bool
	closed atomic.Bool
}

type conversationService struct {
	engine *formEngine
	pacing ConversationPacing

	mu    sync.Mutex
	chats map[uuid.UUID]*chatRuntime
}

func NewConversationService(
	registry *catalog.Registry,
	sessions contract.FormSessionRepository,
	submitter formflow.Submitter,
	brand *config.Brand,
	pacing ConversationPacing,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		engine: newFormEngine(registry, sessions, submitter, brand, log, "ConversationService"),
		pacing: pacing,
		chats:  make(map[uuid.UUID]*chatRuntime),
	}
}

func (s *conversationService) Start(ctx context.Context, variant string, sink FrameSink) (uuid.UUID, error) {
	sess, cat, err := s.engine.open(ctx, variant, entity.FormModeChat)
	if err != nil {
		return uuid.Nil, err
	}

	rtCtx, cancel := context.WithCancel(context.Background())
	rt := &chatRuntime{
		sess:   sess,
		cat:    cat,
		sink:   sink,
		tw:     typewriter.New(s.pacing.RevealDelay),
		ctx:    rtCtx,
		cancel: cancel,
	}
	rt.busy.Store(true)

	s.mu.Lock()
	s.chats[sess.Id] = rt
	s.mu.Unlock()

	sink.Emit(dto.ChatFrame{Type: dto.FrameSession, SessionId: sess.Id.String()})
	go s.present(rt)
	return sess.Id, nil
}

func (s *conversationService) Receive(ctx context.Context, id uuid.UUID, frame dto.ChatFrame) error {
	rt, ok := s.runtime(id)
	if !ok {
		return ErrSessionNotFound
	}

	switch frame.Type {
	case dto.FrameAnswer:
		return s.answer(rt, frame.Value)
	case dto.FrameRetry:
		return s.retry(rt)
	default:
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: "Unsupported message."})
		return nil
	}
}

// Close stops any reveal in progress. The session itself stays readable
// until it expires.
func (s *conversationService) Close(id uuid.UUID) {
	s.mu.Lock()
	rt, ok := s.chats[id]
	delete(s.chats, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	rt.tw.Stop()
	rt.cancel()
	s.engine.logger.Info("ConversationService", "Chat closed", map[string]interface{}{"session_id": id.String()})
}

func (s *conversationService) Transcript(ctx context.Context, id uuid.UUID) (*dto.TranscriptResponse, error) {
	sess, _, err := s.engine.load(ctx, id, entity.FormModeChat)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	return s.engine.transcript(sess), nil
}

func (s *conversationService) runtime(id uuid.UUID) (*chatRuntime, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.chats[id]
	return rt, ok
}

// present types out the current prompt, commits it to the transcript and
// offers the input controls. It clears the busy flag when done.
func (s *conversationService) present(rt *chatRuntime) {
	rt.sess.Lock()
	step, err := rt.cat.Current(rt.sess.Cursor)
	if err != nil {
		s.engine.halt(rt.sess, err)
		rt.sess.Unlock()
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: haltedMessage})
		return
	}
	text := step.Render(rt.sess.Answers)
	rt.sess.Unlock()

	err = rt.tw.Reveal(rt.ctx, text, func(prefix string) {
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameTyping, Text: prefix})
	})
	if err != nil {
		return
	}

	rt.sess.Lock()
	rt.sess.Append(entity.SpeakerBot, text, step.FieldKey)
	rt.sess.Unlock()

	rt.sink.Emit(dto.ChatFrame{Type: dto.FrameMessage, Speaker: string(entity.SpeakerBot), Text: text, FieldKey: step.FieldKey})
	rt.sink.Emit(dto.ChatFrame{Type: dto.FrameControls, StepId: step.ID, FieldKey: step.FieldKey, Input: string(step.Input), Options: step.Options})
	rt.busy.Store(false)
}

func (s *conversationService) answer(rt *chatRuntime, raw string) error {
	if rt.closed.Load() {
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: submittedMessage})
		return ErrSessionClosed
	}
	if !rt.busy.CompareAndSwap(false, true) {
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: stillTypingMessage})
		return ErrStillTyping
	}

	rt.sess.Lock()
	tr, err := s.engine.answer(rt.sess, rt.cat, raw)
	if err != nil {
		rt.sess.Unlock()
		return s.rejectAnswer(rt, err)
	}

	echo := tr.Value
	if tr.Step.Input == formflow.InputSelect {
		echo = tr.Step.OptionLabel(tr.Value)
	}
	rt.sess.Append(entity.SpeakerUser, echo, tr.Step.FieldKey)
	rt.sess.Unlock()

	rt.sink.Emit(dto.ChatFrame{Type: dto.FrameMessage, Speaker: string(entity.SpeakerUser), Text: echo, FieldKey: tr.Step.FieldKey})

	if tr.Outcome == formflow.OutcomeSubmit {
		go s.submit(rt, s.pacing.SubmitPause)
		return nil
	}
	go s.present(rt)
	return nil
}

func (s *conversationService) rejectAnswer(rt *chatRuntime, err error) error {
	var verr *formflow.ValidationError
	switch {
	case errors.As(err, &verr):
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: verr.Message, FieldKey: verr.FieldKey})
		rt.busy.Store(false)
		return nil
	case formflow.IsNavigation(err), errors.Is(err, ErrSessionHalted):
		// busy stays set: the session takes no more input
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: haltedMessage})
		return err
	case errors.Is(err, ErrSessionClosed):
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: submittedMessage})
	case errors.Is(err, formflow.ErrFlowComplete):
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: retryMessage, Retryable: true})
	default:
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: stillTypingMessage})
	}
	rt.busy.Store(false)
	return err
}

func (s *conversationService) retry(rt *chatRuntime) error {
	if rt.closed.Load() {
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: submittedMessage})
		return ErrSessionClosed
	}
	if !rt.busy.CompareAndSwap(false, true) {
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: stillTypingMessage})
		return ErrStillTyping
	}

	rt.sess.Lock()
	awaiting := rt.sess.Cursor.Complete && rt.sess.Status == entity.SessionActive
	rt.sess.Unlock()
	if !awaiting {
		rt.busy.Store(false)
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: "There is nothing to retry yet."})
		return ErrNotAwaitingSubmission
	}

	go s.submit(rt, 0)
	return nil
}

// submit waits pause, then fires the gate. A disconnect during the pause
// abandons the submission; once fired it runs to completion.
func (s *conversationService) submit(rt *chatRuntime, pause time.Duration) {
	if pause > 0 {
		timer := time.NewTimer(pause)
		select {
		case <-timer.C:
		case <-rt.ctx.Done():
			timer.Stop()
			return
		}
	}

	rt.sink.Emit(dto.ChatFrame{Type: dto.FrameSubmitting})

	ctx, cancel := context.WithTimeout(context.WithoutCancel(rt.ctx), submitTimeout)
	defer cancel()

	result, err := s.engine.submit(ctx, rt.sess)
	switch {
	case err == nil:
		rt.closed.Store(true)
		rt.busy.Store(false)
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameSubmitted, Redirect: result.Redirect, Message: result.Message})
	case errors.Is(err, formflow.ErrSubmissionInFlight):
		// the attempt already in flight reports its own outcome
	case result != nil && result.Retryable:
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: result.Message, Retryable: true})
		rt.busy.Store(false)
	default:
		rt.sink.Emit(dto.ChatFrame{Type: dto.FrameError, Message: haltedMessage})
	}
}
