package service

import (
	"context"
	"testing"
	"time"

	"mortgage-connect-be/internal/catalog"
	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/repository/memory"
	"mortgage-connect-be/pkg/formflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversation(t *testing.T, sub formflow.Submitter, pause time.Duration) IConversationService {
	t.Helper()
	return NewConversationService(
		catalog.MustBuild(),
		memory.NewFormSessionRepository(time.Hour),
		sub,
		config.DefaultBrand(),
		ConversationPacing{RevealDelay: time.Microsecond, SubmitPause: pause},
		logger.NewNopLogger(),
	)
}

// chatUntil answers each offered step from script until the controls for
// stopAt arrive. It returns the number of controls frames seen so far.
func chatUntil(t *testing.T, svc IConversationService, id uuid.UUID, sink *recordingSink, script map[string]string, stopAt string) int {
	t.Helper()
	for n := 1; n < 64; n++ {
		controls := sink.waitFor(t, dto.FrameControls, n)
		if controls.StepId == stopAt {
			return n
		}
		value, ok := script[controls.StepId]
		require.True(t, ok, "no scripted answer for %s", controls.StepId)
		require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: value}))
	}
	t.Fatalf("never reached %s", stopAt)
	return 0
}

func TestConversationTypesFirstPrompt(t *testing.T) {
	svc := newConversation(t, &fakeSubmitter{}, 0)
	sink := &recordingSink{}

	id, err := svc.Start(context.Background(), catalog.VariantBuy, sink)
	require.NoError(t, err)
	defer svc.Close(id)

	controls := sink.waitFor(t, dto.FrameControls, 1)
	assert.Equal(t, catalog.StepApplicantType, controls.StepId)
	assert.NotEmpty(t, controls.Options)

	session := sink.ofType(dto.FrameSession)
	require.Len(t, session, 1)
	assert.Equal(t, id.String(), session[0].SessionId)

	msg := sink.ofType(dto.FrameMessage)[0]
	typing := sink.ofType(dto.FrameTyping)
	require.NotEmpty(t, typing)
	assert.Equal(t, len([]rune(msg.Text)), len(typing))
	assert.Equal(t, msg.Text, typing[len(typing)-1].Text)
	for i := 1; i < len(typing); i++ {
		assert.True(t, len(typing[i].Text) > len(typing[i-1].Text))
	}
}

func TestConversationFullRunSubmits(t *testing.T) {
	sub := &fakeSubmitter{}
	svc := newConversation(t, sub, time.Millisecond)
	sink := &recordingSink{}
	script := applicantScript(map[string]string{catalog.StepApplicantType: catalog.ApplicantCoApplicant})

	id, err := svc.Start(context.Background(), catalog.VariantRefinance, sink)
	require.NoError(t, err)
	defer svc.Close(id)

	chatUntil(t, svc, id, sink, script, catalog.StepConfirmation)
	require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: formflow.ConfirmYes}))

	done := sink.waitFor(t, dto.FrameSubmitted, 1)
	assert.Equal(t, "/submitted", done.Redirect)
	assert.Len(t, sink.ofType(dto.FrameSubmitting), 1)

	calls := sub.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Grace", calls[0][catalog.StepCoApplicantFirstName])
}

func TestConversationRefusesInputAfterSubmit(t *testing.T) {
	sub := &fakeSubmitter{}
	svc := newConversation(t, sub, 0)
	sink := &recordingSink{}

	id, err := svc.Start(context.Background(), catalog.VariantBuy, sink)
	require.NoError(t, err)
	defer svc.Close(id)

	chatUntil(t, svc, id, sink, applicantScript(nil), catalog.StepConfirmation)
	require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: formflow.ConfirmYes}))
	sink.waitFor(t, dto.FrameSubmitted, 1)

	err = svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: "anything"})
	assert.ErrorIs(t, err, ErrSessionClosed)
	err = svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameRetry})
	assert.ErrorIs(t, err, ErrSessionClosed)

	errs := sink.ofType(dto.FrameError)
	require.Len(t, errs, 2)
	for _, f := range errs {
		assert.Equal(t, submittedMessage, f.Message)
	}
	assert.Len(t, sub.calls(), 1)
}

func TestConversationEchoesOptionLabel(t *testing.T) {
	svc := newConversation(t, &fakeSubmitter{}, 0)
	sink := &recordingSink{}
	id, err := svc.Start(context.Background(), catalog.VariantBuy, sink)
	require.NoError(t, err)
	defer svc.Close(id)

	sink.waitFor(t, dto.FrameControls, 1)
	require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: catalog.ApplicantIndividual}))
	sink.waitFor(t, dto.FrameControls, 2)

	tr, err := svc.Transcript(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, tr.Messages, 3)
	assert.Equal(t, "bot", tr.Messages[0].Speaker)
	assert.Equal(t, "user", tr.Messages[1].Speaker)
	assert.NotEqual(t, catalog.ApplicantIndividual, tr.Messages[1].Text)
	assert.Equal(t, catalog.StepApplicantType, tr.Messages[1].FieldKey)
}

func TestConversationRefusesInputWhileTyping(t *testing.T) {
	svc := NewConversationService(
		catalog.MustBuild(),
		memory.NewFormSessionRepository(time.Hour),
		&fakeSubmitter{},
		config.DefaultBrand(),
		ConversationPacing{RevealDelay: 50 * time.Millisecond},
		logger.NewNopLogger(),
	)
	sink := &recordingSink{}
	id, err := svc.Start(context.Background(), catalog.VariantBuy, sink)
	require.NoError(t, err)
	defer svc.Close(id)

	err = svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: catalog.ApplicantIndividual})
	assert.ErrorIs(t, err, ErrStillTyping)

	errs := sink.ofType(dto.FrameError)
	require.Len(t, errs, 1)
	assert.Equal(t, stillTypingMessage, errs[0].Message)
}

func TestConversationValidationErrorKeepsStep(t *testing.T) {
	svc := newConversation(t, &fakeSubmitter{}, 0)
	sink := &recordingSink{}
	id, err := svc.Start(context.Background(), catalog.VariantBuy, sink)
	require.NoError(t, err)
	defer svc.Close(id)

	n := chatUntil(t, svc, id, sink, applicantScript(nil), catalog.StepEmail)
	require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: "not-an-email"}))

	errs := sink.ofType(dto.FrameError)
	require.Len(t, errs, 1)
	assert.Equal(t, catalog.StepEmail, errs[0].FieldKey)

	// the same step accepts a corrected answer
	require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: "ada@example.com"}))
	next := sink.waitFor(t, dto.FrameControls, n+1)
	assert.Equal(t, catalog.StepPhone, next.StepId)
}

func TestConversationRetryAfterFailure(t *testing.T) {
	sub := &fakeSubmitter{failures: 1}
	svc := newConversation(t, sub, 0)
	sink := &recordingSink{}
	id, err := svc.Start(context.Background(), catalog.VariantBuy, sink)
	require.NoError(t, err)
	defer svc.Close(id)

	chatUntil(t, svc, id, sink, applicantScript(nil), catalog.StepConfirmation)
	require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: formflow.ConfirmYes}))

	require.Eventually(t, func() bool {
		for _, f := range sink.ofType(dto.FrameError) {
			if f.Retryable {
				return true
			}
		}
		return false
	}, 5*time.Second, time.Millisecond)

	require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameRetry}))
	sink.waitFor(t, dto.FrameSubmitted, 1)

	calls := sub.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0], calls[1])
}

func TestConversationCloseDuringPauseAbandonsSubmit(t *testing.T) {
	sub := &fakeSubmitter{}
	svc := newConversation(t, sub, 200*time.Millisecond)
	sink := &recordingSink{}
	id, err := svc.Start(context.Background(), catalog.VariantBuy, sink)
	require.NoError(t, err)

	chatUntil(t, svc, id, sink, applicantScript(nil), catalog.StepConfirmation)
	require.NoError(t, svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: formflow.ConfirmYes}))
	svc.Close(id)

	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, sub.calls())
	assert.Empty(t, sink.ofType(dto.FrameSubmitting))

	err = svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameAnswer, Value: "x"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConversationRetryBeforeConfirmation(t *testing.T) {
	svc := newConversation(t, &fakeSubmitter{}, 0)
	sink := &recordingSink{}
	id, err := svc.Start(context.Background(), catalog.VariantBuy, sink)
	require.NoError(t, err)
	defer svc.Close(id)

	sink.waitFor(t, dto.FrameControls, 1)
	err = svc.Receive(context.Background(), id, dto.ChatFrame{Type: dto.FrameRetry})
	assert.ErrorIs(t, err, ErrNotAwaitingSubmission)
}
