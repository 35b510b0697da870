package formflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	mu       sync.Mutex
	payloads []map[string]string
	results  []Receipt
	errs     []error
	block    chan struct{}
}

func (s *recordingSubmitter) SubmitApplication(ctx context.Context, app Application) (Receipt, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.payloads)
	s.payloads = append(s.payloads, app.Payload())
	var err error
	if n < len(s.errs) {
		err = s.errs[n]
	}
	r := Receipt{Accepted: true}
	if n < len(s.results) {
		r = s.results[n]
	}
	return r, err
}

func TestGateFiresOnce(t *testing.T) {
	sub := &recordingSubmitter{}
	g := NewGate(sub)
	app := Application{Variant: "buy", Answers: NewAnswers().With("email", "a@b.co").With(ConfirmationStepID, "yes")}

	r, err := g.Fire(context.Background(), app)
	require.NoError(t, err)
	assert.True(t, r.Accepted)
	assert.True(t, g.Submitted())

	_, err = g.Fire(context.Background(), app)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	require.Len(t, sub.payloads, 1)
	assert.Equal(t, map[string]string{"email": "a@b.co", "confirmation": "yes", "formType": "buy"}, sub.payloads[0])
}

func TestGateRefusesWhileInFlight(t *testing.T) {
	sub := &recordingSubmitter{block: make(chan struct{})}
	g := NewGate(sub)
	app := Application{Variant: "refinance", Answers: NewAnswers()}

	done := make(chan error, 1)
	go func() {
		_, err := g.Fire(context.Background(), app)
		done <- err
	}()

	require.Eventually(t, g.Pending, timeoutShort, tick)
	_, err := g.Fire(context.Background(), app)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(sub.block)
	assert.NoError(t, <-done)
	assert.Equal(t, 1, g.Attempts())
}

func TestGateFailureReopensWithIdenticalPayload(t *testing.T) {
	sub := &recordingSubmitter{
		results: []Receipt{{Accepted: false}, {Accepted: true}},
		errs:    []error{nil, nil},
	}
	g := NewGate(sub)
	answers := NewAnswers().With("firstName", "Ada").With(ConfirmationStepID, "yes")
	app := Application{Variant: "buy", Answers: answers}

	_, err := g.Fire(context.Background(), app)
	var se *SubmissionError
	require.ErrorAs(t, err, &se)
	assert.False(t, g.Submitted())
	assert.Equal(t, "Ada", answers.Get("firstName"))

	_, err = g.Fire(context.Background(), app)
	require.NoError(t, err)
	require.Len(t, sub.payloads, 2)
	assert.Equal(t, sub.payloads[0], sub.payloads[1])
}

func TestGateTransportErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	g := NewGate(SubmitterFunc(func(context.Context, Application) (Receipt, error) {
		return Receipt{}, boom
	}))

	_, err := g.Fire(context.Background(), Application{Variant: "buy"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, g.Pending())
}
