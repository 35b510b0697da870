package formflow

import (
	"context"
	"sync"
)

// Application is what leaves the form: every answer plus the variant tag.
type Application struct {
	Variant string
	Answers Answers
}

// Payload flattens the application into the JSON object the submit endpoint accepts.
func (a Application) Payload() map[string]string {
	m := a.Answers.Map()
	m["formType"] = a.Variant
	return m
}

// Receipt is the collaborator's answer to one submission attempt.
type Receipt struct {
	Accepted  bool   `json:"accepted"`
	Reference string `json:"reference,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Submitter delivers a finished application.
type Submitter interface {
	SubmitApplication(ctx context.Context, app Application) (Receipt, error)
}

type SubmitterFunc func(ctx context.Context, app Application) (Receipt, error)

func (f SubmitterFunc) SubmitApplication(ctx context.Context, app Application) (Receipt, error) {
	return f(ctx, app)
}

// Gate lets exactly one submission through per form. Concurrent fires while a
// request is outstanding are refused; after a success every fire is refused.
// A failed attempt re-opens the gate.
type Gate struct {
	mu        sync.Mutex
	submitter Submitter
	pending   bool
	submitted bool
	receipt   Receipt
	attempts  int
}

func NewGate(submitter Submitter) *Gate {
	return &Gate{submitter: submitter}
}

func (g *Gate) Fire(ctx context.Context, app Application) (Receipt, error) {
	g.mu.Lock()
	if g.submitted {
		r := g.receipt
		g.mu.Unlock()
		return r, ErrAlreadySubmitted
	}
	if g.pending {
		g.mu.Unlock()
		return Receipt{}, ErrSubmissionInFlight
	}
	g.pending = true
	g.attempts++
	g.mu.Unlock()

	r, err := g.submitter.SubmitApplication(ctx, app)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = false
	if err != nil {
		return Receipt{}, &SubmissionError{Err: err}
	}
	if !r.Accepted {
		return r, &SubmissionError{}
	}
	g.submitted = true
	g.receipt = r
	return r, nil
}

func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}

func (g *Gate) Submitted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitted
}

func (g *Gate) Attempts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attempts
}
