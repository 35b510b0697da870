package formflow

import "errors"

// Cursor points into the raw catalog order, not into the visible subset.
type Cursor struct {
	Position int  `json:"position"`
	Complete bool `json:"complete"`
}

type Outcome string

const (
	// OutcomeAdvance moved the cursor to the next visible step.
	OutcomeAdvance Outcome = "advance"
	// OutcomeComplete ran out of steps without reaching a confirmation.
	OutcomeComplete Outcome = "complete"
	// OutcomeSubmit is an affirmative confirmation: the gate should fire.
	OutcomeSubmit Outcome = "submit"
	// OutcomeEdit is a declined confirmation: traversal restarts.
	OutcomeEdit Outcome = "edit"
)

// Transition is the result of one accepted answer.
type Transition struct {
	Step    *Step
	Value   string
	Answers Answers
	Cursor  Cursor
	Outcome Outcome
}

// Start positions a new flow on the first step visible with no answers.
func (c *Catalog) Start() (Cursor, error) {
	return c.Restart(NewAnswers())
}

// Restart positions the flow on the first visible step while keeping answers.
// Used when the applicant asks to edit their answers at confirmation.
func (c *Catalog) Restart(a Answers) (Cursor, error) {
	pos, err := c.firstVisible(0, a)
	if err != nil {
		return Cursor{}, &NavigationError{Variant: c.variant, From: "<start>", Reason: "no step visible"}
	}
	return Cursor{Position: pos}, nil
}

// Current returns the step the cursor points at.
func (c *Catalog) Current(cur Cursor) (*Step, error) {
	if cur.Complete {
		return nil, ErrFlowComplete
	}
	step, ok := c.StepAt(cur.Position)
	if !ok {
		return nil, &NavigationError{Variant: c.variant, From: "<cursor>", Reason: "cursor outside catalog"}
	}
	return step, nil
}

// Answer validates raw for the current step, records it and resolves the next
// step. On any error the caller's cursor and answers stay as they were.
func (c *Catalog) Answer(cur Cursor, a Answers, raw string) (Transition, error) {
	step, err := c.Current(cur)
	if err != nil {
		return Transition{}, err
	}

	value, err := step.Accept(raw)
	if err != nil {
		return Transition{}, err
	}
	updated := a.With(step.FieldKey, value)

	t := Transition{Step: step, Value: value, Answers: updated}

	if step.ID == ConfirmationStepID {
		switch value {
		case ConfirmYes:
			t.Cursor = Cursor{Position: cur.Position, Complete: true}
			t.Outcome = OutcomeSubmit
			return t, nil
		case ConfirmNo:
			next, err := c.Restart(updated)
			if err != nil {
				return Transition{}, err
			}
			t.Cursor = next
			t.Outcome = OutcomeEdit
			return t, nil
		}
	}

	next, err := c.Resolve(cur.Position, value, updated)
	if err != nil {
		return Transition{}, err
	}
	t.Cursor = next
	t.Outcome = OutcomeAdvance
	if next.Complete {
		t.Outcome = OutcomeComplete
	}
	return t, nil
}

// Resolve finds the next visible step after the step at from was answered
// with value. A branch names where to start looking; without one the scan
// starts at the following position. The scan only moves forward.
func (c *Catalog) Resolve(from int, value string, a Answers) (Cursor, error) {
	step, ok := c.StepAt(from)
	if !ok {
		return Cursor{}, &NavigationError{Variant: c.variant, From: "<cursor>", Reason: "cursor outside catalog"}
	}

	target := from + 1
	if step.Next != nil {
		id := step.Next.Choose(value, a)
		if id == "" {
			return Cursor{Position: from, Complete: true}, nil
		}
		pos, ok := c.index[id]
		if !ok {
			return Cursor{}, &NavigationError{Variant: c.variant, From: step.ID, Target: id, Reason: "branch target not in catalog"}
		}
		if pos <= from {
			return Cursor{}, &NavigationError{Variant: c.variant, From: step.ID, Target: id, Reason: "branch target does not lie ahead"}
		}
		target = pos
	}

	pos, err := c.firstVisible(target, a)
	if errors.Is(err, errNoVisibleStep) {
		return Cursor{Position: from, Complete: true}, nil
	}
	return Cursor{Position: pos}, nil
}

// Back moves to the nearest earlier step that is visible under the current
// answers. A cursor with nowhere to go stays put.
func (c *Catalog) Back(cur Cursor, a Answers) Cursor {
	for i := cur.Position - 1; i >= 0; i-- {
		if c.steps[i].IsVisible(a) {
			return Cursor{Position: i}
		}
	}
	return Cursor{Position: cur.Position, Complete: cur.Complete}
}

func (c *Catalog) CanGoBack(cur Cursor, a Answers) bool {
	return c.Back(cur, a).Position != cur.Position
}

// Path lists the ids of the visible steps, in order, for the given answers.
func (c *Catalog) Path(a Answers) []string {
	var ids []string
	for _, s := range c.steps {
		if s.IsVisible(a) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
