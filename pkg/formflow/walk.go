package formflow

import "fmt"

// Walkthrough records one scripted traversal of a catalog.
type Walkthrough struct {
	Visited []string
	Answers Answers
	Outcome Outcome
}

// Walk answers every step it lands on from script (keyed by step id) until the
// flow submits or completes. It is meant for tests and tooling.
func Walk(c *Catalog, script map[string]string) (Walkthrough, error) {
	cur, err := c.Start()
	if err != nil {
		return Walkthrough{}, err
	}
	w := Walkthrough{Answers: NewAnswers()}

	for guard := 0; guard < c.Len()*4; guard++ {
		step, err := c.Current(cur)
		if err != nil {
			return w, err
		}
		raw, ok := script[step.ID]
		if !ok {
			return w, fmt.Errorf("walk %s: no scripted answer for %s", c.Variant(), step.ID)
		}
		w.Visited = append(w.Visited, step.ID)

		t, err := c.Answer(cur, w.Answers, raw)
		if err != nil {
			return w, err
		}
		w.Answers = t.Answers
		cur = t.Cursor
		w.Outcome = t.Outcome

		if t.Outcome != OutcomeAdvance {
			return w, nil
		}
	}
	return w, fmt.Errorf("walk %s: did not finish", c.Variant())
}
