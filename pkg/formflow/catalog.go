package formflow

import (
	"errors"
	"fmt"
)

const (
	ConfirmationStepID = "confirmation"
	ConfirmYes         = "yes"
	ConfirmNo          = "no"
)

// Catalog is the ordered declaration of every step of one form variant.
// Raw order is the scan order; traversal order is derived from branches and
// visibility at run time.
type Catalog struct {
	variant string
	steps   []*Step
	index   map[string]int
}

// NewCatalog checks the declaration and freezes it.
func NewCatalog(variant string, steps ...Step) (*Catalog, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("catalog %s: no steps", variant)
	}

	c := &Catalog{
		variant: variant,
		steps:   make([]*Step, 0, len(steps)),
		index:   make(map[string]int, len(steps)),
	}
	fields := make(map[string]string, len(steps))

	for i := range steps {
		s := steps[i]
		if s.ID == "" {
			return nil, fmt.Errorf("catalog %s: step %d has no id", variant, i)
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate step id %q", variant, s.ID)
		}
		if s.FieldKey == "" {
			s.FieldKey = s.ID
		}
		if owner, dup := fields[s.FieldKey]; dup {
			return nil, fmt.Errorf("catalog %s: field %q stored by both %s and %s", variant, s.FieldKey, owner, s.ID)
		}
		if s.Prompt == nil {
			return nil, fmt.Errorf("catalog %s: step %s has no prompt", variant, s.ID)
		}
		switch {
		case s.Input == InputSelect && len(s.Options) == 0:
			return nil, fmt.Errorf("catalog %s: select step %s has no options", variant, s.ID)
		case s.Input.IsText() && len(s.Options) > 0:
			return nil, fmt.Errorf("catalog %s: text step %s declares options", variant, s.ID)
		case s.Input != InputSelect && !s.Input.IsText():
			return nil, fmt.Errorf("catalog %s: step %s has unknown input mode %q", variant, s.ID, s.Input)
		}
		if s.Next != nil && s.Next.Choose == nil {
			return nil, fmt.Errorf("catalog %s: step %s branch has no chooser", variant, s.ID)
		}

		fields[s.FieldKey] = s.ID
		c.index[s.ID] = i
		c.steps = append(c.steps, &s)
	}

	for i, s := range c.steps {
		if s.Next == nil {
			continue
		}
		for _, target := range s.Next.Targets {
			pos, ok := c.index[target]
			if !ok {
				return nil, &NavigationError{Variant: variant, From: s.ID, Target: target, Reason: "branch target not in catalog"}
			}
			if pos <= i {
				return nil, &NavigationError{Variant: variant, From: s.ID, Target: target, Reason: "branch target does not lie ahead"}
			}
		}
	}

	if _, err := c.Start(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustCatalog is NewCatalog for package-level declarations.
func MustCatalog(variant string, steps ...Step) *Catalog {
	c, err := NewCatalog(variant, steps...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Variant() string { return c.variant }

func (c *Catalog) Len() int { return len(c.steps) }

// Steps returns the raw catalog order.
func (c *Catalog) Steps() []*Step {
	out := make([]*Step, len(c.steps))
	copy(out, c.steps)
	return out
}

func (c *Catalog) StepAt(pos int) (*Step, bool) {
	if pos < 0 || pos >= len(c.steps) {
		return nil, false
	}
	return c.steps[pos], true
}

// Index returns the raw position of id, or -1.
func (c *Catalog) Index(id string) int {
	if pos, ok := c.index[id]; ok {
		return pos
	}
	return -1
}

func (c *Catalog) Lookup(id string) (*Step, bool) {
	pos, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.steps[pos], true
}

var errNoVisibleStep = errors.New("no visible step")

// firstVisible scans forward from pos and returns the first applicable position.
func (c *Catalog) firstVisible(pos int, a Answers) (int, error) {
	for i := pos; i < len(c.steps); i++ {
		if c.steps[i].IsVisible(a) {
			return i, nil
		}
	}
	return -1, errNoVisibleStep
}
