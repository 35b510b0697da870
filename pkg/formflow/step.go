package formflow

import "strings"

// InputMode tells an adapter which control renders a step.
type InputMode string

const (
	InputSelect InputMode = "single-select"
	InputText   InputMode = "free-text"
	InputEmail  InputMode = "free-text-email"
	InputPhone  InputMode = "free-text-phone"
)

func (m InputMode) IsText() bool {
	return m == InputText || m == InputEmail || m == InputPhone
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Prompt renders the question text from the answers collected so far.
type Prompt func(Answers) string

// Text wraps a literal prompt.
func Text(s string) Prompt {
	return func(Answers) string { return s }
}

// Predicate decides whether a step applies given the current answers.
type Predicate func(Answers) bool

// FieldEquals is visible when answers[key] == value.
func FieldEquals(key, value string) Predicate {
	return func(a Answers) bool { return a.Get(key) == value }
}

// FieldIn is visible when answers[key] is one of values.
func FieldIn(key string, values ...string) Predicate {
	return func(a Answers) bool {
		got := a.Get(key)
		for _, v := range values {
			if got == v {
				return true
			}
		}
		return false
	}
}

func AllOf(preds ...Predicate) Predicate {
	return func(a Answers) bool {
		for _, p := range preds {
			if !p(a) {
				return false
			}
		}
		return true
	}
}

// Branch picks the id of the next step to attempt after an answer.
// Targets lists every id Choose may return so the catalog can check them up front.
// Choose returns "" to end the flow.
type Branch struct {
	Targets []string
	Choose  func(value string, a Answers) string
}

// Goto always continues at id.
func Goto(id string) *Branch {
	return &Branch{
		Targets: []string{id},
		Choose:  func(string, Answers) string { return id },
	}
}

// Route continues at routes[value], or at fallback when the value has no route.
func Route(routes map[string]string, fallback string) *Branch {
	seen := map[string]bool{}
	var targets []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			targets = append(targets, id)
		}
	}
	for _, id := range routes {
		add(id)
	}
	add(fallback)

	return &Branch{
		Targets: targets,
		Choose: func(value string, _ Answers) string {
			if id, ok := routes[value]; ok {
				return id
			}
			return fallback
		},
	}
}

// Step is one question of a catalog. Steps are built once and never modified.
type Step struct {
	ID        string
	FieldKey  string
	Prompt    Prompt
	Input     InputMode
	Options   []Option
	Validator func(string) bool
	Visible   Predicate
	Next      *Branch
}

func (s *Step) Render(a Answers) string {
	if s.Prompt == nil {
		return ""
	}
	return s.Prompt(a)
}

// IsVisible reports whether the step applies; steps without a predicate always do.
func (s *Step) IsVisible(a Answers) bool {
	return s.Visible == nil || s.Visible(a)
}

// OptionLabel returns the label shown for value, or value itself when unknown.
func (s *Step) OptionLabel(value string) string {
	for _, o := range s.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func (s *Step) hasOption(value string) bool {
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Accept validates raw input for this step and returns the value to store.
func (s *Step) Accept(raw string) (string, error) {
	if s.Input == InputSelect {
		if !s.hasOption(raw) {
			return "", &ValidationError{StepID: s.ID, FieldKey: s.FieldKey, Message: "Please choose one of the options"}
		}
		return raw, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return "", &ValidationError{StepID: s.ID, FieldKey: s.FieldKey, Message: "This field is required"}
	}

	check := s.Validator
	if check == nil {
		switch s.Input {
		case InputEmail:
			check = Email
		case InputPhone:
			check = Phone
		}
	}
	if check != nil && !check(value) {
		return "", &ValidationError{StepID: s.ID, FieldKey: s.FieldKey, Message: invalidMessage(s)}
	}
	return value, nil
}

func invalidMessage(s *Step) string {
	switch s.Input {
	case InputEmail:
		return "Please enter a valid email address"
	case InputPhone:
		return "Please enter a valid phone number"
	}
	return "Please enter a valid " + s.FieldKey
}
