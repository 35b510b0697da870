package formflow

import (
	"encoding/json"
	"sort"
)

// Answers is the accumulated fieldKey -> value map of an in-progress form.
// A value is never mutated after construction: With returns a new snapshot.
type Answers struct {
	values map[string]string
}

func NewAnswers() Answers {
	return Answers{}
}

// AnswersFrom copies m into a fresh snapshot.
func AnswersFrom(m map[string]string) Answers {
	if len(m) == 0 {
		return Answers{}
	}
	values := make(map[string]string, len(m))
	for k, v := range m {
		values[k] = v
	}
	return Answers{values: values}
}

// With returns a snapshot holding every existing answer plus key=value.
func (a Answers) With(key, value string) Answers {
	values := make(map[string]string, len(a.values)+1)
	for k, v := range a.values {
		values[k] = v
	}
	values[key] = value
	return Answers{values: values}
}

func (a Answers) Get(key string) string {
	return a.values[key]
}

func (a Answers) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

func (a Answers) Len() int {
	return len(a.values)
}

// Keys returns the answered field keys in lexical order.
func (a Answers) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy safe for the caller to modify.
func (a Answers) Map() map[string]string {
	out := make(map[string]string, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

func (a Answers) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Map())
}

func (a *Answers) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*a = AnswersFrom(m)
	return nil
}
