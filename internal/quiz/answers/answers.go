// Package answers models the heterogeneous answer values a quiz session
// collects: a scalar choice, a multi-choice selection, or per-cause detail
// records. Which variant is legal for an answer is fixed by its question type.
package answers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind discriminates the Value union.
type Kind string

const (
	KindScalar  Kind = "scalar"
	KindList    Kind = "list"
	KindDetails Kind = "details"
)

// CauseDetail is the structured sub-record collected for one selected cause.
type CauseDetail struct {
	Example  string   `json:"example"`
	When     string   `json:"when"`
	Evidence []string `json:"evidence"`
}

// Value is a tagged union over the three wire shapes: a JSON string, an array
// of strings, or an object mapping cause labels to detail records.
type Value struct {
	Kind    Kind
	Scalar  string
	List    []string
	Details map[string]CauseDetail
}

// String builds a scalar Value.
func String(s string) Value {
	return Value{Kind: KindScalar, Scalar: s}
}

// List builds a multi-selection Value. Order is the selection order.
func List(items ...string) Value {
	return Value{Kind: KindList, List: items}
}

// Details builds a per-cause detail Value.
func Details(d map[string]CauseDetail) Value {
	return Value{Kind: KindDetails, Details: d}
}

// IsZero reports whether the value carries no answer at all.
func (v Value) IsZero() bool {
	return v.Kind == ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindScalar:
		return json.Marshal(v.Scalar)
	case KindList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	case KindDetails:
		if v.Details == nil {
			return json.Marshal(map[string]CauseDetail{})
		}
		return json.Marshal(v.Details)
	default:
		return nil, fmt.Errorf("cannot marshal answer value of kind %q", v.Kind)
	}
}

// UnmarshalJSON sniffs the wire shape: string, array, or object.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty answer value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*v = List(items...)
		return nil
	case '{':
		var details map[string]CauseDetail
		if err := json.Unmarshal(trimmed, &details); err != nil {
			return err
		}
		*v = Details(details)
		return nil
	default:
		return fmt.Errorf("unsupported answer value shape: %s", string(trimmed))
	}
}

// Set maps question ids to answer values. It is replaced wholesale on each
// accepted step; the controller never mutates a shared instance in place.
type Set map[string]Value

// With returns a copy of the set with one answer added or overwritten.
func (s Set) With(questionID string, v Value) Set {
	next := make(Set, len(s)+1)
	for k, val := range s {
		next[k] = val
	}
	next[questionID] = v
	return next
}

// Scalar returns the scalar answer for a question id, or "" when the answer is
// absent or not a scalar.
func (s Set) Scalar(questionID string) string {
	v, ok := s[questionID]
	if !ok || v.Kind != KindScalar {
		return ""
	}
	return v.Scalar
}

// Selection returns the list answer for a question id, or nil when the answer
// is absent or not a list.
func (s Set) Selection(questionID string) []string {
	v, ok := s[questionID]
	if !ok || v.Kind != KindList {
		return nil
	}
	return v.List
}

// DetailRecords returns the per-cause detail answer for a question id, or nil.
func (s Set) DetailRecords(questionID string) map[string]CauseDetail {
	v, ok := s[questionID]
	if !ok || v.Kind != KindDetails {
		return nil
	}
	return v.Details
}

// Encode serializes the set for the answer store.
func (s Set) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode answer set: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored answer set. An empty payload decodes to an empty set.
func Decode(raw string) (Set, error) {
	if raw == "" {
		return Set{}, nil
	}
	var s Set
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to decode answer set: %w", err)
	}
	if s == nil {
		s = Set{}
	}
	return s, nil
}
