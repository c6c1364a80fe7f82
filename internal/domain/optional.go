package domain

import "encoding/json"

// OptionalState distinguishes "field absent" from "field explicitly null" in
// partial-update payloads, per the patch semantics of PATCH /drafts/{id}.
type OptionalState int

const (
	// Unset means the field was not present in the patch payload; no change.
	Unset OptionalState = iota
	// Cleared means the field was present and explicitly null; clear it.
	Cleared
	// Present means the field was present with a concrete value.
	Present
)

// Optional models a tri-state patch field: unset, explicitly cleared, or set
// to a value. Using a single nullable value cannot distinguish "don't touch"
// from "set to zero value", which PATCH /drafts/{id} requires for logo.
type Optional[T any] struct {
	state OptionalState
	value T
}

// Unchanged returns an Optional carrying no instruction.
func Unchanged[T any]() Optional[T] {
	return Optional[T]{state: Unset}
}

// Clear returns an Optional instructing the field to be cleared.
func Clear[T any]() Optional[T] {
	return Optional[T]{state: Cleared}
}

// Set returns an Optional carrying a new value.
func Set[T any](value T) Optional[T] {
	return Optional[T]{state: Present, value: value}
}

func (o Optional[T]) IsUnset() bool   { return o.state == Unset }
func (o Optional[T]) IsCleared() bool { return o.state == Cleared }
func (o Optional[T]) IsPresent() bool { return o.state == Present }

// Value returns the carried value and whether one is present.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.state == Present
}

// UnmarshalJSON implements the tri-state decode: a missing key never calls
// this method at all (json.Unmarshal leaves the field at its zero value,
// i.e. Unset); a present "null" decodes to Cleared; any other value decodes
// to Present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Clear[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Set(v)
	return nil
}

// MarshalJSON renders Present as the value and Cleared as null. Unset fields
// are expected to be omitted by callers before marshaling (Optional does not
// implement omitempty semantics on its own).
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	switch o.state {
	case Present:
		return json.Marshal(o.value)
	default:
		return []byte("null"), nil
	}
}
