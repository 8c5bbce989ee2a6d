package specmatic

import (
	"bytes"
	"encoding/json"
)

type presence uint8

const (
	absent presence = iota
	null
	present
)

// Nullable is a tri-state optional value: absent, explicitly null, or present.
//
// The zero value is absent. Fields of this type should be tagged `omitzero`
// so that absent values are dropped on output while explicit nulls survive
// as literal null.
type Nullable[T any] struct {
	value T
	state presence
}

// Present returns a Nullable holding v.
func Present[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, state: present}
}

// Null returns an explicitly null Nullable.
func Null[T any]() Nullable[T] {
	return Nullable[T]{state: null}
}

// IsZero reports whether the value is absent.
func (n Nullable[T]) IsZero() bool { return n.state == absent }

// IsNull reports whether the value was explicitly null.
func (n Nullable[T]) IsNull() bool { return n.state == null }

// IsPresent reports whether a value is held.
func (n Nullable[T]) IsPresent() bool { return n.state == present }

// Get returns the held value and whether one is present.
// Absent and null both report false.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.state == present
}

// Known collapses null into absent. Consumers that do not care about the
// difference use this to get a single "maybe" value.
func (n Nullable[T]) Known() Nullable[T] {
	if n.state == null {
		return Nullable[T]{}
	}
	return n
}

// MarshalJSON writes null for absent and null states; omitzero keeps the
// absent case from reaching here.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.state != present {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON is only invoked when the key exists, so it never produces absent.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Present(v)
	return nil
}
