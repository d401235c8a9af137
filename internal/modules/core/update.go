package core

import (
	"bytes"
	"encoding/json"
)

// Update is a single field of a partial update. The zero value keeps the
// stored value; Change replaces it, with nil pointers clearing nullable columns.
//
// Decoded from JSON, a field absent from the body stays Keep while a field
// present in the body (null included) becomes Change.
type Update[T any] struct {
	value T
	set   bool
}

func Keep[T any]() Update[T] {
	return Update[T]{}
}

func Change[T any](value T) Update[T] {
	return Update[T]{value: value, set: true}
}

func (u Update[T]) IsSet() bool {
	return u.set
}

func (u Update[T]) Value() (T, bool) {
	return u.value, u.set
}

// Apply writes the new value into target when the field is set.
func (u Update[T]) Apply(target *T) {
	if u.set {
		*target = u.value
	}
}

func (u *Update[T]) UnmarshalJSON(data []byte) error {
	var value T
	if !bytes.Equal(data, []byte("null")) {
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
	}

	u.value = value
	u.set = true

	return nil
}

func (u Update[T]) MarshalJSON() ([]byte, error) {
	if !u.set {
		return []byte("null"), nil
	}
	return json.Marshal(u.value)
}
