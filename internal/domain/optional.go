package domain

import (
	"bytes"
	"encoding/json"
)

// Optional marks a field of a partial update. An unset Optional means
// "leave the stored value alone"; a set Optional carries the new value,
// which may itself be a nil pointer to clear a nullable column.
//
// When decoded from JSON a missing key leaves the Optional unset while an
// explicit null sets it to the zero value of T.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet reports whether a value was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// OrElse returns the value if set, otherwise def.
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys
// present in the payload, so reaching it always marks the Optional as set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value = zero
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON implements json.Marshaler. Unset values encode as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
