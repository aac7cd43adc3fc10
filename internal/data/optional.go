package data

import (
	"bytes"
	"encoding/json"
)

var nullLiteral = []byte("null")

// Optional is a patch field: omitted, explicitly cleared, or set to a value.
// A zero Optional means the caller never sent the field, which is distinct
// from sending null. Presence, not truthiness, drives update expressions.
type Optional[T interface{}] struct {
	present bool
	null    bool
	value   T
}

func Some[T interface{}](value T) Optional[T] {
	return Optional[T]{present: true, value: value}
}

func Null[T interface{}]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// IsPresent reports whether the field appeared in the input at all.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// IsNull reports whether the field was sent as an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.present && o.null
}

// Get returns the value and whether one was set (present and not null).
func (o Optional[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Or returns the set value, or fallback when the field was omitted or null.
func (o Optional[T]) Or(fallback T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return fallback
}

// Ptr returns a pointer to the set value, or nil when omitted or null.
// Storage DTOs model unset optionals as nil pointers omitted on marshal.
func (o Optional[T]) Ptr() *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

// UnmarshalJSON only runs when the key exists in the payload, so present is
// exactly "the caller sent this field".
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.present = true
	if bytes.Equal(b, nullLiteral) {
		o.null = true
		return nil
	}
	return json.Unmarshal(b, &o.value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present || o.null {
		return nullLiteral, nil
	}
	return json.Marshal(o.value)
}
