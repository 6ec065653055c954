package domain

import (
	"encoding/json"
)

// Optional holds a value that may be missing in the source spreadsheet.
// A missing value is never the zero value of T: check Valid first.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// Missing returns an absent value
func Missing[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// OrElse returns the value, or fallback when missing
func (o Optional[T]) OrElse(fallback T) T {
	if !o.Valid {
		return fallback
	}
	return o.Value
}

// MarshalJSON encodes a missing value as null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON decodes null as missing
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
