package domain

import "encoding/json"

// Optional distinguishes "field absent from the payload" from "field present
// with a null or zero value" in partial updates. A plain pointer cannot make
// that distinction.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the field was supplied with a non-null value.
func (o Optional[T]) Present() bool { return o.Set && !o.Null }
