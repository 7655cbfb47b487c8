package mycarbs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use. The first error sticks and is returned by
// MarshalJSON.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a new key-value pair to the JSON object. The value is marshaled
// to JSON using `json.Marshal`.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}

	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}

	keyBytes, _ := json.Marshal(key)
	w.Write(keyBytes)
	w.WriteByte(':')
	w.Write(valBytes)
	w.WriteByte(',')
	return w
}

// Optional appends a key-value pair only if the value is not its type's zero
// value. A nil slice is omitted, an empty non nil slice is not.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON finalizes the JSON object construction, wraps the content in
// braces, and returns the complete JSON byte slice.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')

	return final, nil
}

// nonNil turns a nil slice into an empty one so that it encodes as [] instead
// of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// MarshalJSON encodes the food in its canonical form: a fixed key order,
// no legacy field, imageUrl and quantityButtons only when set.
func (f Food) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", f.ID).
		Append("name", f.Name).
		Append("carbsPer100g", f.CarbsPer100g).
		Append("portions", nonNil(f.Portions)).
		Append("categories", nonNil(f.Categories)).
		Append("isFavorite", f.IsFavorite).
		Optional("imageUrl", f.ImageURL).
		Append("createdAt", f.CreatedAt).
		Optional("quantityButtons", f.QuantityButtons)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes any known shape of a food record, legacy or
// canonical, into its canonical form. See [NormalizeFood].
func (f *Food) UnmarshalJSON(data []byte) error {
	food, _, err := normalizeRaw(data)
	if err != nil {
		return err
	}
	*f = food
	return nil
}
