package mycarbs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to handle the import/export format.
// It is a plain JSON array of foods, the one the collection is stored in,
// so that an export can be read, edited and imported back by hand.

// ExportFilename is the conventional name of an export file.
const ExportFilename = "mycarbs_foods.json"

// ExportAll returns every food in canonical form, ready for EncodeExport.
func (r *Repository) ExportAll(ctx context.Context) ([]Food, error) {
	return r.List(ctx)
}

// EncodeExport writes foods to w as a JSON array indented with two spaces.
func EncodeExport(w io.Writer, foods []Food) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(nonNil(foods)); err != nil {
		return fmt.Errorf("cannot write export format: %w", err)
	}
	return nil
}

// DecodeImport reads a JSON document from r and returns the records selected
// by the JSONPath expression path. An empty path is "$", the document
// itself, which must then be an array of records.
//
// The path makes it possible to import foods nested in a larger document,
// for instance "$.foods" or "$.data[*].food".
func DecodeImport(r io.Reader, path string) ([]json.RawMessage, error) {
	if path == "" {
		path = "$"
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: cannot parse import file: %v", ErrValidationFailed, err)
	}

	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot select records with %q: %v", ErrValidationFailed, path, err)
	}
	var items []any
	switch v := jval.(type) {
	case []any:
		// jsonpath returns either the selected array or the list of
		// selected values; a list holding a single array is the former.
		if len(v) == 1 {
			if inner, ok := v[0].([]any); ok {
				v = inner
			}
		}
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, fmt.Errorf("%w: %q does not select an array of records", ErrValidationFailed, path)
	}

	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("cannot re-encode record: %w", err)
		}
		records = append(records, data)
	}
	return records, nil
}

// ImportResult counts the outcome of an ImportBatch.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportBatch adds every record as a new food, in order. Incoming ids and
// creation times are ignored: imported foods are always new entities.
//
// A record that is not an object, lacks "name" or "carbsPer100g", or fails
// validation is skipped and counted. A store failure stops the batch and is
// returned along with the counts so far.
func (r *Repository) ImportBatch(ctx context.Context, records []json.RawMessage) (ImportResult, error) {
	var res ImportResult
	var problems []error
	for i, raw := range records {
		in, err := importDraft(raw)
		if err == nil {
			_, err = r.Add(ctx, in)
		}
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, ErrValidationFailed):
			res.Skipped++
			problems = append(problems, fmt.Errorf("record #%d: %w", i, err))
		default:
			return res, err
		}
	}
	if len(problems) > 0 {
		log.Printf("skipped %d record(s):\n%v", len(problems), errors.Join(problems...))
	}
	return res, nil
}

// importDraft turns an imported record into a draft for Add.
func importDraft(raw json.RawMessage) (FoodInput, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return FoodInput{}, fmt.Errorf("%w: not a JSON object", ErrValidationFailed)
	}
	for _, required := range []string{"name", "carbsPer100g"} {
		v, ok := fields[required]
		if !ok || bytes.Equal(v, []byte("null")) {
			return FoodInput{}, fmt.Errorf("%w: missing %q", ErrValidationFailed, required)
		}
	}
	delete(fields, "id")
	delete(fields, "createdAt")

	stripped, err := json.Marshal(fields)
	if err != nil {
		return FoodInput{}, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	f, err := NormalizeFood(stripped)
	if err != nil {
		return FoodInput{}, err
	}
	return f.Input(), nil
}
