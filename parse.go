package hudu

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
)

// rawObject is a half-decoded JSON object: field names mapped to their raw
// values. Models pull fields out of it one at a time so that a missing or
// mistyped required field produces a ValidationError naming the field,
// instead of a generic decode error. Unknown fields are simply never looked
// at, which keeps parsing forward-compatible with API additions.
type rawObject map[string]json.RawMessage

func parseRawObject(data []byte) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, errors.Wrap(err, "expected JSON object")
	}
	return obj, nil
}

// isNull reports whether a raw field value is absent or JSON null. Both are
// treated identically: optional fields stay nil, required fields fail.
func isNull(raw json.RawMessage) bool {
	return raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (o rawObject) decode(field, expected string, dst any) error {
	if err := json.Unmarshal(o[field], dst); err != nil {
		return &ValidationError{Field: field, Expected: expected}
	}
	return nil
}

// Fail-fast accessors: the first offending field aborts the parse. The
// collect-all alternative was rejected; see DESIGN.md.

func (o rawObject) requiredInt(field string) (int, error) {
	if isNull(o[field]) {
		return 0, &ValidationError{Field: field, Expected: "integer"}
	}
	var v int
	if err := o.decode(field, "integer", &v); err != nil {
		return 0, err
	}
	return v, nil
}

// requiredID is requiredInt with the positivity constraint every Hudu
// resource identifier carries.
func (o rawObject) requiredID(field string) (int, error) {
	v, err := o.requiredInt(field)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, &ValidationError{Field: field, Expected: "positive integer"}
	}
	return v, nil
}

func (o rawObject) requiredString(field string) (string, error) {
	if isNull(o[field]) {
		return "", &ValidationError{Field: field, Expected: "string"}
	}
	var v string
	if err := o.decode(field, "string", &v); err != nil {
		return "", err
	}
	return v, nil
}

func (o rawObject) requiredBool(field string) (bool, error) {
	if isNull(o[field]) {
		return false, &ValidationError{Field: field, Expected: "boolean"}
	}
	var v bool
	if err := o.decode(field, "boolean", &v); err != nil {
		return false, err
	}
	return v, nil
}

func (o rawObject) optionalString(field string) (*string, error) {
	if isNull(o[field]) {
		return nil, nil
	}
	var v string
	if err := o.decode(field, "string", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (o rawObject) optionalInt(field string) (*int, error) {
	if isNull(o[field]) {
		return nil, nil
	}
	var v int
	if err := o.decode(field, "integer", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (o rawObject) optionalBool(field string) (*bool, error) {
	if isNull(o[field]) {
		return nil, nil
	}
	var v bool
	if err := o.decode(field, "boolean", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (o rawObject) optionalTime(field string) (*time.Time, error) {
	if isNull(o[field]) {
		return nil, nil
	}
	var v time.Time
	if err := o.decode(field, "RFC 3339 timestamp", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// boolOrDefault reads an optional boolean, substituting def when the field is
// absent or null. Used for flags the API treats as false when omitted.
func (o rawObject) boolOrDefault(field string, def bool) (bool, error) {
	v, err := o.optionalBool(field)
	if err != nil {
		return def, err
	}
	if v == nil {
		return def, nil
	}
	return *v, nil
}

// parseList decodes a JSON array of entities, preserving order. The element
// index is attached to any failure so a bad record in a large page can be
// located.
func parseList[T any](data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "expected JSON array")
	}

	out := make([]T, 0, len(raw))
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, v)
	}

	return out, nil
}
