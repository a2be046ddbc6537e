package token

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
)

// Response is a read-only view over the JSON object returned by a token
// endpoint. Accessors distinguish absent fields from fields of the wrong
// type; a JSON null counts as absent.
type Response struct {
	fields map[string]any
}

// NewResponse wraps an already decoded JSON value. Anything other than an
// object is rejected.
func NewResponse(v any) (Response, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Response{}, MalformedResponse(nil)
	}
	return Response{fields: obj}, nil
}

// DecodeResponse decodes a token endpoint response body.
func DecodeResponse(body []byte) (Response, error) {
	return ReadResponse(bytes.NewReader(body))
}

// ReadResponse decodes a token endpoint response body from r. Numbers are
// kept as json.Number so integer fields are never rounded through float64.
func ReadResponse(r io.Reader) (Response, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Response{}, MalformedResponse(err)
	}
	return NewResponse(v)
}

func (r Response) lookup(field string) (any, bool) {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns a required string field.
func (r Response) String(field string) (string, error) {
	v, ok := r.lookup(field)
	if !ok {
		return "", MissingField(field)
	}
	s, ok := v.(string)
	if !ok {
		return "", WrongType(field, "string")
	}
	return s, nil
}

// OptionalString returns an optional string field, nil when absent.
func (r Response) OptionalString(field string) (*string, error) {
	if _, ok := r.lookup(field); !ok {
		return nil, nil
	}
	s, err := r.String(field)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Int returns a required integer field.
func (r Response) Int(field string) (int64, error) {
	v, ok := r.lookup(field)
	if !ok {
		return 0, MissingField(field)
	}
	return toInt(field, v)
}

// OptionalInt returns an optional integer field, nil when absent.
func (r Response) OptionalInt(field string) (*int64, error) {
	v, ok := r.lookup(field)
	if !ok {
		return nil, nil
	}
	n, err := toInt(field, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func toInt(field string, v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, WrongType(field, "integer")
		}
		return i, nil
	case float64:
		// Values decoded without UseNumber.
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, WrongType(field, "integer")
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	}
	return 0, WrongType(field, "integer")
}
