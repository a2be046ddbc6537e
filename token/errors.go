package token

import (
	"errors"
	"fmt"
)

// Kinds of ParseError. Match them with errors.Is.
var (
	ErrMissingField       = errors.New("missing field")
	ErrExpectedFieldValue = errors.New("unexpected field value")
	ErrWrongType          = errors.New("wrong field type")
	ErrMalformedResponse  = errors.New("malformed response")
)

// ParseError reports why a token endpoint response, or a persisted token,
// could not be turned into a token value.
type ParseError struct {
	// Kind is one of ErrMissingField, ErrExpectedFieldValue, ErrWrongType or
	// ErrMalformedResponse.
	Kind error
	// Field is the offending JSON field; empty for ErrMalformedResponse.
	Field string
	// Expected describes the accepted value or JSON type.
	Expected string
	// Cause is the underlying decoding error, if any.
	Cause error
}

// MissingField reports a required field absent from the response.
func MissingField(field string) *ParseError {
	return &ParseError{Kind: ErrMissingField, Field: field}
}

// ExpectedFieldValue reports a field holding a value other than the accepted one.
func ExpectedFieldValue(field, expected string) *ParseError {
	return &ParseError{Kind: ErrExpectedFieldValue, Field: field, Expected: expected}
}

// WrongType reports a field holding an incompatible JSON type.
func WrongType(field, expected string) *ParseError {
	return &ParseError{Kind: ErrWrongType, Field: field, Expected: expected}
}

// MalformedResponse reports a response that is not a JSON object.
func MalformedResponse(cause error) *ParseError {
	return &ParseError{Kind: ErrMalformedResponse, Expected: "JSON object", Cause: cause}
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrMissingField:
		return fmt.Sprintf("missing field %q", e.Field)
	case ErrExpectedFieldValue:
		return fmt.Sprintf("expected field %q to be %s", e.Field, e.Expected)
	case ErrWrongType:
		return fmt.Sprintf("field %q has wrong type, expected %s", e.Field, e.Expected)
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed response, expected %s: %v", e.Expected, e.Cause)
	}
	return fmt.Sprintf("malformed response, expected %s", e.Expected)
}

func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
