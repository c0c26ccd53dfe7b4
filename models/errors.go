package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// QueryError reports a malformed search string or a store failure while
// running it.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// HeaderError reports that the store could not decode a message header.
type HeaderError struct {
	MessageID string
	Header    string
	Err       error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("message %s: header %s: %v",
		e.MessageID, e.Header, e.Err)
}

func (e *HeaderError) Unwrap() error { return e.Err }

// TemplateError is a configuration error in an entry template.
type TemplateError struct {
	Template string
	Reason   string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %q: %s", e.Template, e.Reason)
}

// SerializationError reports that a record could not be encoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return "cannot encode record: " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error { return e.Err }

// WriteError reports that the output sink refused a record.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return "cannot write record: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }

// HeaderValue returns the named header of msg, turning lookup failures into
// a *HeaderError.
func HeaderValue(msg Message, name string) (string, error) {
	value, err := msg.Header(name)
	if err != nil {
		var herr *HeaderError
		if errors.As(err, &herr) {
			return "", err
		}
		return "", &HeaderError{MessageID: msg.ID(), Header: name, Err: err}
	}
	return value, nil
}

func JoinAuthors(authors []string) string {
	return strings.Join(authors, ", ")
}
