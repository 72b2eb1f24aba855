package workspace

import (
	"encoding/json"
	"errors"
)

// ErrorCode categorizes a mutation failure
type ErrorCode string

const (
	CodeWrite     ErrorCode = "WRITE_ERROR"
	CodeCreate    ErrorCode = "CREATE_ERROR"
	CodeCreateDir ErrorCode = "CREATE_DIR_ERROR"
	CodeDelete    ErrorCode = "DELETE_ERROR"
)

// ErrInvalidUTF8 marks a text read whose bytes are not valid UTF-8
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// ReadError is the plain-message failure of list, read and inspect calls.
// It marshals to a bare JSON string.
type ReadError struct {
	Message string
	Err     error
}

func (e *ReadError) Error() string { return e.Message }

func (e *ReadError) Unwrap() error { return e.Err }

// MarshalJSON renders the message only
func (e *ReadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Message)
}

func readError(err error) *ReadError {
	return &ReadError{Message: err.Error(), Err: err}
}

// OperationError is the categorized failure of a mutation
type OperationError struct {
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
	Err     error     `json:"-"`
}

func (e *OperationError) Error() string { return e.Message }

func (e *OperationError) Unwrap() error { return e.Err }

func operationError(code ErrorCode, err error) *OperationError {
	return &OperationError{Message: err.Error(), Code: code, Err: err}
}
