package homework

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is the parent of every API shape violation.
var ErrMalformedResponse = errors.New("malformed API response")

var (
	ErrTypeMismatch  = fmt.Errorf("%w: unexpected data type", ErrMalformedResponse)
	ErrMissingKey    = fmt.Errorf("%w: missing key", ErrMalformedResponse)
	ErrMissingField  = errors.New("homework record is missing a required field")
	ErrUnknownStatus = errors.New("unknown homework status")
)

// ErrNoUpdates is returned by CheckResponse when the homeworks list is empty.
// It is not a failure and must not be reported to chat.
var ErrNoUpdates = errors.New("no homework updates")
