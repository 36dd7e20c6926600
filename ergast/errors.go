package ergast

import "errors"

var (
	// ErrInvalidArgument reports a scope or identifier rejected before any request is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConnection reports a transport failure or a non-200 response.
	ErrConnection = errors.New("cannot connect to API")

	// ErrParse reports a body that is not JSON or lacks the expected structure.
	ErrParse = errors.New("parse response")
)
