package driver

import "errors"

const (
	MsgInvalidInputs  = "Error: Invalid inputs"
	MsgDivisionByZero = "Error: Invalid inputs, (Division by zero during calculation)"
)

var (
	// ErrInvalidInputs indicates a calculation blocked by unparsable fields.
	ErrInvalidInputs = errors.New("driver: invalid inputs")

	// ErrDivisionByZero is raised by Args.Div and by integer divide panics
	// inside a target function.
	ErrDivisionByZero = errors.New("driver: division by zero")

	// ErrMissingArgument indicates a function read a name absent from the store.
	ErrMissingArgument = errors.New("driver: missing argument")

	// ErrWrongKind indicates an argument of an unexpected kind.
	ErrWrongKind = errors.New("driver: argument has wrong kind")

	// ErrNonNumeric indicates a sweep result or bound that is not a number.
	ErrNonNumeric = errors.New("driver: value is not numeric")
)
