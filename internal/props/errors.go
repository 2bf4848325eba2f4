package props

import "errors"

var (
	// ErrKeyNotFound indicates a property name absent from the store.
	ErrKeyNotFound = errors.New("props: key not found")

	// ErrUnsupportedType indicates a Go value with no primitive kind.
	ErrUnsupportedType = errors.New("props: unsupported value type")
)
