package persist

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a persistence failure.
type ErrorKind uint8

const (
	// IoFailure is a failed read, write or directory creation.
	IoFailure ErrorKind = iota + 1

	// EncodingFailure is data that could not be (de)serialized.
	EncodingFailure
)

func (k ErrorKind) String() string {
	switch k {
	case IoFailure:
		return "io failure"
	case EncodingFailure:
		return "encoding failure"
	}
	return "unknown failure"
}

// Error is returned for any failed read or write. Path is the file
// involved.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

var (
	// ErrPatternDoesNotFit is returned when stamping a pattern would leave
	// the target or overwrite tiles.
	ErrPatternDoesNotFit = errors.New("pattern does not fit")

	// ErrLayerTaken is returned when registering two providers for one bit.
	ErrLayerTaken = errors.New("layer already has a provider")
)
