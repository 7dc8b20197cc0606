package codec

import (
	"fmt"

	"github.com/pkg/errors"

	"tessera/descriptor"
)

var (
	// ErrMissingField is matched by errors reporting a field absent from an
	// indexed decode.
	ErrMissingField = errors.New("missing field")
	// ErrUnknownField is matched by errors reporting an element index or key
	// that does not belong to the composite being decoded.
	ErrUnknownField = errors.New("unknown field")
	// ErrMalformed is matched by errors reporting input the source or a leaf
	// codec could not make sense of.
	ErrMalformed = errors.New("malformed input")
	// ErrInvalidComposite is matched by construction-time errors of
	// NewComposite.
	ErrInvalidComposite = descriptor.ErrInvalidComposite
)

// MissingFieldError is returned when an indexed decode finishes without a
// value for Field.
type MissingFieldError struct {
	Composite string
	Field     string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: absent field %q", e.Composite, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// UnknownFieldError is returned for an element index outside the composite's
// field range, or by keyed sources for a member name the composite does not
// declare. Key is empty in the former case.
type UnknownFieldError struct {
	Composite string
	Index     int
	Key       string
}

func (e *UnknownFieldError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: unknown field %q", e.Composite, e.Key)
	}
	return fmt.Sprintf("%s: unexpected index %d", e.Composite, e.Index)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// MalformedError reports input that does not have the expected shape.
type MalformedError struct {
	Reason string
	Err    error
}

// Malformed returns a *MalformedError with a formatted reason.
func Malformed(format string, args ...interface{}) error {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}

// WrapMalformed marks err, typically from a format library, as malformed
// input.
func WrapMalformed(err error, reason string) error {
	if err == nil {
		return nil
	}
	return &MalformedError{Reason: reason, Err: err}
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
	}
	return "malformed input: " + e.Reason
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

func (e *MalformedError) Unwrap() error { return e.Err }
