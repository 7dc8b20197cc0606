package descriptor

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidComposite is matched by every error NewComposite returns.
var ErrInvalidComposite = errors.New("invalid composite")

// InvalidCompositeError reports a field list that cannot form a composite.
type InvalidCompositeError struct {
	Composite string
	Field     string
	Position  int
	Reason    string
}

func (e *InvalidCompositeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid composite %s: field %d: %s", e.Composite, e.Position, e.Reason)
	}
	return fmt.Sprintf("invalid composite %s: field %d (%q): %s", e.Composite, e.Position, e.Field, e.Reason)
}

func (e *InvalidCompositeError) Is(target error) bool {
	return target == ErrInvalidComposite
}
