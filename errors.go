package queryitems

import (
	"errors"
	"fmt"
)

var (
	// ErrStructuralConflict is returned when a write targets a node whose kind
	// is already fixed to an incompatible kind.
	ErrStructuralConflict = errors.New("query: structural conflict")

	// ErrUnsupportedRootShape is returned when the root of an encoded tree is
	// a bare scalar or a bare sequence, neither of which has a name to attach
	// to.
	ErrUnsupportedRootShape = errors.New("query: unsupported root shape")

	// ErrUnsupportedType is returned for values that have no string form, such
	// as channels and functions, and for maps whose keys are not strings.
	ErrUnsupportedType = errors.New("query: unsupported type")

	// ErrDuplicatePath is returned by a strict flatten when two leaves render
	// to the same name.
	ErrDuplicatePath = errors.New("query: duplicate path")
)

// ConflictError describes a write that does not fit the kind of its target
// node. It matches [ErrStructuralConflict] with [errors.Is].
type ConflictError struct {
	Have Kind
	Op   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("query: structural conflict: cannot %s on %s node", e.Op, e.Have)
}

func (e *ConflictError) Unwrap() error {
	return ErrStructuralConflict
}
