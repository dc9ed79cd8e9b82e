package dock

import "errors"

// Structural errors: the requested operation would violate a tree invariant.
// The tree is left unmodified when one of these is returned.
var (
	// ErrNilPanel is returned when an operation receives a nil panel.
	ErrNilPanel = errors.New("panel is nil")

	// ErrSiblingNotFound is returned when a dock names a sibling that is
	// not reachable from the tree root.
	ErrSiblingNotFound = errors.New("sibling not found in layout tree")

	// ErrCenterTarget is returned when a Center dock resolves to a target
	// that cannot host a tab group.
	ErrCenterTarget = errors.New("center dock target is not splittable")

	// ErrNotDocked is returned when undocking a panel the tree does not
	// hold.
	ErrNotDocked = errors.New("panel is not docked in this tree")

	// ErrAlreadyDocked is returned when docking a panel that is already
	// attached to the tree.
	ErrAlreadyDocked = errors.New("panel is already docked")
)

// Document errors.
var (
	// ErrMissingRootRecord is returned when a layout document has no "0"
	// record to rebuild from.
	ErrMissingRootRecord = errors.New("layout document missing root record")

	// ErrUnknownRecordType is returned for record types outside the known
	// set.
	ErrUnknownRecordType = errors.New("unknown record type")
)
