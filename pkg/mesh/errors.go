package mesh

import "errors"

// Errors returned by recoverable mesh operations.
var (
	ErrSnapshotEmpty    = errors.New("snapshot holds no capture")
	ErrSnapshotMesh     = errors.New("snapshot was captured from a different mesh")
	ErrSizeMismatch     = errors.New("snapshot element count differs from mesh")
	ErrAttributeMissing = errors.New("snapshot attribute no longer enabled on mesh")
	ErrCanceled         = errors.New("attribute request canceled")
	ErrUnknownMaskName  = errors.New("unknown attribute mask name")
)
