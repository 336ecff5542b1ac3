package lsys

import "errors"

var (
	// ErrInvalidProject is returned when a project document cannot be
	// rendered as written. The wrapped error carries the details.
	ErrInvalidProject = errors.New("lsys: invalid project")

	// ErrEmptyDocument is returned when a project document has no content.
	ErrEmptyDocument = errors.New("lsys: empty project document")
)
