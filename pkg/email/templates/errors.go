package templates

import "errors"

var (
	// ErrTemplateNotFound is returned by Read for names the store does not hold.
	ErrTemplateNotFound = errors.New("templates: template not found")

	// ErrInvalidName is returned for names that are empty or escape the store root.
	ErrInvalidName = errors.New("templates: invalid template name")

	// ErrRenderFailed wraps template parse and execution errors.
	ErrRenderFailed = errors.New("templates: render failed")
)
