package generatedresumes

import "errors"

var (
	// ErrNotFound indicates the requested resume does not exist.
	ErrNotFound = errors.New("generated resume not found")
	// ErrInvalidInput indicates the request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRenderFailed indicates both render strategies failed.
	ErrRenderFailed = errors.New("render failed")
)
