package imaging

import "errors"

// Sentinel errors for package imaging.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Precondition errors, fatal to a whole run
	ErrPathNotFound      = errors.New("path does not exist")
	ErrNotDirectory      = errors.New("expected directory, got file")
	ErrMissingDependency = errors.New("codec executable not available")

	// Per-file errors, recorded in Stats and never returned from Run
	ErrCodecFailed = errors.New("codec invocation failed")

	// Configuration errors
	ErrInvalidQuality = errors.New("quality must be between 1 and 100")
	ErrUnknownFormat  = errors.New("unsupported output format")
)
