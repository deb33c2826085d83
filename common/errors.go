package common

import "errors"

var (
	// ErrConversionFailed is returned when the document tree cannot be
	// translated at all (missing root, undeclared namespace and similar).
	ErrConversionFailed = errors.New("conversion failed")
	// ErrInvalidFileExtension is returned for inputs which are not .docx files.
	ErrInvalidFileExtension = errors.New("invalid file extension")
	// ErrConverterMissing is returned when no converter is registered for
	// requested output format.
	ErrConverterMissing = errors.New("converter missing")
)
