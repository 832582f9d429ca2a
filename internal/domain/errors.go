package domain

import "errors"

var (
	// ErrSchemaViolation marks an analysis payload that failed structural or enum validation.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrUnresolvedReference marks a setting whose element id is absent from the current analysis.
	ErrUnresolvedReference = errors.New("unresolved element reference")
	// ErrInvalidRange marks an intensity, density or refinement value outside [0,100].
	ErrInvalidRange = errors.New("value out of range")
	// ErrUnknownElementReference is reported only when compiler state is internally inconsistent.
	ErrUnknownElementReference = errors.New("unknown element reference")
	ErrTemplateNotFound        = errors.New("template not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrContentBlocked     = errors.New("content blocked by safety filter")
	ErrMalformedOutput    = errors.New("malformed analysis output")
	ErrProviderFailure    = errors.New("provider failure")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrImageTooLarge      = errors.New("image too large")
	ErrSuperseded         = errors.New("request superseded")
)
