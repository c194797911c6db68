package recommend

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMalformedUpload    = errors.New("malformed upload")
	ErrUnsupportedUpload  = errors.New("unsupported upload type")
	ErrModelNotConfigured = errors.New("model not configured")
)

const (
	ErrorCodeValidation      = "validation_error"
	ErrorCodeUnsupportedType = "unsupported_media_type"
	ErrorCodeMalformedUpload = "malformed_upload"
	ErrorCodeInternal        = "internal_error"
)
