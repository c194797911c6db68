package extract

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrMalformed       = errors.New("malformed document")
)
