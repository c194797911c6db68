package model

import "errors"

var (
	ErrArtifactNotFound  = errors.New("model artifact not found")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	ErrUnknownClass      = errors.New("unknown class")
)
