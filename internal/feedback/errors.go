package feedback

import "errors"

var ErrInvalidInput = errors.New("invalid input")
