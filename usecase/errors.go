package usecase

import "errors"

// ErrValidation marks input rejections. Handlers answer these with 400;
// everything else surfaces as a persistence failure.
var ErrValidation = errors.New("invalid input")
