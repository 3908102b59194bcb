package domain

import "errors"

// ErrEmptyThreadID is returned when a store operation receives an empty thread id.
var ErrEmptyThreadID = errors.New("thread id cannot be empty")

// ErrNoContent is returned when the model produced an empty completion.
var ErrNoContent = errors.New("no content received from model")
