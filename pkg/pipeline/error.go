package pipeline

import "errors"

var (
	// ErrNoInput is returned when a request carries neither document bytes
	// nor raw text, or a QA request has no question.
	ErrNoInput = errors.New("no input provided")
)
