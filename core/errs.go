package core

import "errors"

var (
	ErrMalformedAnalysis = errors.New("malformed analysis data")
	ErrEmptyTemplate     = errors.New("empty message template")
)
