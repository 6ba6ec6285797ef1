package repoerrs

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrNotWritable = errors.New("not writable")
	ErrEmpty       = errors.New("empty")
)
