package parser

import (
	"errors"
	"fmt"
)

var (
	ErrDecode       = errors.New("log content is not valid UTF-8 text")
	ErrLinkTemplate = errors.New("invalid link template")
)

// DecodeError reports the byte offset of the first invalid sequence.
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("log content is not valid UTF-8 text (invalid byte at offset %d)", e.Offset)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
