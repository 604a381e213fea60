package bencode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure classes. Every error returned by this package wraps exactly one
// of them, so callers can branch with errors.Is.
var (
	ErrSyntax       = errors.New("bencode: syntax error")
	ErrTruncated    = errors.New("bencode: unexpected end of input")
	ErrOverflow     = errors.New("bencode: integer overflow")
	ErrInvalidUTF8  = errors.New("bencode: invalid UTF-8 key")
	ErrTrailingData = errors.New("bencode: trailing data after value")
	ErrTooDeep      = errors.New("bencode: nesting too deep")
	ErrDuplicateKey = errors.New("bencode: duplicate dictionary key")
)

// SyntaxError describes where decoding stopped and why.
type SyntaxError struct {
	Offset int   // byte offset into the decoded buffer
	Err    error // one of the Err* values above
	msg    string
}

func (e *SyntaxError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
