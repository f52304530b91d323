package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrClosed is returned by backends after Close.
var ErrClosed = errors.New("store closed")

// Operation names used in Error.Op.
const (
	OpGet         = "get"
	OpSet         = "set"
	OpMultiSet    = "multi_set"
	OpMultiRemove = "multi_remove"
)

// Error reports a failed store operation. Op distinguishes read failures
// (get) from write failures (set, multi_set, multi_remove).
type Error struct {
	Op   string   // Operation that failed
	Keys []string // Keys the operation touched
	Err  error    // Underlying error
}

func (e *Error) Error() string {
	keys := strings.Join(e.Keys, ",")
	if e.Err != nil {
		return fmt.Sprintf("store: %s [%s]: %v", e.Op, keys, e.Err)
	}
	return fmt.Sprintf("store: %s [%s]", e.Op, keys)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRead reports whether the failed operation was a read.
func (e *Error) IsRead() bool {
	return e.Op == OpGet
}

// NewError creates a store error. A nil err yields nil so backends can wrap
// results unconditionally.
func NewError(op string, err error, keys ...string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Keys: keys, Err: err}
}

// IsReadFailure checks if err is a failed store read.
func IsReadFailure(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.IsRead()
}

// IsWriteFailure checks if err is a failed store write.
func IsWriteFailure(err error) bool {
	var se *Error
	return errors.As(err, &se) && !se.IsRead()
}
