package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage"
)

// Op names an adapter operation
type Op string

const (
	OpSave      Op = "save"
	OpLocalRead Op = "local read"
	OpExists    Op = "exists"
	OpDelete    Op = "delete"
	OpRead      Op = "read"
)

// Operation sentinels. An *OpError matches exactly one of them with
// errors.Is: its operation's sentinel, or ErrCanceled when the call was
// canceled or ran past its deadline.
var (
	ErrUpload    = errors.New("upload failed")
	ErrLocalRead = errors.New("local file read failed")
	ErrExists    = errors.New("existence check failed")
	ErrDelete    = errors.New("delete failed")
	ErrRead      = errors.New("read failed")
	ErrCanceled  = errors.New("operation canceled")
)

var opSentinels = map[Op]error{
	OpSave:      ErrUpload,
	OpLocalRead: ErrLocalRead,
	OpExists:    ErrExists,
	OpDelete:    ErrDelete,
	OpRead:      ErrRead,
}

// OpError is returned by every adapter operation. The store error stays
// reachable, so errors.Is(err, storage.ErrNotFound) tells a missing object
// apart from other read failures.
type OpError struct {
	Op  Op
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func (e *OpError) Is(target error) bool {
	if target == ErrCanceled {
		return e.canceled()
	}
	sentinel, ok := opSentinels[e.Op]
	return ok && target == sentinel && !e.canceled()
}

func (e *OpError) canceled() bool {
	return errors.Is(e.Err, storage.ErrCanceled) || errors.Is(e.Err, context.DeadlineExceeded)
}

func newOpError(op Op, key string, err error) *OpError {
	return &OpError{Op: op, Key: key, Err: storage.Classify(err)}
}

// IsNotFound reports whether err says the object does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
