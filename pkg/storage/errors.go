package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	ErrNotFound       = errors.New("object not found")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrAccessDenied   = errors.New("access denied")
	ErrConnFailed     = errors.New("connection failed")
	ErrTimeout        = errors.New("operation timeout")
	ErrCanceled       = errors.New("operation canceled")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidKey     = errors.New("invalid object key")
)

// IsNotFound reports whether the store said the object does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCritical returns true if the error points at configuration rather than the request
func IsCritical(err error) bool {
	return errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrBucketNotFound) || errors.Is(err, ErrInvalidConfig)
}

// Classify tags transport-level failures that look the same for every
// provider: cancellation, deadlines and connection problems. Other errors are
// returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrCanceled), errors.Is(err, ErrTimeout), errors.Is(err, ErrConnFailed):
		return err
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) || errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w: %w", ErrConnFailed, err)
	}

	return err
}

// Tag wraps err with sentinel while keeping err reachable for errors.As
func Tag(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}

// WrapError adds context to an error
func WrapError(provider, operation string, err error) error {
	return fmt.Errorf("%s (%s): %w", operation, provider, err)
}
