package engine

import (
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/storefront/internal/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
)

// ErrCommandRejected matches every *RejectionError.
var ErrCommandRejected = errors.New("command rejected")

// RejectionError reports a command the domain declined. Nothing was appended.
type RejectionError struct {
	CommandType command.Type
	StreamID    string
	Rejections  []command.Rejection
}

func (e *RejectionError) Error() string {
	decision := command.Decision{Rejections: e.Rejections}
	return fmt.Sprintf("%s rejected on %s: %s", e.CommandType, e.StreamID, decision.Codes())
}

// Is matches ErrCommandRejected.
func (e *RejectionError) Is(target error) bool {
	return target == ErrCommandRejected
}

// AppError converts the rejection into a structured platform error.
func (e *RejectionError) AppError() *apperrors.Error {
	decision := command.Decision{Rejections: e.Rejections}
	return apperrors.WithMetadata(apperrors.CodeCommandRejected, e.Error(), map[string]string{
		"command_type": string(e.CommandType),
		"stream_id":    e.StreamID,
		"reasons":      decision.Codes(),
	})
}

// nonRetryableError marks failures that happened after events were stored.
// Retrying the command would append them twice.
type nonRetryableError struct {
	err error
}

func (e *nonRetryableError) Error() string { return e.err.Error() }
func (e *nonRetryableError) Unwrap() error { return e.err }

// NonRetryable returns true from IsNonRetryable checks.
func (e *nonRetryableError) NonRetryable() bool { return true }

// wrapNonRetryable marks an error as non-retryable.
func wrapNonRetryable(err error) error {
	if err == nil {
		return nil
	}
	return &nonRetryableError{err: err}
}

// IsNonRetryable returns true when the error (or any error in its chain)
// signals that the operation must not be retried.
func IsNonRetryable(err error) bool {
	var target interface{ NonRetryable() bool }
	if errors.As(err, &target) {
		return target.NonRetryable()
	}
	return false
}
