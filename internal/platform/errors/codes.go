// Package errors provides structured error handling with i18n support.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Command errors
	CodeCommandInvalid  Code = "COMMAND_INVALID"
	CodeCommandRejected Code = "COMMAND_REJECTED"
	CodeVersionConflict Code = "STREAM_VERSION_CONFLICT"

	// Read errors
	CodeNotFound         Code = "NOT_FOUND"
	CodeFilterInvalid    Code = "FILTER_INVALID"
	CodePageTokenInvalid Code = "PAGE_TOKEN_INVALID"

	// Snapshot errors
	CodeSnapshotWriteFailed        Code = "SNAPSHOT_WRITE_FAILED"
	CodeSnapshotReadFailed         Code = "SNAPSHOT_READ_FAILED"
	CodeSnapshotVersionUnsupported Code = "SNAPSHOT_VERSION_UNSUPPORTED"

	// Projection errors
	CodeProjectionFailed Code = "PROJECTION_FAILED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeCommandInvalid,
		CodeFilterInvalid,
		CodePageTokenInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeCommandRejected,
		CodeSnapshotVersionUnsupported:
		return codes.FailedPrecondition

	// Aborted - concurrent writer moved the stream
	case CodeVersionConflict:
		return codes.Aborted

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition:
		return http.StatusUnprocessableEntity
	case codes.Aborted:
		return http.StatusConflict
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
