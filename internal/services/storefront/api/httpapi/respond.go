package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"maps"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/storefront/internal/platform/errors"
	"github.com/louisbranch/storefront/internal/platform/errors/i18n"
	"github.com/louisbranch/storefront/internal/platform/pagination"
	"github.com/louisbranch/storefront/internal/services/storefront/core/filter"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/engine"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/journal"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type rejectionBody struct {
	Rejections []command.Rejection `json:"rejections"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write json response status=%d err=%v", status, err)
	}
}

// requestLocale picks the first language tag from Accept-Language.
func requestLocale(r *http.Request) string {
	header := r.Header.Get("Accept-Language")
	tag, _, _ := strings.Cut(header, ",")
	tag, _, _ = strings.Cut(tag, ";")
	return strings.TrimSpace(tag)
}

// writeError renders err as a structured error body with a localized message.
// Errors raised after events were stored carry retryable=false.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var rejection *engine.RejectionError
	if errors.As(err, &rejection) {
		writeRejection(w, r, rejection)
		return
	}
	appErr := classify(err)
	metadata := appErr.Metadata
	if engine.IsNonRetryable(err) {
		metadata = maps.Clone(metadata)
		if metadata == nil {
			metadata = map[string]string{}
		}
		metadata["retryable"] = "false"
	}
	catalog := i18n.GetCatalog(requestLocale(r))
	message := appErr.Message
	if catalog.Has(string(appErr.Code)) {
		message = catalog.Format(string(appErr.Code), appErr.Metadata)
	}
	status := appErr.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Printf("request failed method=%s path=%s code=%s err=%v", r.Method, r.URL.Path, appErr.Code, err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:     string(appErr.Code),
		Message:  message,
		Metadata: metadata,
	}})
}

func writeRejection(w http.ResponseWriter, r *http.Request, rejection *engine.RejectionError) {
	catalog := i18n.GetCatalog(requestLocale(r))
	metadata := map[string]string{
		"command_type": string(rejection.CommandType),
		"stream_id":    rejection.StreamID,
	}
	out := make([]command.Rejection, 0, len(rejection.Rejections))
	for _, rej := range rejection.Rejections {
		message := rej.Message
		if catalog.Has(rej.Code) {
			message = catalog.Format(rej.Code, metadata)
		}
		out = append(out, command.Rejection{Code: rej.Code, Message: message})
	}
	writeJSON(w, rejection.AppError().Code.HTTPStatus(), rejectionBody{Rejections: out})
}

// classify maps errors from the command and read paths onto platform codes.
func classify(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, command.ErrStreamIDRequired),
		errors.Is(err, command.ErrTypeRequired),
		errors.Is(err, command.ErrTypeUnknown),
		errors.Is(err, command.ErrStreamDomainMismatch),
		errors.Is(err, command.ErrEntityMismatch),
		errors.Is(err, command.ErrPayloadInvalid),
		errors.Is(err, event.ErrPayloadInvalid),
		errors.Is(err, event.ErrEntityIDRequired),
		errors.Is(err, engine.ErrStreamDomainUnknown):
		return apperrors.Wrap(apperrors.CodeCommandInvalid, err.Error(), err)
	case errors.Is(err, filter.ErrInvalidFilter):
		return apperrors.Wrap(apperrors.CodeFilterInvalid, err.Error(), err)
	case errors.Is(err, pagination.ErrInvalidPageToken):
		return apperrors.Wrap(apperrors.CodePageTokenInvalid, err.Error(), err)
	case errors.Is(err, journal.ErrVersionConflict):
		return apperrors.Wrap(apperrors.CodeVersionConflict, err.Error(), err)
	case errors.Is(err, journal.ErrSubscriberFailed):
		return apperrors.Wrap(apperrors.CodeProjectionFailed, err.Error(), err)
	default:
		return apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
}

func notFound(kind, id string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeNotFound, kind+" not found", map[string]string{
		"kind": kind,
		"id":   id,
	})
}
