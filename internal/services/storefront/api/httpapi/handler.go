package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/engine"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
)

const maxCommandBody = 1 << 20

// CommandExecutor runs commands against the write side.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd command.Command) (engine.Result, error)
}

// StreamReader lists the events of one stream.
type StreamReader interface {
	Query(ctx context.Context, streamID string) ([]event.Event, error)
}

// SnapshotPersister writes a snapshot on demand.
type SnapshotPersister interface {
	Persist(ctx context.Context) (snapshot.Artifact, error)
}

// Handler serves the storefront HTTP API.
type Handler struct {
	Commands  CommandExecutor
	Store     *readmodel.Store
	Events    StreamReader
	Snapshots SnapshotPersister
}

// Routes returns the API mux wrapped in the standard middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("POST /v1/commands", h.handleCommand)
	mux.HandleFunc("GET /v1/streams/{stream}/events", h.handleStreamEvents)
	mux.HandleFunc("POST /v1/snapshot", h.handleSnapshot)

	mux.HandleFunc("GET /v1/inventory", h.handleListInventory)
	mux.HandleFunc("GET /v1/inventory/{id}", h.handleGetInventory)
	mux.HandleFunc("GET /v1/clients", h.handleListClients)
	mux.HandleFunc("GET /v1/clients/{id}", h.handleGetClient)
	mux.HandleFunc("GET /v1/devices", h.handleListDevices)
	mux.HandleFunc("GET /v1/devices/{id}", h.handleGetDevice)
	mux.HandleFunc("GET /v1/orders", h.handleListOrders)
	mux.HandleFunc("GET /v1/orders/{id}", h.handleGetOrder)
	mux.HandleFunc("GET /v1/dashboard", h.handleDashboard)

	return Chain(mux, RecoverPanic(), RequestID(), AccessLog())
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// commandRequest is the body of POST /v1/commands.
type commandRequest struct {
	Type      string          `json:"type"`
	StreamID  string          `json:"stream_id"`
	EntityID  string          `json:"entity_id"`
	ActorID   string          `json:"actor_id"`
	RequestID string          `json:"request_id"`
	Payload   json.RawMessage `json:"payload"`
}

type commandResponse struct {
	Version uint64      `json:"version"`
	Events  []eventView `json:"events"`
}

func (h *Handler) handleCommand(w http.ResponseWriter, r *http.Request) {
	if h.Commands == nil {
		writeError(w, r, errors.New("command executor is not configured"))
		return
	}
	var req commandRequest
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxCommandBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, r, errors.Join(command.ErrPayloadInvalid, err))
		return
	}
	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" {
		requestID = r.Header.Get(requestIDHeader)
	}
	cmd := command.Command{
		StreamID:    req.StreamID,
		Type:        command.Type(req.Type),
		EntityID:    req.EntityID,
		ActorID:     req.ActorID,
		RequestID:   requestID,
		PayloadJSON: req.Payload,
	}
	result, err := h.Commands.Execute(r.Context(), cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]eventView, 0, len(result.Decision.Events))
	for _, evt := range result.Decision.Events {
		views = append(views, newEventView(evt))
	}
	writeJSON(w, http.StatusOK, commandResponse{Version: result.Version, Events: views})
}

func (h *Handler) handleStreamEvents(w http.ResponseWriter, r *http.Request) {
	streamID := r.PathValue("stream")
	if _, _, ok := event.ParseStreamID(streamID); !ok {
		writeError(w, r, command.ErrStreamIDRequired)
		return
	}
	events, err := h.Events.Query(r.Context(), streamID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]eventView, 0, len(events))
	for _, evt := range events {
		views = append(views, newEventView(evt))
	}
	writeJSON(w, http.StatusOK, map[string]any{"stream_id": streamID, "events": views})
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.Snapshots == nil {
		writeError(w, r, errors.New("snapshot sink is not configured"))
		return
	}
	artifact, err := h.Snapshots.Persist(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version":      artifact.Version,
		"generated_at": artifact.GeneratedAt,
		"last_seq":     artifact.LastSeq,
	})
}
