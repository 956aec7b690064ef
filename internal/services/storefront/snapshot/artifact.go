package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	apperrors "github.com/louisbranch/storefront/internal/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

// FormatVersion is the artifact layout written by this build.
const FormatVersion = 1

// Artifact is one serialized copy of the read model.
type Artifact struct {
	Version     int                       `json:"version"`
	GeneratedAt time.Time                 `json:"generated_at"`
	LastSeq     uint64                    `json:"last_seq"`
	Dashboard   readmodel.Dashboard       `json:"dashboard"`
	Inventory   []readmodel.InventoryItem `json:"inventory"`
	Clients     []readmodel.Client        `json:"clients"`
	Orders      []readmodel.Order         `json:"orders"`
	Devices     []readmodel.Device        `json:"devices"`
}

// Build converts state into an artifact with every collection sorted by id.
func Build(state readmodel.State, lastSeq uint64, now time.Time) Artifact {
	state = state.Clone()
	return Artifact{
		Version:     FormatVersion,
		GeneratedAt: now.UTC(),
		LastSeq:     lastSeq,
		Dashboard:   state.Dashboard,
		Inventory:   sortedValues(state.Inventory),
		Clients:     sortedValues(state.Clients),
		Orders:      sortedValues(state.Orders),
		Devices:     sortedValues(state.Devices),
	}
}

// State converts the artifact back into keyed read-model state.
func (a Artifact) State() readmodel.State {
	state := readmodel.NewState()
	state.Dashboard = a.Dashboard
	for _, item := range a.Inventory {
		state.Inventory[item.ID] = item
	}
	for _, c := range a.Clients {
		state.Clients[c.ID] = c
	}
	for _, o := range a.Orders {
		state.Orders[o.ID] = o
	}
	for _, d := range a.Devices {
		state.Devices[d.ID] = d
	}
	return state.Clone()
}

// Validate checks that the artifact uses a supported format version.
func (a Artifact) Validate() error {
	if a.Version != FormatVersion {
		return apperrors.WithMetadata(
			apperrors.CodeSnapshotVersionUnsupported,
			fmt.Sprintf("snapshot version %d is not supported", a.Version),
			map[string]string{"version": strconv.Itoa(a.Version)},
		)
	}
	return nil
}

// Encode renders the artifact as indented JSON.
func Encode(a Artifact) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses and validates an artifact.
func Decode(data []byte) (Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return Artifact{}, apperrors.Wrap(apperrors.CodeSnapshotReadFailed, "decode snapshot", err)
	}
	if err := a.Validate(); err != nil {
		return Artifact{}, err
	}
	return a, nil
}

func sortedValues[T any](records map[string]T) []T {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, records[id])
	}
	return out
}
