package command

import (
	"strings"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// Decision represents the pure outcome of handling a command.
type Decision struct {
	Events     []event.Event
	Rejections []Rejection
}

// Rejection captures a domain-level reason a command was declined.
type Rejection struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Accept returns a decision that emits the provided events.
func Accept(events ...event.Event) Decision {
	return Decision{Events: append([]event.Event(nil), events...)}
}

// Reject returns a decision that carries the provided rejections.
func Reject(rejections ...Rejection) Decision {
	return Decision{Rejections: append([]Rejection(nil), rejections...)}
}

// Rejected reports whether the decision declined the command.
func (d Decision) Rejected() bool {
	return len(d.Rejections) > 0
}

// Codes returns the rejection codes joined by commas.
func (d Decision) Codes() string {
	codes := make([]string, 0, len(d.Rejections))
	for _, r := range d.Rejections {
		codes = append(codes, r.Code)
	}
	return strings.Join(codes, ",")
}
