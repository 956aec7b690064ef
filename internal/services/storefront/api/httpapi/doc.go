// Package httpapi exposes the storefront command and read surfaces over
// JSON/HTTP.
//
// Commands are submitted to a single endpoint and routed by type to the
// owning aggregate. Reads are served from the projected read model and never
// touch the event journal, except for the raw stream listing.
package httpapi
