// Package pagination normalizes page sizes and offset page tokens for list
// endpoints.
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidPageToken indicates a page token that is not a valid offset.
var ErrInvalidPageToken = errors.New("invalid page token")

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// ParsePageSize reads a page size from a query value. Empty or malformed
// values fall back to the default.
func ParsePageSize(raw string, cfg PageSizeConfig) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		value = 0
	}
	return ClampPageSize(value, cfg)
}

// ParsePageToken decodes an offset token. The empty token is offset zero.
func ParsePageToken(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}
	return offset, nil
}

// Window returns the page of items starting at offset and the token of the
// next page, or "" when this is the last page.
func Window[T any](items []T, offset, pageSize int) ([]T, string) {
	if offset >= len(items) {
		return []T{}, ""
	}
	end := min(offset+pageSize, len(items))
	next := ""
	if end < len(items) {
		next = strconv.Itoa(end)
	}
	return items[offset:end], next
}
