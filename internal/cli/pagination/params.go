package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Sort orders and limits.
const (
	MaxLimit         = 10000
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	DefaultSortOrder = SortOrderDesc
)

// Common validation errors.
var (
	ErrInvalidLimit      = errors.New("limit must be between 0 and 10000")
	ErrInvalidOffset     = errors.New("offset must be non-negative")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'roi:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the --limit and --offset flag values. A zero Limit shows
// every item after Offset.
type Params struct {
	Limit  int
	Offset int
}

// Validate checks the bounds of both values.
func (p Params) Validate() error {
	if p.Limit < 0 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, p.Offset)
	}
	return nil
}

// IsEnabled returns true if any paging parameter is set.
func (p Params) IsEnabled() bool {
	return p.Limit > 0 || p.Offset > 0
}

// Apply returns the page of items selected by p. The result shares the
// backing array of items.
func Apply[T any](p Params, items []T) []T {
	if p.Offset >= len(items) {
		return items[:0]
	}
	end := len(items)
	if p.Limit > 0 {
		end = min(end, p.Offset+p.Limit)
	}
	return items[p.Offset:end]
}

// Meta describes the page that was shown.
type Meta struct {
	TotalItems int  `json:"total_items" yaml:"total_items"`
	Offset     int  `json:"offset"      yaml:"offset"`
	Shown      int  `json:"shown"       yaml:"shown"`
	HasNext    bool `json:"has_next"    yaml:"has_next"`
}

// NewMeta creates page metadata from parameters and the total item count.
func NewMeta(p Params, totalCount int) Meta {
	offset := min(p.Offset, totalCount)
	shown := totalCount - offset
	if p.Limit > 0 {
		shown = min(shown, p.Limit)
	}
	return Meta{
		TotalItems: totalCount,
		Offset:     offset,
		Shown:      shown,
		HasNext:    offset+shown < totalCount,
	}
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort expression in "field" or "field:order" format.
// The order defaults to descending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(expr string) (field, order string, err error) {
	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}

	order = DefaultSortOrder
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
