// Package pagination translates client page/limit parameters into the
// LIMIT/OFFSET pair the query layer feeds to the database.
package pagination

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalid = errors.New("invalid pagination parameters")

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// LimitAndOffset resolves optional page and limit values against the
// defaults. Pages are 1-based; nil means "use the default". Rejections
// wrap ErrInvalid so callers can map them to a 400.
func LimitAndOffset(page, limit *int) (int, int, error) {
	p := 1
	if page != nil {
		p = *page
	}
	l := DefaultLimit
	if limit != nil {
		l = *limit
	}

	if p < 1 {
		return 0, 0, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalid, p)
	}
	if l < 1 {
		return 0, 0, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalid, l)
	}
	if l > MaxLimit {
		return 0, 0, fmt.Errorf("%w: limit must be <= %d, got %d", ErrInvalid, MaxLimit, l)
	}
	// (page-1)*limit must not wrap around; a negative offset would be
	// silently ignored by the query layer and serve page 1.
	if p-1 > math.MaxInt/l {
		return 0, 0, fmt.Errorf("%w: page %d out of range", ErrInvalid, p)
	}

	return l, (p - 1) * l, nil
}
