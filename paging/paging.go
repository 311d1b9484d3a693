package paging

import (
	"context"
	"errors"
	"fmt"
)

const (
	// DefaultLimit is the page size used when none is given
	DefaultLimit = 200
	// MaxLimit is the largest page size the search API accepts
	MaxLimit = 200
)

var (
	// ErrMaxPages is returned when a walk fetches more non-empty pages than allowed
	ErrMaxPages = errors.New("maximum page count exceeded")
	// ErrCursorRepeated is returned when a page does not advance the cursor
	ErrCursorRepeated = errors.New("cursor did not advance")
)

// Params holds the unified pagination parameters
type Params struct {
	Cursor string `json:"cursor"`
	Limit  int    `json:"limit"`
}

// Page holds one batch of items and the cursor that follows it
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// PagingFunc fetches the page that starts after params.Cursor
type PagingFunc[T any] func(ctx context.Context, params Params) (*Page[T], error)

// Options tunes a walk. The zero value walks until an empty page.
type Options struct {
	// MaxPages fails the walk once more than this many non-empty pages
	// have been fetched. Zero means unbounded.
	MaxPages int
	// StopOnRepeat fails the walk when a page hands back the cursor it was
	// requested with.
	StopOnRepeat bool
	// OnPage is called after every non-empty page with the running item
	// count and the cursor for the next request.
	OnPage func(total int, cursor string)
}

// NormalizeParams ensures that Limit is within an acceptable range
func NormalizeParams(params Params) Params {
	if params.Limit <= 0 || params.Limit > MaxLimit {
		params.Limit = DefaultLimit
	}
	return params
}

// Walk calls fn page by page, advancing the cursor each time, and returns
// every item in arrival order once a page comes back empty.
func Walk[T any](ctx context.Context, params Params, fn PagingFunc[T], opts Options) ([]T, error) {
	params = NormalizeParams(params)

	items := make([]T, 0)
	pages := 0
	for {
		page, err := fn(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pages+1, err)
		}
		if page == nil || len(page.Items) == 0 {
			return items, nil
		}

		items = append(items, page.Items...)
		pages++

		if opts.MaxPages > 0 && pages > opts.MaxPages {
			return nil, fmt.Errorf("page %d: %w (limit %d)", pages, ErrMaxPages, opts.MaxPages)
		}
		if opts.StopOnRepeat && page.NextCursor == params.Cursor {
			return nil, fmt.Errorf("page %d: %w (cursor %q)", pages, ErrCursorRepeated, params.Cursor)
		}

		params.Cursor = page.NextCursor
		if opts.OnPage != nil {
			opts.OnPage(len(items), params.Cursor)
		}
	}
}
