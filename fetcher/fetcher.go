package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ncobase/annofetch/ecode"
	"github.com/ncobase/annofetch/hypothesis"
	"github.com/ncobase/annofetch/log"
	"github.com/ncobase/annofetch/paging"
	"github.com/ncobase/annofetch/tracing"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProgressFormat is the line written after every non-empty page
const ProgressFormat = "Fetched %d annotations. Search after %s\n"

// Searcher runs one search request
type Searcher interface {
	Search(ctx context.Context, params hypothesis.SearchParams) (*hypothesis.SearchResult, error)
}

// Fetcher pages through every annotation of a URL
type Fetcher struct {
	searcher     Searcher
	limit        int
	maxPages     int
	stopOnRepeat bool
	progress     io.Writer
	logger       *log.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithLimit sets the page size
func WithLimit(limit int) Option {
	return func(f *Fetcher) {
		f.limit = limit
	}
}

// WithMaxPages fails the fetch after more than n non-empty pages
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithStopOnRepeat fails the fetch when a page does not advance the cursor
func WithStopOnRepeat(stop bool) Option {
	return func(f *Fetcher) {
		f.stopOnRepeat = stop
	}
}

// WithProgress sets where progress lines go
func WithProgress(w io.Writer) Option {
	return func(f *Fetcher) {
		if w != nil {
			f.progress = w
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// New returns a Fetcher over searcher
func New(searcher Searcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		searcher: searcher,
		limit:    paging.DefaultLimit,
		progress: os.Stderr,
		logger:   log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll retrieves every annotation of uri, newest update first, stopping
// at the first empty page.
func (f *Fetcher) FetchAll(ctx context.Context, uri string) (Collection, error) {
	ctx, span := tracing.Tracer().Start(ctx, "fetcher.fetch_all",
		trace.WithAttributes(attribute.String("hypothesis.uri", uri)),
	)
	defer span.End()

	page := 0
	fetchPage := func(ctx context.Context, p paging.Params) (*paging.Page[hypothesis.Annotation], error) {
		page++
		res, err := f.searcher.Search(ctx, hypothesis.NewSearchParams(uri, p.Cursor, p.Limit))
		if err != nil {
			return nil, err
		}

		out := &paging.Page[hypothesis.Annotation]{Items: res.Rows}
		if len(res.Rows) > 0 {
			next, err := res.Rows[len(res.Rows)-1].Updated()
			if err != nil {
				return nil, fmt.Errorf("last row: %w", err)
			}
			out.NextCursor = next
		}

		f.logger.EntryWithFields(ctx, logrus.Fields{
			"page":         page,
			"rows":         len(res.Rows),
			"total":        res.Total,
			"search_after": p.Cursor,
		}).Debug("page fetched")
		return out, nil
	}

	items, err := paging.Walk(ctx, paging.Params{Limit: f.limit}, fetchPage, paging.Options{
		MaxPages:     f.maxPages,
		StopOnRepeat: f.stopOnRepeat,
		OnPage:       f.reportProgress,
	})
	if err != nil {
		if errors.Is(err, paging.ErrMaxPages) || errors.Is(err, paging.ErrCursorRepeated) {
			err = ecode.Guard("fetch", err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("annofetch.pages", page),
		attribute.Int("annofetch.annotations", len(items)),
	)
	return Collection(items), nil
}

func (f *Fetcher) reportProgress(total int, cursor string) {
	_, _ = fmt.Fprintf(f.progress, ProgressFormat, total, cursor)
}
