package hypothesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ncobase/annofetch/ecode"
	"github.com/ncobase/annofetch/tracing"

	"github.com/google/go-querystring/query"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// SortUpdated sorts by last update time
	SortUpdated = "updated"
	// OrderDesc returns newest first
	OrderDesc = "desc"

	// maxErrorBody caps how much of a failed response is kept
	maxErrorBody = 512
)

// SearchParams are the query parameters of one search request
type SearchParams struct {
	Limit       int    `url:"limit"`
	Order       string `url:"order"`
	SearchAfter string `url:"search_after"`
	Sort        string `url:"sort"`
	URI         string `url:"uri"`
}

// NewSearchParams returns parameters for the page of uri's annotations that
// follows cursor, newest update first.
func NewSearchParams(uri, cursor string, limit int) SearchParams {
	return SearchParams{
		Limit:       limit,
		Order:       OrderDesc,
		SearchAfter: cursor,
		Sort:        SortUpdated,
		URI:         uri,
	}
}

// SearchResult is one page of search results
type SearchResult struct {
	Rows  []Annotation
	Total int
}

type searchResponse struct {
	Rows  *[]Annotation `json:"rows"`
	Total int           `json:"total"`
}

// StatusError reports a non-2xx answer from the service
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hypothesis API error %d: %s", e.StatusCode, e.Body)
}

// Search requests one page of annotations
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	ctx, span := tracing.Tracer().Start(ctx, "hypothesis.search",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("hypothesis.uri", params.URI),
			attribute.String("hypothesis.search_after", params.SearchAfter),
			attribute.Int("hypothesis.limit", params.Limit),
		),
	)
	defer span.End()

	result, err := c.search(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("hypothesis.rows", len(result.Rows)))
	return result, nil
}

func (c *Client) search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, ecode.Transport("encode query", err)
	}

	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+sep+values.Encode(), nil)
	if err != nil {
		return nil, ecode.Transport("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ecode.Transport("perform request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, ecode.Transport("search", &StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ecode.Transport("read response", err)
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, ecode.ResponseFormat("decode response", err)
	}
	if out.Rows == nil {
		return nil, ecode.ResponseFormat("decode response", errors.New(ecode.FieldIsMissing("rows")))
	}

	return &SearchResult{Rows: *out.Rows, Total: out.Total}, nil
}
