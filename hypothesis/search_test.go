package hypothesis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ncobase/annofetch/config"
	"github.com/ncobase/annofetch/ecode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithEndpoint(srv.URL+"/api/search"), WithUserAgent("annofetch-test"))
}

func TestSearchSendsQuery(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = w.Write([]byte(`{"total": 0, "rows": []}`))
	})

	_, err := c.Search(context.Background(), NewSearchParams("https://example.com/a?b=c", "", 200))
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/search", got.URL.Path)
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "annofetch-test", got.Header.Get("User-Agent"))
	assert.Equal(t,
		"limit=200&order=desc&search_after=&sort=updated&uri=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc",
		got.URL.RawQuery)

	q, err := url.ParseQuery(got.URL.RawQuery)
	require.NoError(t, err)
	assert.True(t, q.Has("search_after"))
	assert.Equal(t, "https://example.com/a?b=c", q.Get("uri"))
}

func TestSearchSendsCursor(t *testing.T) {
	var cursor string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cursor = r.URL.Query().Get("search_after")
		_, _ = w.Write([]byte(`{"rows": []}`))
	})

	_, err := c.Search(context.Background(), NewSearchParams("https://example.com", "2024-01-02T03:04:05.000000+00:00", 200))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05.000000+00:00", cursor)
}

func TestSearchDecodesRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total": 2, "rows": [{"id": "a", "updated": "t1"}, {"id": "b", "updated": "t2", "tags": ["x"]}]}`))
	})

	res, err := c.Search(context.Background(), NewSearchParams("https://example.com", "", 200))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Rows, 2)
	assert.JSONEq(t, `{"id": "b", "updated": "t2", "tags": ["x"]}`, res.Rows[1].String())

	updated, err := res.Rows[1].Updated()
	require.NoError(t, err)
	assert.Equal(t, "t2", updated)
}

func TestSearchResponseFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>Service Unavailable</html>`},
		{"empty body", ``},
		{"missing rows", `{"total": 3}`},
		{"null rows", `{"rows": null}`},
		{"rows not array", `{"rows": {"updated": "t1"}}`},
		{"array body", `[{"updated": "t1"}]`},
		{"truncated", `{"rows": [{"updated": "t1"}`},
		{"trailing html", `{"rows": []}<html>Bad Gateway</html>`},
		{"two documents", `{"rows": []} {"rows": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := c.Search(context.Background(), NewSearchParams("https://example.com", "", 200))
			assert.Nil(t, res)
			require.Error(t, err)
			assert.Equal(t, ecode.KindResponseFormat, ecode.KindOf(err), "got %v", err)
		})
	}
}

func TestSearchStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status": "failure", "reason": "limit: 500 is greater than maximum of 200"}`))
	})

	_, err := c.Search(context.Background(), NewSearchParams("https://example.com", "", 500))
	require.Error(t, err)
	assert.Equal(t, ecode.KindTransport, ecode.KindOf(err))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "greater than maximum")
}

func TestSearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	c := NewClient(WithEndpoint(endpoint))
	_, err := c.Search(context.Background(), NewSearchParams("https://example.com", "", 200))
	require.Error(t, err)
	assert.Equal(t, ecode.KindTransport, ecode.KindOf(err))
}

func TestSearchBodyCutShort(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		defer conn.Close()
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 100\r\n\r\n")
		_, _ = buf.WriteString(`{"rows": [{"updated": "t1"}`)
		_ = buf.Flush()
	})

	_, err := c.Search(context.Background(), NewSearchParams("https://example.com", "", 200))
	require.Error(t, err)
	assert.Equal(t, ecode.KindTransport, ecode.KindOf(err), "got %v", err)
}

func TestSearchTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Search(ctx, NewSearchParams("https://example.com", "", 200))
	require.Error(t, err)
	assert.Equal(t, ecode.KindTransport, ecode.KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEndpointWithQuery(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"rows": []}`))
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL + "/api/search?group=__world__"))
	_, err := c.Search(context.Background(), NewSearchParams("https://example.com", "", 10))
	require.NoError(t, err)
	assert.Contains(t, raw, "group=__world__&limit=10")
}

func TestAnnotationUpdated(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"string", `{"updated": "2024-05-01T00:00:00+00:00"}`, "2024-05-01T00:00:00+00:00", false},
		{"missing", `{"id": "x"}`, "", true},
		{"not string", `{"updated": 12}`, "", true},
		{"not object", `["updated"]`, "", true},
		{"null", `null`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Annotation(tt.raw).Updated()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ecode.KindResponseFormat, ecode.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnnotationPassesThrough(t *testing.T) {
	in := `[{"updated":"t1","text":"a <b> & c","nested":{"k":[1,2]}},null]`

	var rows []Annotation
	require.NoError(t, json.Unmarshal([]byte(in), &rows))
	require.Len(t, rows, 2)

	out, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestWithTimeoutCopiesHTTPClient(t *testing.T) {
	hc := &http.Client{}
	c := NewClient(WithHTTPClient(hc), WithTimeout(time.Second))
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Zero(t, hc.Timeout)
}

func TestNewClientFromConfig(t *testing.T) {
	c := NewClientFromConfig(&config.API{Endpoint: "http://localhost:5000/api/search", UserAgent: "ua/1", Timeout: 2 * time.Second})
	assert.Equal(t, "http://localhost:5000/api/search", c.Endpoint())
	assert.Equal(t, "ua/1", c.userAgent)
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)

	def := NewClientFromConfig(&config.API{})
	assert.Equal(t, config.DefaultEndpoint, def.Endpoint())
	assert.Zero(t, def.httpClient.Timeout)
}
