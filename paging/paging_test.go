package paging

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pager serves fixed pages and records the params it was called with
type pager struct {
	pages [][]string
	calls []Params
}

func (p *pager) fetch(_ context.Context, params Params) (*Page[string], error) {
	p.calls = append(p.calls, params)
	i := len(p.calls) - 1
	if i >= len(p.pages) {
		return &Page[string]{}, nil
	}
	items := p.pages[i]
	page := &Page[string]{Items: items}
	if len(items) > 0 {
		page.NextCursor = items[len(items)-1]
	}
	return page, nil
}

func TestNormalizeParams(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeParams(Params{}).Limit)
	assert.Equal(t, DefaultLimit, NormalizeParams(Params{Limit: -5}).Limit)
	assert.Equal(t, DefaultLimit, NormalizeParams(Params{Limit: 1000}).Limit)
	assert.Equal(t, 50, NormalizeParams(Params{Limit: 50}).Limit)
}

func TestWalkEmptyFirstPage(t *testing.T) {
	p := &pager{}

	items, err := Walk(context.Background(), Params{}, p.fetch, Options{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Len(t, p.calls, 1)
}

func TestWalkAccumulatesInOrder(t *testing.T) {
	p := &pager{pages: [][]string{{"a", "b"}, {"c"}, {"d", "e", "f"}}}

	var progress []int
	items, err := Walk(context.Background(), Params{}, p.fetch, Options{
		OnPage: func(total int, _ string) { progress = append(progress, total) },
	})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e", "f"}, items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{2, 3, 6}, progress)
	assert.Len(t, p.calls, 4)
}

func TestWalkAdvancesCursor(t *testing.T) {
	p := &pager{pages: [][]string{{"t1", "t2"}, {"t3"}}}

	_, err := Walk(context.Background(), Params{Limit: 2}, p.fetch, Options{})
	require.NoError(t, err)

	want := []Params{
		{Cursor: "", Limit: 2},
		{Cursor: "t2", Limit: 2},
		{Cursor: "t3", Limit: 2},
	}
	if diff := cmp.Diff(want, p.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	fn := func(_ context.Context, _ Params) (*Page[int], error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return &Page[int]{Items: []int{calls}, NextCursor: strconv.Itoa(calls)}, nil
	}

	items, err := Walk(context.Background(), Params{}, fn, Options{})
	assert.Nil(t, items)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "page 2")
}

func TestWalkMaxPages(t *testing.T) {
	t.Run("exact fit", func(t *testing.T) {
		p := &pager{pages: [][]string{{"a"}, {"b"}}}
		items, err := Walk(context.Background(), Params{}, p.fetch, Options{MaxPages: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, items)
	})

	t.Run("exceeded", func(t *testing.T) {
		p := &pager{pages: [][]string{{"a"}, {"b"}, {"c"}}}
		items, err := Walk(context.Background(), Params{}, p.fetch, Options{MaxPages: 2})
		assert.Nil(t, items)
		assert.ErrorIs(t, err, ErrMaxPages)
		assert.Len(t, p.calls, 3)
	})
}

func TestWalkStopOnRepeat(t *testing.T) {
	fn := func(_ context.Context, _ Params) (*Page[string], error) {
		return &Page[string]{Items: []string{"x"}, NextCursor: "same"}, nil
	}

	items, err := Walk(context.Background(), Params{}, fn, Options{StopOnRepeat: true})
	assert.Nil(t, items)
	assert.ErrorIs(t, err, ErrCursorRepeated)
	assert.Contains(t, err.Error(), "page 2")
}
