// Package paging walks cursor-paginated APIs to exhaustion.
//
// A PagingFunc fetches one page starting after a cursor and reports the
// cursor that follows it. Walk keeps calling it, accumulating items in
// arrival order, until a page comes back empty:
//
//	items, err := paging.Walk(ctx, paging.Params{Limit: 200},
//	    func(ctx context.Context, p paging.Params) (*paging.Page[Item], error) {
//	        rows, err := api.List(ctx, p.Cursor, p.Limit)
//	        if err != nil {
//	            return nil, err
//	        }
//	        page := &paging.Page[Item]{Items: rows}
//	        if len(rows) > 0 {
//	            page.NextCursor = rows[len(rows)-1].Updated
//	        }
//	        return page, nil
//	    },
//	    paging.Options{},
//	)
//
// # Termination
//
// With zero Options the walk trusts the API to hand out advancing cursors
// over a finite set. An API that keeps returning the same non-empty page
// never terminates. Two opt-in guards turn that into an error instead:
//
//   - Options.MaxPages fails with ErrMaxPages after too many non-empty pages
//   - Options.StopOnRepeat fails with ErrCursorRepeated when a page does not
//     move the cursor
package paging
