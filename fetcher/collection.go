package fetcher

import (
	"encoding/json"
	"io"

	"github.com/ncobase/annofetch/hypothesis"
)

// Collection is the ordered, append-only result of a fetch
type Collection []hypothesis.Annotation

// Len returns the number of annotations
func (c Collection) Len() int {
	return len(c)
}

// Encode writes the collection as one compact JSON array and a newline.
// An empty collection is written as [].
func (c Collection) Encode(w io.Writer) error {
	items := []hypothesis.Annotation(c)
	if items == nil {
		items = []hypothesis.Annotation{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(items)
}
