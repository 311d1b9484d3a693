package hypothesis

import (
	"encoding/json"
	"errors"

	"github.com/ncobase/annofetch/ecode"
)

// Annotation is one annotation exactly as the service returned it. Only the
// updated field is ever read; the rest passes through untouched.
type Annotation json.RawMessage

// MarshalJSON returns the raw annotation
func (a Annotation) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("null"), nil
	}
	return a, nil
}

// UnmarshalJSON keeps a copy of data
func (a *Annotation) UnmarshalJSON(data []byte) error {
	if a == nil {
		return errors.New("hypothesis: UnmarshalJSON on nil pointer")
	}
	*a = append((*a)[0:0], data...)
	return nil
}

// Updated returns the updated timestamp used as the search_after cursor
func (a Annotation) Updated() (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(a, &fields); err != nil || fields == nil {
		return "", ecode.ResponseFormat("annotation", errors.New("not a JSON object"))
	}

	raw, ok := fields["updated"]
	if !ok {
		return "", ecode.ResponseFormat("annotation", errors.New(ecode.FieldIsMissing("updated")))
	}

	var updated string
	if err := json.Unmarshal(raw, &updated); err != nil {
		return "", ecode.ResponseFormat("annotation", errors.New(ecode.FieldIsInvalid("updated")))
	}
	return updated, nil
}

func (a Annotation) String() string {
	return string(a)
}
