package event

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ttgamma/gemportal/core"
)

// MemberRef is a polymorphic reference to a member. Depending on how the
// upstream check-in tool encoded it, the wire value may be a plain id string,
// an embedded member object, or a collection of either. Normalization is
// total: malformed input yields the zero ref instead of an error, so one bad
// record never fails a whole report.
type MemberRef struct {
	ID string
}

// Ref builds a MemberRef from an already-canonical id.
func Ref(id string) MemberRef { return MemberRef{ID: NormalizeRef(id)} }

func (r MemberRef) IsZero() bool { return r.ID == "" }

func (r MemberRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

func (r *MemberRef) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		r.ID = ""
		return nil
	}
	r.ID = NormalizeRef(v)
	return nil
}

// refIDKeys are the identifier fields an embedded member object may carry,
// in lookup order.
var refIDKeys = []string{"id", "_id", "member_id"}

// NormalizeRef extracts a canonical member id from a decoded attendee
// reference: a plain id, an embedded member-like object, or a collection of
// either (first element wins). It returns "" when no well-formed id can be
// extracted.
func NormalizeRef(v interface{}) string {
	switch val := v.(type) {
	case string:
		return wellFormedID(val)
	case map[string]interface{}:
		for _, key := range refIDKeys {
			if raw, ok := val[key]; ok {
				if id, ok := raw.(string); ok {
					return wellFormedID(id)
				}
			}
		}
		return ""
	case []interface{}:
		if len(val) == 0 {
			return ""
		}
		return NormalizeRef(val[0])
	case fmt.Stringer:
		return wellFormedID(val.String())
	default:
		return ""
	}
}

func wellFormedID(s string) string {
	s = core.CleanString(s)
	if _, err := uuid.Parse(s); err != nil {
		return ""
	}
	return s
}
