package committee

import "github.com/volatiletech/null/v8"

// Committee is a chapter committee. Read-only input to the standing engine.
type Committee struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	HeadID    null.String `json:"head_id,omitempty"`
	MemberIDs []string    `json:"member_ids"`
}

func (c Committee) HasMember(memberID string) bool {
	for _, id := range c.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}
