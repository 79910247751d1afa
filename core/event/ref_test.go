package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	id1 = "0b7aa463-2f05-4b35-9bb3-3f38c4c54edb"
	id2 = "3a0c6fc3-93b8-4f8a-8f7c-9c3b25a4a3f7"
)

func TestNormalizeRef(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{name: "plain id", in: id1, want: id1},
		{name: "id with whitespace", in: "  " + id1 + " ", want: id1},
		{name: "malformed id", in: "not-a-uuid", want: ""},
		{name: "empty string", in: "", want: ""},
		{name: "object with id", in: map[string]interface{}{"id": id1}, want: id1},
		{name: "object with _id", in: map[string]interface{}{"_id": id1}, want: id1},
		{name: "object with member_id", in: map[string]interface{}{"member_id": id1}, want: id1},
		{name: "object key precedence", in: map[string]interface{}{"id": id1, "member_id": id2}, want: id1},
		{name: "object without id field", in: map[string]interface{}{"name": "Kofi"}, want: ""},
		{name: "object with non-string id", in: map[string]interface{}{"id": 42.0}, want: ""},
		{name: "collection of ids", in: []interface{}{id1, id2}, want: id1},
		{name: "collection of objects", in: []interface{}{map[string]interface{}{"id": id2}}, want: id2},
		{name: "empty collection", in: []interface{}{}, want: ""},
		{name: "nested collection", in: []interface{}{[]interface{}{id1}}, want: id1},
		{name: "number", in: 42.0, want: ""},
		{name: "bool", in: true, want: ""},
		{name: "nil", in: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRef(tt.in))
		})
	}
}

func TestMemberRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "scalar id", in: `"` + id1 + `"`, want: id1},
		{name: "embedded object", in: `{"_id":"` + id1 + `","name":"Kofi"}`, want: id1},
		{name: "collection", in: `["` + id2 + `"]`, want: id2},
		{name: "null", in: `null`, want: ""},
		{name: "garbage", in: `{{{`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref MemberRef
			err := json.Unmarshal([]byte(tt.in), &ref)
			if tt.in != `{{{` {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, ref.ID)
		})
	}
}

func TestEvent_AttendeeIDs(t *testing.T) {
	e := Event{
		Attendance: []Attendance{
			{Member: MemberRef{ID: id1}},
			{Member: MemberRef{ID: id1}}, // duplicate check-in
			{Member: MemberRef{}},        // unresolvable ref
			{Member: MemberRef{ID: id2}},
		},
	}
	assert.Equal(t, []string{id1, id2}, e.AttendeeIDs())
}
