package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestClassify(t *testing.T) {
	committeeID := null.StringFrom("7e2b9a8a-6f3e-4f44-9f43-0a2f2b9f0f10")

	tests := []struct {
		name   string
		event  Event
		want   Category
		wantOK bool
	}{
		{
			name:   "explicit category wins",
			event:  Event{Category: CategoryBrotherhood, Type: TypeChapter},
			want:   CategoryBrotherhood,
			wantOK: true,
		},
		{
			name:   "unrecognized category falls through to type",
			event:  Event{Category: "karaoke", Type: TypeChapter},
			want:   CategoryGeneralConference,
			wantOK: true,
		},
		{
			name:   "chapter type is a general conference",
			event:  Event{Type: TypeChapter},
			want:   CategoryGeneralConference,
			wantOK: true,
		},
		{
			name:   "meeting with committee",
			event:  Event{Type: TypeMeeting, CommitteeID: committeeID},
			want:   CategoryCommitteeMeeting,
			wantOK: true,
		},
		{
			name:  "meeting without committee is unclassified",
			event: Event{Type: TypeMeeting},
		},
		{
			name:  "plain event with no label is unclassified",
			event: Event{Type: TypeEvent},
		},
		{
			name:   "explicit category on committee meeting",
			event:  Event{Category: CategoryService, Type: TypeMeeting, CommitteeID: committeeID},
			want:   CategoryService,
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
