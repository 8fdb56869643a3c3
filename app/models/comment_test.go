package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func boxWith(comments ...string) *CommentBox {
	b := &CommentBox{}
	for _, c := range comments {
		b.SetDraft(c)
		b.Submit()
	}
	return b
}

func TestCommentBoxDraftState(t *testing.T) {
	b := &CommentBox{}
	assert.Equal(t, DraftEmpty, b.State())
	assert.False(t, b.CanSubmit())

	b.SetDraft("o")
	assert.Equal(t, DraftEditing, b.State())
	assert.True(t, b.CanSubmit())

	b.SetDraft("")
	assert.Equal(t, DraftEmpty, b.State())
}

func TestCommentBoxSubmit(t *testing.T) {
	t.Run("empty draft is not submitted", func(t *testing.T) {
		b := &CommentBox{}
		assert.False(t, b.Submit())
		assert.Empty(t, b.Comments())
		assert.Equal(t, "", b.Draft())
	})

	t.Run("draft is appended and cleared", func(t *testing.T) {
		b := &CommentBox{}
		b.SetDraft("nice post")
		assert.True(t, b.Submit())
		assert.Equal(t, []string{"nice post"}, b.Comments())
		assert.Equal(t, "", b.Draft())
		assert.Equal(t, DraftEmpty, b.State())
	})

	t.Run("appends after prior entries", func(t *testing.T) {
		for _, s := range []string{"x", "hello world", " ", "👋", "a"} {
			b := boxWith("a", "b")
			b.SetDraft(s)
			assert.True(t, b.Submit())
			want := []string{"a", "b", s}
			if diff := cmp.Diff(want, b.Comments()); diff != "" {
				t.Errorf("comments mismatch for %q (-want +got):\n%s", s, diff)
			}
			assert.Equal(t, "", b.Draft())
		}
	})

	t.Run("draft is not listed before submit", func(t *testing.T) {
		b := boxWith("a")
		b.SetDraft("pending")
		assert.NotContains(t, b.Comments(), "pending")
	})
}

func TestCommentBoxDelete(t *testing.T) {
	tests := []struct {
		name    string
		list    []string
		value   string
		want    []string
		removed int
	}{
		{name: "single match", list: []string{"a", "b"}, value: "a", want: []string{"b"}, removed: 1},
		{name: "duplicates removed together", list: []string{"a", "a", "b"}, value: "a", want: []string{"b"}, removed: 2},
		{name: "order preserved", list: []string{"c", "a", "b", "a", "d"}, value: "a", want: []string{"c", "b", "d"}, removed: 2},
		{name: "absent value", list: []string{"a", "b"}, value: "z", want: []string{"a", "b"}, removed: 0},
		{name: "empty list", list: nil, value: "a", want: []string{}, removed: 0},
		{name: "remove everything", list: []string{"a", "a"}, value: "a", want: []string{}, removed: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boxWith(tt.list...)
			b.SetDraft("draft")
			removed := b.Delete(tt.value)
			assert.Equal(t, tt.removed, removed)
			if diff := cmp.Diff(tt.want, b.Comments()); diff != "" {
				t.Errorf("comments mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, "draft", b.Draft())
		})
	}
}

func TestCommentBoxScenarios(t *testing.T) {
	t.Run("submit with empty draft", func(t *testing.T) {
		b := &CommentBox{}
		b.Submit()
		assert.Equal(t, []string{}, b.Comments())
		assert.Equal(t, "", b.Draft())
	})

	t.Run("submit nice post", func(t *testing.T) {
		b := &CommentBox{}
		b.SetDraft("nice post")
		b.Submit()
		assert.Equal(t, []string{"nice post"}, b.Comments())
		assert.Equal(t, "", b.Draft())
	})

	t.Run("delete a", func(t *testing.T) {
		b := boxWith("a", "b")
		b.Delete("a")
		assert.Equal(t, []string{"b"}, b.Comments())
	})

	t.Run("delete duplicated a", func(t *testing.T) {
		b := boxWith("a", "a", "b")
		b.Delete("a")
		assert.Equal(t, []string{"b"}, b.Comments())
	})
}

func TestCommentBoxSnapshotIsCopy(t *testing.T) {
	b := boxWith("a")
	b.SetDraft("d")
	snap := b.Snapshot()
	assert.Equal(t, CommentBoxState{Draft: "d", State: DraftEditing, Comments: []string{"a"}}, snap)

	snap.Comments[0] = "mutated"
	assert.Equal(t, []string{"a"}, b.Comments())
}
