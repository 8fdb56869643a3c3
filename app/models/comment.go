package models

// DraftState is the state of the comment editor.
type DraftState int

const (
	// DraftEmpty means the draft has no text and submission is disabled.
	DraftEmpty DraftState = iota
	// DraftEditing means the draft holds text that can be submitted.
	DraftEditing
)

func (s DraftState) String() string {
	if s == DraftEditing {
		return "editing"
	}
	return "empty"
}

// MarshalText encodes the state by name.
func (s DraftState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CommentBox holds the local comment state of one mounted post: the draft
// bound to the input control and the submitted comments in display order.
// It is not safe for concurrent use; callers serialize access.
type CommentBox struct {
	draft    string
	comments []string
}

// CommentBoxState is a copy of a CommentBox taken for rendering.
type CommentBoxState struct {
	Draft    string     `json:"draft"`
	State    DraftState `json:"state"`
	Comments []string   `json:"comments"`
}

// SetDraft replaces the draft text.
func (b *CommentBox) SetDraft(text string) {
	b.draft = text
}

// Draft returns the current draft text.
func (b *CommentBox) Draft() string {
	return b.draft
}

// State reports whether the draft is empty or being edited.
func (b *CommentBox) State() DraftState {
	if len(b.draft) == 0 {
		return DraftEmpty
	}
	return DraftEditing
}

// CanSubmit reports whether Submit would commit the draft.
func (b *CommentBox) CanSubmit() bool {
	return b.State() == DraftEditing
}

// Submit appends the draft to the comment list and clears it. An empty
// draft is not submitted and the list is left untouched.
func (b *CommentBox) Submit() bool {
	if !b.CanSubmit() {
		return false
	}
	b.comments = append(b.comments, b.draft)
	b.draft = ""
	return true
}

// Delete removes every comment equal to value. Comments with identical text
// cannot be told apart, so they are removed together. The draft is untouched.
func (b *CommentBox) Delete(value string) int {
	kept := b.comments[:0]
	removed := 0
	for _, c := range b.comments {
		if c == value {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	b.comments = kept
	return removed
}

// Comments returns a copy of the comment list.
func (b *CommentBox) Comments() []string {
	out := make([]string, len(b.comments))
	copy(out, b.comments)
	return out
}

// Snapshot copies the box for rendering.
func (b *CommentBox) Snapshot() CommentBoxState {
	return CommentBoxState{
		Draft:    b.draft,
		State:    b.State(),
		Comments: b.Comments(),
	}
}
