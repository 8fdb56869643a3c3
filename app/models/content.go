package models

import "fmt"

// ContentKind is the closed set of line kinds a post body can hold.
type ContentKind int

const (
	_ ContentKind = iota
	Paragraph
	Link
)

var contentKindNames = map[ContentKind]string{
	Paragraph: "paragraph",
	Link:      "link",
}

func (k ContentKind) String() string {
	if name, ok := contentKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ContentKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k ContentKind) MarshalText() ([]byte, error) {
	name, ok := contentKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown content kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a kind by name, rejecting anything outside the set.
func (k *ContentKind) UnmarshalText(text []byte) error {
	for kind, name := range contentKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown content kind %q", string(text))
}

// Key returns the display key of the line within the given post.
func (l ContentLine) Key(postID int) string {
	return fmt.Sprintf("post-%d-line-%s", postID, l.Text)
}
