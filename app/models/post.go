package models

import (
	"errors"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.PublishedAt.IsZero() {
		return errors.New("published_at cannot be zero")
	}

	return nil
}

// Validate checks that a comment submission carries text.
func (f *CommentForm) Validate() error {
	return validate.Struct(f)
}
