package models

import "time"

// Author is the person a post is attributed to.
type Author struct {
	Name      string `json:"name" yaml:"name" validate:"required,max=100"`
	Role      string `json:"role" yaml:"role" validate:"max=100"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url" validate:"required"`
}

// ContentLine is one line of a post body.
type ContentLine struct {
	Kind ContentKind `json:"type" yaml:"type" validate:"required"`
	Text string      `json:"content" yaml:"content" validate:"required"`
}

// Post represents a feed post supplied by the host application. The ID is
// chosen by the host and only used to build stable display keys and URLs.
type Post struct {
	ID          int           `json:"id" yaml:"id" validate:"gt=0"`
	Author      Author        `json:"author" yaml:"author"`
	Content     []ContentLine `json:"content" yaml:"content" validate:"required,min=1,dive"`
	PublishedAt time.Time     `json:"published_at" yaml:"published_at" validate:"required"`
}

// CommentForm is the payload of a comment submission.
type CommentForm struct {
	Comment string `json:"comment" validate:"required"`
}
