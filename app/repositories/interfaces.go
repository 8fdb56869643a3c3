package repositories

import "feedpost/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Save(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List(limit, offset int) ([]*models.Post, error)
	Delete(id int) error
}

// InstanceRepository holds the comment state of mounted post cards.
type InstanceRepository interface {
	Mount(key InstanceKey) *Instance
	Apply(key InstanceKey, fn func(b *models.CommentBox)) models.CommentBoxState
	Lookup(key InstanceKey) (*Instance, bool)
	Unmount(key InstanceKey) bool
	UnmountPost(postID int) int
	Len() int
}
