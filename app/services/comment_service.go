package services

import (
	"errors"
	"fmt"

	"feedpost/app/models"
	"feedpost/app/repositories"
)

// ErrEmptyComment is returned when a comment is submitted without text.
// The comment list is left unchanged.
var ErrEmptyComment = errors.New("empty comment")

// CommentService drives the comment box of mounted post cards
type CommentService struct {
	postRepo  repositories.PostRepository
	instances repositories.InstanceRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(postRepo repositories.PostRepository, instances repositories.InstanceRepository) *CommentService {
	return &CommentService{
		postRepo:  postRepo,
		instances: instances,
	}
}

// apply runs fn on the card of postID for session, mounting it if needed
func (s *CommentService) apply(session string, postID int, fn func(b *models.CommentBox)) (models.CommentBoxState, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return models.CommentBoxState{}, fmt.Errorf("post %d: %w", postID, err)
	}
	return s.instances.Apply(repositories.InstanceKey{Session: session, PostID: postID}, fn), nil
}

// State mounts the card of postID for session and returns its state
func (s *CommentService) State(session string, postID int) (models.CommentBoxState, error) {
	return s.apply(session, postID, func(b *models.CommentBox) {})
}

// SetDraft replaces the draft text
func (s *CommentService) SetDraft(session string, postID int, text string) (models.CommentBoxState, error) {
	return s.apply(session, postID, func(b *models.CommentBox) {
		b.SetDraft(text)
	})
}

// Submit takes text as the draft and commits it. Empty text leaves the
// list unchanged and returns ErrEmptyComment wrapping the validation error.
func (s *CommentService) Submit(session string, postID int, text string) (models.CommentBoxState, error) {
	form := &models.CommentForm{Comment: text}
	verr := form.Validate()
	state, err := s.apply(session, postID, func(b *models.CommentBox) {
		b.SetDraft(text)
		b.Submit()
	})
	if err != nil {
		return state, err
	}
	if verr != nil {
		return state, fmt.Errorf("%w: %w", ErrEmptyComment, verr)
	}
	return state, nil
}

// Delete removes every comment equal to value
func (s *CommentService) Delete(session string, postID int, value string) (models.CommentBoxState, error) {
	return s.apply(session, postID, func(b *models.CommentBox) {
		b.Delete(value)
	})
}

// Unmount drops the card state of postID for session
func (s *CommentService) Unmount(session string, postID int) bool {
	return s.instances.Unmount(repositories.InstanceKey{Session: session, PostID: postID})
}
