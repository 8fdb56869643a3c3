package services

import (
	"errors"
	"fmt"

	"feedpost/app/models"
	"feedpost/app/repositories"

	"go.uber.org/zap"
)

// ErrInvalidPost wraps validation failures of host-supplied posts.
var ErrInvalidPost = errors.New("invalid post")

// PostService handles the host-supplied posts of the feed
type PostService struct {
	postRepo  repositories.PostRepository
	instances repositories.InstanceRepository
	logger    *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, instances repositories.InstanceRepository, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{
		postRepo:  postRepo,
		instances: instances,
		logger:    logger,
	}
}

// SavePost validates and stores a post under its own id
func (s *PostService) SavePost(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPost, err)
	}
	if err := s.postRepo.Save(post); err != nil {
		return fmt.Errorf("saving post %d: %w", post.ID, err)
	}
	return nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}
	return post, nil
}

// ListPosts retrieves a paginated list of posts
func (s *PostService) ListPosts(page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	offset := (page - 1) * perPage
	posts, err := s.postRepo.List(perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// DeletePost deletes a post and unmounts every card showing it
func (s *PostService) DeletePost(id int) error {
	if err := s.postRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}
	n := s.instances.UnmountPost(id)
	s.logger.Info("post deleted", zap.Int("post_id", id), zap.Int("unmounted", n))
	return nil
}

// Seed stores every post. All posts are validated first, so an invalid
// seed stores nothing.
func (s *PostService) Seed(posts []*models.Post) (int, error) {
	for i, post := range posts {
		if err := post.Validate(); err != nil {
			return 0, fmt.Errorf("seeding post #%d: %w: %w", i+1, ErrInvalidPost, err)
		}
	}
	for i, post := range posts {
		if err := s.postRepo.Save(post); err != nil {
			return i, fmt.Errorf("seeding post #%d: %w", i+1, err)
		}
	}
	s.logger.Info("posts seeded", zap.Int("count", len(posts)))
	return len(posts), nil
}

// AllPosts returns every post in id order
func (s *PostService) AllPosts() ([]*models.Post, error) {
	const batch = 100
	var all []*models.Post
	for page := 1; ; page++ {
		posts, err := s.ListPosts(page, batch)
		if err != nil {
			return nil, err
		}
		all = append(all, posts...)
		if len(posts) < batch {
			return all, nil
		}
	}
}
