package mock

import (
	"sort"
	"sync"

	"feedpost/app/models"
	"feedpost/app/repositories"
)

// PostRepository is an in-memory PostRepository for tests.
type PostRepository struct {
	posts map[int]*models.Post
	mutex sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[int]*models.Post),
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.Post)
}

func (m *PostRepository) Save(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *post
	return &out, nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) List(limit, offset int) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]int, 0, len(m.posts))
	for id := range m.posts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var posts []*models.Post
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(posts) >= limit {
			break
		}
		out := *m.posts[id]
		posts = append(posts, &out)
	}
	return posts, nil
}

var _ repositories.PostRepository = (*PostRepository)(nil)
