package repositories

import (
	"sync"
	"time"

	"feedpost/app/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// InstanceKey identifies one mounted post card: a browser session looking
// at one post.
type InstanceKey struct {
	Session string
	PostID  int
}

// Instance is the local state of one mounted post card. All access to the
// comment box goes through Update or Snapshot, which serialize it.
type Instance struct {
	mu        sync.Mutex
	box       models.CommentBox
	mountedAt time.Time
}

// Update applies fn to the comment box and returns the resulting state.
func (i *Instance) Update(fn func(b *models.CommentBox)) models.CommentBoxState {
	i.mu.Lock()
	defer i.mu.Unlock()
	fn(&i.box)
	return i.box.Snapshot()
}

// Snapshot returns a copy of the current state.
func (i *Instance) Snapshot() models.CommentBoxState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.box.Snapshot()
}

// MountedAt returns when the instance was created.
func (i *Instance) MountedAt() time.Time {
	return i.mountedAt
}

// InstanceStore keeps mounted instances in memory. Instances idle for
// longer than the ttl, or pushed out by capacity, are unmounted and their
// comments are gone.
type InstanceStore struct {
	mu     sync.Mutex
	cache  *expirable.LRU[InstanceKey, *Instance]
	logger *zap.Logger
}

// NewInstanceStore creates a store holding at most capacity instances.
// A zero ttl keeps instances until they are pushed out or unmounted.
func NewInstanceStore(capacity int, ttl time.Duration, logger *zap.Logger) *InstanceStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &InstanceStore{logger: logger.Named("instances")}
	s.cache = expirable.NewLRU[InstanceKey, *Instance](capacity, s.onEvict, ttl)
	return s
}

func (s *InstanceStore) onEvict(key InstanceKey, inst *Instance) {
	s.logger.Debug("instance unmounted",
		zap.String("session", key.Session),
		zap.Int("post_id", key.PostID),
		zap.Duration("age", time.Since(inst.mountedAt)),
	)
}

// Mount returns the instance for key, creating it on first use. Mounting an
// existing instance resets its idle timer.
func (s *InstanceStore) Mount(key InstanceKey) *Instance {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.cache.Get(key)
	if !ok {
		inst = &Instance{mountedAt: time.Now()}
		s.logger.Debug("instance mounted", zap.String("session", key.Session), zap.Int("post_id", key.PostID))
	}
	s.cache.Add(key, inst)
	return inst
}

// Apply mounts the instance for key and applies fn to its comment box in one
// step. The instance is put back after fn runs, so an expiry that lands
// while fn is running does not lose the change.
func (s *InstanceStore) Apply(key InstanceKey, fn func(b *models.CommentBox)) models.CommentBoxState {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.cache.Get(key)
	if !ok {
		inst = &Instance{mountedAt: time.Now()}
		s.logger.Debug("instance mounted", zap.String("session", key.Session), zap.Int("post_id", key.PostID))
	}
	state := inst.Update(fn)
	s.cache.Add(key, inst)
	return state
}

// Lookup returns the instance for key without creating it.
func (s *InstanceStore) Lookup(key InstanceKey) (*Instance, bool) {
	return s.cache.Get(key)
}

// Unmount drops the instance for key.
func (s *InstanceStore) Unmount(key InstanceKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(key)
}

// UnmountPost drops every instance of a post and reports how many were dropped.
func (s *InstanceStore) UnmountPost(postID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, key := range s.cache.Keys() {
		if key.PostID == postID && s.cache.Remove(key) {
			n++
		}
	}
	return n
}

// Len returns the number of mounted instances.
func (s *InstanceStore) Len() int {
	return s.cache.Len()
}
