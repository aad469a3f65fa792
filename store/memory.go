package store

import (
	"context"
	"sync"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

// MemoryStore keeps posts in process memory. Creates are serialized so that
// reading the last id and appending happen as one step.
type MemoryStore struct {
	mu     sync.RWMutex
	posts  []models.Post
	closed bool
}

// NewMemoryStore returns a store holding a copy of seed.
func NewMemoryStore(seed ...models.Post) *MemoryStore {
	posts := make([]models.Post, len(seed))
	copy(posts, seed)
	return &MemoryStore{posts: posts}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, title, body string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Post{}, ErrStoreClosed
	}
	post := models.Post{ID: nextID(s.posts), Title: title, Body: body}
	s.posts = append(s.posts, post)
	return post, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
