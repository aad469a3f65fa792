// Package favorites keeps a per-post favorite flag in durable key/value storage.
//
// Each post has its own key, isFavorite_<id>, holding "true" or "false". A key
// that was never written reads as false.
package favorites

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// KeyPrefix prefixes every favorite key.
const KeyPrefix = "isFavorite_"

// KV is the durable storage behind Store.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Key returns the storage key for a post's flag.
func Key(postID int) string {
	return KeyPrefix + strconv.Itoa(postID)
}

// Store reads and writes favorite flags.
type Store struct {
	kv KV
	mu sync.Mutex
}

// New wraps kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// IsFavorite reports the flag for postID, false when never set.
func (s *Store) IsFavorite(ctx context.Context, postID int) (bool, error) {
	v, ok, err := s.kv.Get(ctx, Key(postID))
	if err != nil {
		return false, fmt.Errorf("read favorite %d: %w", postID, err)
	}
	return ok && v == "true", nil
}

// Set stores the flag for postID.
func (s *Store) Set(ctx context.Context, postID int, favorite bool) error {
	if err := s.kv.Set(ctx, Key(postID), strconv.FormatBool(favorite)); err != nil {
		return fmt.Errorf("write favorite %d: %w", postID, err)
	}
	return nil
}

// Toggle flips the flag for postID and returns the new value.
func (s *Store) Toggle(ctx context.Context, postID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.IsFavorite(ctx, postID)
	if err != nil {
		return false, err
	}
	next := !current
	if err := s.Set(ctx, postID, next); err != nil {
		return current, err
	}
	return next, nil
}

// Close closes the underlying storage.
func (s *Store) Close() error {
	return s.kv.Close()
}
