// Package store holds post records behind a list/create contract.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/config"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("post store closed")

// PostStore lists and appends posts. Ids are assigned by the store as the
// last post's id plus one, starting at 1 when the store is empty.
type PostStore interface {
	// List returns every post in insertion order.
	List(ctx context.Context) ([]models.Post, error)
	// Create appends a post with the next id and returns it.
	Create(ctx context.Context, title, body string) (models.Post, error)
	// Close releases the store's resources.
	Close() error
}

// SeedPosts returns the three posts a fresh store starts with.
func SeedPosts() []models.Post {
	return []models.Post{
		{
			ID:    1,
			Title: "My First Post",
			Body:  "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed euismod, urna vel bibendum bibendum, nisl velit bibendum sapien, vel bibendum sapien elit vel nunc. Sed euismod, urna vel bibendum bibendum, nisl velit bibendum sapien, vel bibendum sapien elit vel nunc.",
		},
		{
			ID:    2,
			Title: "My Second Post",
			Body:  "Pellentesque habitant morbi tristique senectus et netus et malesuada fames ac turpis egestas. Sed euismod, urna vel bibendum bibendum, nisl velit bibendum sapien, vel bibendum sapien elit vel nunc. Sed euismod, urna vel bibendum bibendum, nisl velit bibendum sapien, vel bibendum sapien elit vel nunc.",
		},
		{
			ID:    3,
			Title: "My Third Post",
			Body:  "Vestibulum ante ipsum primis in faucibus orci luctus et ultrices posuere cubilia curae; Sed euismod, urna vel bibendum bibendum, nisl velit bibendum sapien, vel bibendum sapien elit vel nunc. Sed euismod, urna vel bibendum bibendum, nisl velit bibendum sapien, vel bibendum sapien elit vel nunc.",
		},
	}
}

// Open builds the store selected by cfg.StoreDriver.
func Open(cfg config.AppConfig) (PostStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory, "":
		if cfg.StoreSeed {
			return NewMemoryStore(SeedPosts()...), nil
		}
		return NewMemoryStore(), nil
	case config.DriverMySQL, config.DriverPostgres, config.DriverSQLite:
		db, err := config.OpenDatabase(cfg, &models.Post{})
		if err != nil {
			return nil, err
		}
		s := NewGormStore(db)
		if cfg.StoreSeed {
			if err := s.Seed(context.Background(), SeedPosts()); err != nil {
				_ = s.Close()
				return nil, err
			}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func nextID(last []models.Post) int {
	if len(last) == 0 {
		return 1
	}
	return last[len(last)-1].ID + 1
}
