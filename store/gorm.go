package store

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

// GormStore keeps posts in a SQL table. Ids follow the same last-plus-one
// rule as MemoryStore; writers in this process are serialized, writers in
// other processes are not.
type GormStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewGormStore wraps an opened and migrated database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Seed inserts posts when the table is empty.
func (s *GormStore) Seed(ctx context.Context, posts []models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if count > 0 || len(posts) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&posts).Error; err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *GormStore) Create(ctx context.Context, title, body string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last []models.Post
		if err := tx.Order("id DESC").Limit(1).Find(&last).Error; err != nil {
			return err
		}
		post = models.Post{ID: nextID(last), Title: title, Body: body}
		return tx.Create(&post).Error
	})
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
