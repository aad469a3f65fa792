package views

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/utils"
)

// DefaultLookupConcurrency bounds parallel profile lookups.
const DefaultLookupConcurrency = 4

// ResolveAuthors looks up each distinct non-zero author id once, at most
// limit at a time, and returns id -> name for the lookups that succeeded.
// A failed lookup is logged and leaves that author out.
func ResolveAuthors(ctx context.Context, profiles ProfileGetter, posts []models.Post, limit int, logger *zap.Logger) map[int]string {
	ids := make([]int, 0, len(posts))
	for _, p := range posts {
		if p.AuthorID != 0 {
			ids = append(ids, p.AuthorID)
		}
	}
	ids = utils.Unique(ids)
	if logger == nil {
		logger = zap.NewNop()
	}
	if profiles == nil || len(ids) == 0 {
		return map[int]string{}
	}
	if limit <= 0 {
		limit = DefaultLookupConcurrency
	}

	var (
		mu    sync.Mutex
		names = make(map[int]string, len(ids))
		g     errgroup.Group
	)
	g.SetLimit(limit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			profile, err := profiles.GetProfile(ctx, id)
			if err != nil {
				logger.Warn("author lookup failed", zap.Int("author_id", id), zap.Error(err))
				return nil
			}
			if profile.ID != id {
				logger.Warn("author lookup returned another profile", zap.Int("author_id", id), zap.Int("profile_id", profile.ID))
				return nil
			}
			mu.Lock()
			names[id] = profile.Name
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return names
}

// withAuthors returns a copy of posts with Author filled from names.
func withAuthors(posts []models.Post, names map[int]string) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		if name, ok := names[p.AuthorID]; ok && p.AuthorID != 0 {
			p.Author = name
		}
		out[i] = p
	}
	return out
}
