// Package views holds the render state of the post list and post detail
// screens, independent of any UI toolkit.
package views

import (
	"context"
	"errors"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

var (
	// ErrStale is returned by Mount when a newer Mount or an Unmount superseded it.
	ErrStale = errors.New("view: result superseded")
	// ErrNotReady is returned by actions that need loaded data.
	ErrNotReady = errors.New("view: not ready")
)

// Status is the render state of a view.
type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// PostLister fetches all posts.
type PostLister interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
}

// ProfileGetter resolves an author profile.
type ProfileGetter interface {
	GetProfile(ctx context.Context, id int) (models.Profile, error)
}

// PostDetailer fetches one post and its comments.
type PostDetailer interface {
	GetPost(ctx context.Context, id int) (models.Post, error)
	ListComments(ctx context.Context, postID int) ([]models.Comment, error)
}

// FavoriteStore persists per-post favorite flags.
type FavoriteStore interface {
	IsFavorite(ctx context.Context, postID int) (bool, error)
	Set(ctx context.Context, postID int, favorite bool) error
}

// lifecycle stamps each mount with a generation so late results from an
// older mount can be recognised and dropped. Callers hold the view's mutex.
type lifecycle struct {
	gen    uint64
	cancel context.CancelFunc
}

func (l *lifecycle) begin(parent context.Context) (context.Context, uint64) {
	l.end()
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	return ctx, l.gen
}

func (l *lifecycle) end() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}

func (l *lifecycle) current(gen uint64) bool {
	return l.gen == gen
}
