package views

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

// DetailState is a copy of what the detail screen renders.
type DetailState struct {
	Status      Status
	Err         error
	PostID      int
	Post        models.Post
	Comments    []models.Comment
	CommentsErr error
	Favorite    bool
}

// DetailView shows one post with its comments and favorite flag.
type DetailView struct {
	src    PostDetailer
	favs   FavoriteStore
	logger *zap.Logger

	mu          sync.Mutex
	life        lifecycle
	mounted     bool
	favLoaded   bool
	status      Status
	err         error
	postID      int
	post        models.Post
	comments    []models.Comment
	commentsErr error
	favorite    bool
}

type DetailOption func(*DetailView)

func WithDetailFavorites(fs FavoriteStore) DetailOption { return func(v *DetailView) { v.favs = fs } }

func WithDetailLogger(l *zap.Logger) DetailOption { return func(v *DetailView) { v.logger = l } }

func NewDetailView(src PostDetailer, opts ...DetailOption) *DetailView {
	v := &DetailView{src: src, logger: zap.NewNop()}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Mount loads postID. A post failure leaves the view Failed; a comments
// failure still shows the post, with CommentsErr set.
func (v *DetailView) Mount(ctx context.Context, postID int) error {
	v.mu.Lock()
	ctx, gen := v.life.begin(ctx)
	v.mounted = true
	v.postID = postID
	v.status, v.err = Loading, nil
	v.post, v.comments, v.commentsErr = models.Post{}, nil, nil
	v.favorite, v.favLoaded = false, false
	v.mu.Unlock()

	favorite := false
	if v.favs != nil {
		f, err := v.favs.IsFavorite(ctx, postID)
		if err != nil {
			v.logger.Warn("read favorite failed", zap.Int("post_id", postID), zap.Error(err))
		}
		favorite = f
	}

	post, err := v.src.GetPost(ctx, postID)
	if err != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		if !v.life.current(gen) {
			return ErrStale
		}
		v.status, v.err = Failed, err
		v.favorite, v.favLoaded = favorite, true
		v.logger.Warn("load post failed", zap.Int("post_id", postID), zap.Error(err))
		return err
	}

	comments, cerr := v.src.ListComments(ctx, postID)
	if cerr != nil {
		v.logger.Warn("load comments failed", zap.Int("post_id", postID), zap.Error(cerr))
		comments = nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.life.current(gen) {
		return ErrStale
	}
	v.post = post
	v.comments = comments
	v.commentsErr = cerr
	v.favorite, v.favLoaded = favorite, true
	v.status = Ready
	return nil
}

// Unmount cancels in-flight work and drops any late result.
func (v *DetailView) Unmount() {
	v.mu.Lock()
	v.life.end()
	v.mounted = false
	v.mu.Unlock()
}

// AddComment appends a comment to the shown list. It is not sent anywhere.
func (v *DetailView) AddComment(text, author string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status != Ready {
		return ErrNotReady
	}
	v.comments = append(v.comments, models.Comment{Text: text, Author: author})
	return nil
}

// ToggleFavorite flips the flag of the mounted post and persists it. It
// returns ErrNotReady until the stored flag has been read.
func (v *DetailView) ToggleFavorite(ctx context.Context) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted || !v.favLoaded {
		return false, ErrNotReady
	}
	next := !v.favorite
	if v.favs != nil {
		if err := v.favs.Set(ctx, v.postID, next); err != nil {
			return v.favorite, err
		}
	}
	v.favorite = next
	return next, nil
}

func (v *DetailView) Snapshot() DetailState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return DetailState{
		Status:      v.status,
		Err:         v.err,
		PostID:      v.postID,
		Post:        v.post,
		Comments:    append([]models.Comment(nil), v.comments...),
		CommentsErr: v.commentsErr,
		Favorite:    v.favorite,
	}
}
