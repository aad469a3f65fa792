package views

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

// ListState is a copy of what the list screen renders.
type ListState struct {
	Status    Status
	Err       error
	Term      string
	Posts     []models.Post // posts matching Term
	Favorites map[int]bool
}

// ListView loads all posts once, filters them by title and tracks a
// favorite flag per post.
type ListView struct {
	posts       PostLister
	profiles    ProfileGetter
	favs        FavoriteStore
	logger      *zap.Logger
	concurrency int

	mu        sync.Mutex
	life      lifecycle
	status    Status
	err       error
	term      string
	all       []models.Post
	filtered  []models.Post
	favorites map[int]bool
}

type ListOption func(*ListView)

// WithProfiles enables author enrichment after the posts load.
func WithProfiles(p ProfileGetter) ListOption { return func(v *ListView) { v.profiles = p } }

// WithListFavorites persists favorite flags through fs.
func WithListFavorites(fs FavoriteStore) ListOption { return func(v *ListView) { v.favs = fs } }

func WithListLogger(l *zap.Logger) ListOption { return func(v *ListView) { v.logger = l } }

// WithLookupConcurrency bounds parallel profile lookups.
func WithLookupConcurrency(n int) ListOption { return func(v *ListView) { v.concurrency = n } }

func NewListView(posts PostLister, opts ...ListOption) *ListView {
	v := &ListView{
		posts:       posts,
		logger:      zap.NewNop(),
		concurrency: DefaultLookupConcurrency,
		favorites:   map[int]bool{},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Mount fetches the posts, shows them, then fills in author names.
// It returns ErrStale if a later Mount or Unmount took over meanwhile.
func (v *ListView) Mount(ctx context.Context) error {
	v.mu.Lock()
	ctx, gen := v.life.begin(ctx)
	v.status, v.err = Loading, nil
	v.mu.Unlock()

	posts, err := v.posts.ListPosts(ctx)
	if err != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		if !v.life.current(gen) {
			return ErrStale
		}
		v.status, v.err = Failed, err
		v.logger.Warn("load posts failed", zap.Error(err))
		return err
	}
	favs := v.loadFavorites(ctx, posts)

	v.mu.Lock()
	if !v.life.current(gen) {
		v.mu.Unlock()
		return ErrStale
	}
	v.all = posts
	v.filtered = FilterByTitle(posts, v.term)
	v.favorites = favs
	v.status = Ready
	v.mu.Unlock()

	if v.profiles == nil {
		return nil
	}
	names := ResolveAuthors(ctx, v.profiles, posts, v.concurrency, v.logger)
	if len(names) == 0 {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.life.current(gen) {
		return ErrStale
	}
	v.all = withAuthors(v.all, names)
	v.filtered = withAuthors(v.filtered, names)
	return nil
}

// Unmount cancels in-flight work and drops any late result.
func (v *ListView) Unmount() {
	v.mu.Lock()
	v.life.end()
	v.mu.Unlock()
}

// Search narrows the shown posts to titles containing term.
func (v *ListView) Search(term string) []models.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.term = term
	v.filtered = FilterByTitle(v.all, term)
	return append([]models.Post(nil), v.filtered...)
}

func (v *ListView) IsFavorite(postID int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.favorites[postID]
}

// ToggleFavorite flips the flag for postID and persists it. It returns
// ErrNotReady until the flags have loaded. On a persistence error the
// shown flag is left unchanged.
func (v *ListView) ToggleFavorite(ctx context.Context, postID int) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status != Ready {
		return v.favorites[postID], ErrNotReady
	}
	next := !v.favorites[postID]
	if v.favs != nil {
		if err := v.favs.Set(ctx, postID, next); err != nil {
			return !next, err
		}
	}
	v.favorites[postID] = next
	return next, nil
}

func (v *ListView) Snapshot() ListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	favs := make(map[int]bool, len(v.favorites))
	for k, f := range v.favorites {
		favs[k] = f
	}
	return ListState{
		Status:    v.status,
		Err:       v.err,
		Term:      v.term,
		Posts:     append([]models.Post(nil), v.filtered...),
		Favorites: favs,
	}
}

func (v *ListView) loadFavorites(ctx context.Context, posts []models.Post) map[int]bool {
	out := make(map[int]bool, len(posts))
	if v.favs == nil {
		return out
	}
	for _, p := range posts {
		fav, err := v.favs.IsFavorite(ctx, p.ID)
		if err != nil {
			v.logger.Warn("read favorite failed", zap.Int("post_id", p.ID), zap.Error(err))
			continue
		}
		out[p.ID] = fav
	}
	return out
}
