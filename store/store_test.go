package store

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/config"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

type storeFactory func(t *testing.T, seed []models.Post) PostStore

func memoryFactory(t *testing.T, seed []models.Post) PostStore {
	return NewMemoryStore(seed...)
}

func sqliteFactory(t *testing.T, seed []models.Post) PostStore {
	t.Helper()
	cfg := config.AppConfig{
		StoreDriver: config.DriverSQLite,
		DatabaseURI: filepath.Join(t.TempDir(), "posts.db"),
		LogLevel:    "silent",
	}
	db, err := config.OpenDatabase(cfg, &models.Post{})
	require.NoError(t, err)
	s := NewGormStore(db)
	require.NoError(t, s.Seed(context.Background(), seed))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var factories = map[string]storeFactory{
	"memory": memoryFactory,
	"sqlite": sqliteFactory,
}

func TestStore_ListReturnsSeedInOrder(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			s := factory(t, SeedPosts())
			posts, err := s.List(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(SeedPosts(), posts); diff != "" {
				t.Fatalf("list mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_CreateAssignsNextID(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t, SeedPosts())

			created, err := s.Create(ctx, "X", "Y")
			require.NoError(t, err)
			assert.Equal(t, models.Post{ID: 4, Title: "X", Body: "Y"}, created)

			posts, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, posts, 4)
			assert.Equal(t, created, posts[3])
		})
	}
}

func TestStore_SequentialCreatesIncrementByOne(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t, SeedPosts())

			const n = 5
			for i := 0; i < n; i++ {
				created, err := s.Create(ctx, "T", "B")
				require.NoError(t, err)
				assert.Equal(t, 4+i, created.ID)
			}

			posts, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, posts, len(SeedPosts())+n)
			for i := 1; i < len(posts); i++ {
				assert.Equal(t, posts[i-1].ID+1, posts[i].ID)
			}
		})
	}
}

func TestStore_EmptyStoreStartsAtOne(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			s := factory(t, nil)
			created, err := s.Create(context.Background(), "first", "")
			require.NoError(t, err)
			assert.Equal(t, 1, created.ID)
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t, SeedPosts())
			created, err := s.Create(ctx, "T", "B")
			require.NoError(t, err)

			posts, err := s.List(ctx)
			require.NoError(t, err)
			assert.Contains(t, posts, created)
		})
	}
}

func TestStore_ConcurrentCreatesAreGapFree(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t, SeedPosts())

			const n = 32
			ids := make([]int, n)
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					created, err := s.Create(ctx, "concurrent", "body")
					assert.NoError(t, err)
					ids[i] = created.ID
				}(i)
			}
			wg.Wait()

			sort.Ints(ids)
			for i, id := range ids {
				assert.Equal(t, 4+i, id)
			}
		})
	}
}

func TestMemoryStore_ListIsACopy(t *testing.T) {
	s := NewMemoryStore(SeedPosts()...)
	posts, err := s.List(context.Background())
	require.NoError(t, err)
	posts[0].Title = "mutated"

	again, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "My First Post", again[0].Title)
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	_, err := s.List(context.Background())
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.Create(context.Background(), "t", "b")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestGormStore_SeedSkipsNonEmptyTable(t *testing.T) {
	ctx := context.Background()
	s := sqliteFactory(t, SeedPosts()).(*GormStore)

	require.NoError(t, s.Seed(ctx, SeedPosts()))
	posts, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestOpen(t *testing.T) {
	s, err := Open(config.AppConfig{StoreDriver: config.DriverMemory, StoreSeed: true})
	require.NoError(t, err)
	posts, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	s, err = Open(config.AppConfig{StoreDriver: config.DriverMemory})
	require.NoError(t, err)
	posts, err = s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)

	s, err = Open(config.AppConfig{
		StoreDriver: config.DriverSQLite,
		StoreSeed:   true,
		DatabaseURI: filepath.Join(t.TempDir(), "open.db"),
		LogLevel:    "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	posts, err = s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	_, err = Open(config.AppConfig{StoreDriver: "etcd"})
	assert.Error(t, err)
}
