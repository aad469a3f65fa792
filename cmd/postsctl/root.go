package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/client"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/favorites"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/views"
)

type options struct {
	api         string
	profilesAPI string
	favorites   string
	redis       string
	timeout     time.Duration
	concurrency int
	verbose     bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "postsctl",
		Short:         "Browse, search and create posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				opts.logger = zap.NewNop()
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.api, "api", envOr("POSTS_API", client.DefaultBaseURL), "post service base URL")
	f.StringVar(&opts.profilesAPI, "profiles-api", os.Getenv("POSTS_PROFILES_API"), "profile service base URL (defaults to --api)")
	f.StringVar(&opts.favorites, "favorites", defaultFavoritesPath(), "SQLite file holding favorite flags")
	f.StringVar(&opts.redis, "redis", "", "keep favorites in Redis at this address instead of SQLite")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "overall deadline per command")
	f.IntVar(&opts.concurrency, "concurrency", views.DefaultLookupConcurrency, "parallel author lookups")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		newListCmd(opts),
		newSearchCmd(opts),
		newCreateCmd(opts),
		newShowCmd(opts),
		newFavoriteCmd(opts),
	)
	return cmd
}

func (o *options) client() *client.Client {
	return client.New(o.api, client.WithProfilesURL(o.profilesAPI), client.WithLogger(o.logger))
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

func (o *options) openFavorites(ctx context.Context) (*favorites.Store, error) {
	if o.redis != "" {
		kv, err := favorites.OpenRedis(ctx, favorites.RedisOptions{Addr: o.redis})
		if err != nil {
			return nil, err
		}
		return favorites.New(kv), nil
	}
	kv, err := favorites.OpenSQLite(o.favorites)
	if err != nil {
		return nil, err
	}
	return favorites.New(kv), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultFavoritesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".postsctl", "favorites.db")
	}
	return filepath.Join(home, ".postsctl", "favorites.db")
}
