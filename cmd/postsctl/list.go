package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/views"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, "")
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "List posts whose title contains term (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args[0])
		},
	}
}

func runList(cmd *cobra.Command, opts *options, term string) error {
	ctx, cancel := opts.context(cmd)
	defer cancel()

	favs, err := opts.openFavorites(ctx)
	if err != nil {
		return err
	}
	defer favs.Close()

	c := opts.client()
	v := views.NewListView(c,
		views.WithProfiles(c),
		views.WithListFavorites(favs),
		views.WithListLogger(opts.logger),
		views.WithLookupConcurrency(opts.concurrency),
	)
	defer v.Unmount()

	v.Search(term)
	if err := v.Mount(ctx); err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	return printList(cmd.OutOrStdout(), v.Snapshot())
}

func printList(out io.Writer, st views.ListState) error {
	if len(st.Posts) == 0 {
		_, err := fmt.Fprintln(out, "no posts")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tFAV")
	for _, p := range st.Posts {
		mark := ""
		if st.Favorites[p.ID] {
			mark = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.Author, mark)
	}
	return w.Flush()
}
