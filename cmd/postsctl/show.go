package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/views"
)

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			favs, err := opts.openFavorites(ctx)
			if err != nil {
				return err
			}
			defer favs.Close()

			v := views.NewDetailView(opts.client(),
				views.WithDetailFavorites(favs),
				views.WithDetailLogger(opts.logger),
			)
			defer v.Unmount()
			if err := v.Mount(ctx, id); err != nil {
				return fmt.Errorf("load post %d: %w", id, err)
			}
			return printDetail(cmd.OutOrStdout(), v.Snapshot())
		},
	}
}

func printDetail(out io.Writer, st views.DetailState) error {
	fav := ""
	if st.Favorite {
		fav = " *"
	}
	fmt.Fprintf(out, "#%d %s%s\n\n%s\n\n", st.Post.ID, st.Post.Title, fav, st.Post.Body)
	if st.CommentsErr != nil {
		_, err := fmt.Fprintf(out, "comments unavailable: %v\n", st.CommentsErr)
		return err
	}
	if len(st.Comments) == 0 {
		_, err := fmt.Fprintln(out, "no comments")
		return err
	}
	fmt.Fprintln(out, "Comments:")
	for _, c := range st.Comments {
		if c.Author != "" {
			fmt.Fprintf(out, "- %s (%s)\n", c.Text, c.Author)
			continue
		}
		fmt.Fprintf(out, "- %s\n", c.Text)
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}
