package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFavoriteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle the favorite flag of a post",
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

			fav, err := favs.Toggle(ctx, id)
			if err != nil {
				return fmt.Errorf("toggle favorite %d: %w", id, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "post %d favorite=%t\n", id, fav)
			return err
		},
	}
}
