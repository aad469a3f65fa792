package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd(opts *options) *cobra.Command {
	var title, body string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post and print the stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			post, err := opts.client().CreatePost(ctx, title, body)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(post)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&body, "body", "", "post body")
	return cmd
}
