package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Build one news batch and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, os.Stderr)
			if err != nil {
				return err
			}

			items, err := a.service.Build(ctx)
			if err != nil {
				a.log.ErrorContext(ctx, "Failed to build news",
					"error", err)

				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			if err = enc.Encode(items); err != nil {
				return fmt.Errorf("encode news: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")

	return cmd
}
