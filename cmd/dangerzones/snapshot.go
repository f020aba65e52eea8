package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the latest snapshot once and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, _, svc, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.APITimeout)
			defer cancel()

			data := svc.GetDangerData(ctx)
			if data == nil {
				return errors.New("snapshot unavailable (check logs/config)")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(data)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
