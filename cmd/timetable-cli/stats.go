package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print problem statistics without scheduling",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(opts.file)
			if err != nil {
				return err
			}
			svc, logr, err := newService()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			stats, err := svc.Stats(cmd.Context(), req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
}
