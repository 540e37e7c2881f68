package main

import (
	"github.com/spf13/cobra"

	"campus_market/internal/shared"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the aggregated home-screen payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := shared.NewService(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		d, err := svc.Dashboard(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), d)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
