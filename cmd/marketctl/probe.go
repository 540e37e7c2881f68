package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"campus_market/internal/app"
	"campus_market/internal/shared"
)

var probeCmd = &cobra.Command{
	Use:   "probe [ops...]",
	Short: "Report which candidate route answers each read operation",
	Long: `Probe issues one GET chain per operation and prints the route that
answered, or the failure when every candidate failed. Without arguments it
probes the parameterless reads.`,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().Int("workers", 0, "concurrent probes (default PROBE_WORKERS)")
	probeCmd.Flags().Bool("json", false, "print JSON instead of a table")
	probeCmd.Flags().Bool("list", false, "list known operations and their candidates")

	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, op := range app.Operations() {
			fmt.Fprintf(out, "%s\t%v\n", op, app.Candidates(op, "{id}"))
		}
		return nil
	}

	ops := args
	if len(ops) == 0 {
		ops = app.ReadOperations()
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.ProbeWorkers
	}

	client, cleanup, err := shared.NewClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	results := app.Probe(cmd.Context(), client, ops, workers)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(out, results)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OP\tROUTE\tSTATUS\tUSABLE\tELAPSED\tERROR")
	dead := 0
	for _, r := range results {
		if r.Route == "" {
			dead++
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%s\t%s\n", r.Op, r.Route, r.Status, r.Usable, r.Elapsed.Round(time.Millisecond), r.Err)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if dead > 0 {
		return fmt.Errorf("%d of %d operation(s) had no answering route", dead, len(results))
	}
	return nil
}
