package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/okian/salaryscope/internal/domain/types"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List job titles and the load report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, snap := root.load(ctx)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Catalog types.Catalog `json:"catalog"`
					Status  types.Status  `json:"status"`
				}{svc.Catalog(ctx), svc.Status(ctx)})
			}

			r := snap.Report
			fmt.Fprintf(out, "source:   %s\n", r.Source)
			fmt.Fprintf(out, "outcome:  %s\n", r.Outcome)
			if r.Error != "" {
				fmt.Fprintf(out, "error:    %s\n", r.Error)
			}
			fmt.Fprintf(out, "rows:     %d read, %d kept, %d dropped\n", r.RowsRead, r.RowsKept, r.DroppedTotal())
			reasons := make([]string, 0, len(r.Dropped))
			for reason := range r.Dropped {
				reasons = append(reasons, reason)
			}
			sort.Strings(reasons)
			for _, reason := range reasons {
				fmt.Fprintf(out, "  %-16s %d\n", reason, r.Dropped[reason])
			}
			if snap.Fallback {
				fmt.Fprintln(out, "titles (fallback):")
			} else {
				fmt.Fprintf(out, "titles (%d, default %s):\n", len(snap.Catalog), snap.Default)
			}
			for _, t := range snap.Catalog {
				fmt.Fprintf(out, "  %s\n", t)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print catalog and status as JSON")
	return cmd
}
