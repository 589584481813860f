package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/northbeam/website/internal/website/content"
)

func newRoutesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List every page with its SEO settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tTITLE\tROBOTS\tPRIORITY\tSCHEMAS")
			for _, p := range content.Pages() {
				meta := p.WithBase(a.cfg.BaseURL)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					meta.Path,
					meta.Title,
					meta.Robots.String(),
					strconv.FormatFloat(meta.Priority, 'f', 1, 64),
					len(meta.Services),
				)
			}
			return w.Flush()
		},
	}
}
