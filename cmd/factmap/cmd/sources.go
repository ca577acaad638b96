package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/pkg/confirmation"
	"github.com/agentstation/factmap/pkg/sources"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show the source trust hierarchy and confirmation mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tSOURCE\tNAME\tCONFIRMATION")
		for rank, id := range sources.Hierarchy() {
			status, err := confirmation.Of(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", rank, id, id.Name(), status)
		}
		return w.Flush()
	},
}
