package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/internal/egrul"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <inn>...",
	Short: "Fetch company cards from the EGRUL registry",
	Long: `Looks up one or more companies by INN in the EGRUL registry and
prints the scraped card (legal name, director, registered address).
Lookups are rate limited; failed lookups are reported per INN without
aborting the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	opts := []egrul.Option{}
	if appConfig.EGRULBaseURL != "" {
		opts = append(opts, egrul.WithBaseURL(appConfig.EGRULBaseURL))
	}
	if appConfig.EGRULInterval > 0 {
		opts = append(opts, egrul.WithRateLimit(appConfig.EGRULInterval))
	}

	client := egrul.New(opts...)

	cards := make([]egrul.Card, 0, len(args))
	for _, inn := range args {
		card, err := client.Lookup(cmd.Context(), inn)
		if err != nil {
			if cmd.Context().Err() != nil {
				return cmd.Context().Err()
			}
			appLogger.Warn().Str("inn", inn).Err(err).Msg("Lookup failed")
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return fmt.Errorf("no companies found")
	}

	if appConfig.Output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INN\tNAME\tDIRECTOR\tADDRESS\tFETCHED")
	for _, card := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			card.INN, card.Name, card.Director, card.Address,
			card.FetchedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
