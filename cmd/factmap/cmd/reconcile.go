package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/agentstation/factmap"
	"github.com/agentstation/factmap/pkg/reconcile"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <file>...",
	Short: "Reconcile observations from one or more input files",
	Long: `Reads observation rows from the given files (CSV, TSV, JSON, YAML,
XML, SQLite, or XLSX), groups them by company and field, and resolves each
field to a single winning observation.

With --live, each company is additionally checked against the EGRUL
registry and the scraped card participates in reconciliation as an
audit_ru observation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().Bool("live", false, "augment file data with live EGRUL lookups")
	reconcileCmd.Flags().Bool("provenance", false, "include provenance in the output")
	reconcileCmd.Flags().String("delimiter", "", "CSV field delimiter (default comma)")
	reconcileCmd.Flags().Bool("windows-1251", false, "decode CSV input from windows-1251")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	live, _ := cmd.Flags().GetBool("live")
	withProvenance, _ := cmd.Flags().GetBool("provenance")
	delimiter, _ := cmd.Flags().GetString("delimiter")
	cp1251, _ := cmd.Flags().GetBool("windows-1251")

	opts := []factmap.Option{
		factmap.WithTracking(withProvenance),
	}
	if delimiter == "" {
		delimiter = appConfig.CSVDelimiter
	}
	if delimiter != "" && delimiter != "," {
		opts = append(opts, factmap.WithCSVDelimiter(rune(delimiter[0])))
	}
	if cp1251 || appConfig.CSVEncoding == "windows-1251" {
		opts = append(opts, factmap.WithWindows1251CSV())
	}
	if live || appConfig.LiveLookups {
		opts = append(opts, factmap.WithLiveLookups(true))
		if appConfig.EGRULBaseURL != "" {
			opts = append(opts, factmap.WithEGRULBaseURL(appConfig.EGRULBaseURL))
		}
		if appConfig.EGRULInterval > 0 {
			opts = append(opts, factmap.WithEGRULRateLimit(appConfig.EGRULInterval))
		}
	}

	fm, err := factmap.New(opts...)
	if err != nil {
		return err
	}

	records, err := fm.ReconcileFiles(cmd.Context(), args...)
	if err != nil {
		return err
	}

	appLogger.Info().Int("companies", len(records)).Msg("Reconciliation complete")

	switch appConfig.Output {
	case "json":
		return writeJSON(cmd, records, withProvenance, fm)
	case "yaml":
		return writeYAML(cmd, records, withProvenance, fm)
	default:
		return writeTable(cmd, records, withProvenance, fm)
	}
}

type reconcileOutput struct {
	Records    []reconcile.Record `json:"records" yaml:"records"`
	Provenance map[string]any     `json:"provenance,omitempty" yaml:"provenance,omitempty"`
}

func buildOutput(records []reconcile.Record, withProvenance bool, fm factmap.Factmap) reconcileOutput {
	out := reconcileOutput{Records: records}
	if withProvenance {
		out.Provenance = make(map[string]any)
		for key, p := range fm.Provenance() {
			out.Provenance[key] = map[string]any{
				"source":     string(p.Source),
				"status":     string(p.Status),
				"timestamp":  p.Timestamp.Format(time.RFC3339),
				"candidates": p.Candidates,
				"reason":     p.Reason,
			}
		}
	}
	return out
}

func writeJSON(cmd *cobra.Command, records []reconcile.Record, withProvenance bool, fm factmap.Factmap) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(buildOutput(records, withProvenance, fm))
}

func writeYAML(cmd *cobra.Command, records []reconcile.Record, withProvenance bool, fm factmap.Factmap) error {
	data, err := yaml.Marshal(buildOutput(records, withProvenance, fm))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func writeTable(cmd *cobra.Command, records []reconcile.Record, withProvenance bool, fm factmap.Factmap) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INN\tFIELD\tVALUE\tSOURCE\tTIMESTAMP")
	for _, rec := range records {
		for _, field := range reconcile.Fields() {
			obs, ok := rec.Facts[field]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%s\n",
				rec.INN, field, obs.Value, obs.Source,
				obs.Timestamp.Format(time.RFC3339))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if withProvenance {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), fm.Provenance().Summary())
	}
	return nil
}
