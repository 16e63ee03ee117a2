package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/claimroute/internal/pipeline"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	rulesFlags  pipelineFlags
	rulesFormat string
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active extraction rules, checklist and fraud lexicon",
	Long: `Rules prints the tables the pipeline is running with after config file,
environment and flags are applied. The YAML output is a valid rules file
and can be edited and passed back with --rules.

Example:
  claimroute rules
  claimroute rules --output table
  claimroute rules --rules custom-rules.yaml --output json`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesFlags.register(rulesCmd)
	rulesCmd.Flags().StringVarP(&rulesFormat, "output", "o", "yaml", "output format: yaml, json, table")
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, p, err := buildPipeline(cmd, &rulesFlags)
	if err != nil {
		return err
	}

	tables := p.Tables()
	out := cmd.OutOrStdout()

	switch rulesFormat {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(tables); err != nil {
			return fmt.Errorf("encode rules: %w", err)
		}
		return enc.Close()
	case "json":
		return pipeline.NewRenderer(cfg.Output.IncludeFooter).WriteJSON(out, tables)
	case "table":
		return writeRulesTable(out, tables)
	default:
		return fmt.Errorf("unknown output format %q (expected yaml, json or table)", rulesFormat)
	}
}

func writeRulesTable(out io.Writer, tables pipeline.Tables) error {
	mandatory := make(map[string]string, len(tables.MandatoryFields))
	for _, f := range tables.MandatoryFields {
		mandatory[f.Field] = f.Category
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tREQUIRED\tCATEGORY\tPATTERN")
	for _, rule := range tables.Rules {
		category, required := mandatory[rule.Field]
		req := "no"
		if required {
			req = "yes"
		} else {
			category = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rule.Field, req, category, rule.Pattern)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nFast-track threshold: %s%.2f\n", tables.CurrencySymbol, tables.Threshold)
	fmt.Fprintf(out, "Fraud keywords: %s\n", strings.Join(tables.FraudKeywords, ", "))
	return nil
}
