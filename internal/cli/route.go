package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/claimroute/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	routeFlags pipelineFlags
	jsonOutput string
	mdOutput   string
	outputMode string
	noFooter   bool
)

// routeCmd represents the route command
var routeCmd = &cobra.Command{
	Use:   "route <file|->",
	Short: "Route a single FNOL document",
	Long: `Route reads one FNOL document and prints the routing decision:
- Extract labeled fields (policy number, incident date, damage estimate, ...)
- Check the mandatory-field checklist
- Scan the incident description for fraud keywords
- Apply the routing policy and explain the decision

Plain text and HTML documents are accepted. Use "-" to read from stdin.

Example:
  claimroute route fnol.txt
  claimroute route fnol.html --format json
  cat fnol.txt | claimroute route - --json decision.json --md decision.md
  claimroute route fnol.txt --threshold 50000 --currency '$'`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeFlags.register(routeCmd)
	routeCmd.Flags().StringVar(&outputMode, "format", "both", "stdout format: both, json, summary")
	routeCmd.Flags().StringVar(&jsonOutput, "json", "", "also write the JSON decision to this path")
	routeCmd.Flags().StringVar(&mdOutput, "md", "", "also write a Markdown report to this path")
	routeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runRoute(cmd *cobra.Command, args []string) error {
	switch outputMode {
	case "both", "json", "summary":
	default:
		return fmt.Errorf("unknown format %q (expected both, json or summary)", outputMode)
	}

	cfg, p, err := buildPipeline(cmd, &routeFlags)
	if err != nil {
		return err
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}

	doc, decision, err := p.ProcessFile(args[0])
	if err != nil {
		return fmt.Errorf("route %s: %w", args[0], err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Routed %s (%s, %d bytes of text)\n", doc.Source, doc.Adapter, len(doc.Text))
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	out := cmd.OutOrStdout()

	if outputMode != "summary" {
		if err := renderer.WriteJSON(out, decision); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}
	if outputMode != "json" {
		if err := renderer.WriteSummary(out, decision); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if jsonOutput != "" {
		if err := renderer.RenderJSON(decision, jsonOutput); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ JSON decision: %s\n", jsonOutput)
	}
	if mdOutput != "" {
		if err := renderer.RenderMarkdown(doc.Source, decision, mdOutput); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", mdOutput)
	}

	return nil
}
