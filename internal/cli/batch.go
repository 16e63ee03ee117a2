package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/claimroute/internal/logging"
	"github.com/ppiankov/claimroute/internal/model"
	"github.com/ppiankov/claimroute/internal/pipeline"
	"github.com/ppiankov/claimroute/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	batchFlags   pipelineFlags
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchMD      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Route many FNOL documents in parallel",
	Long: `Batch routes every FNOL document in a directory, or every path listed in a
file (one per line, # comments allowed), concurrently:
- Each document gets its own JSON decision in the output directory
- A batch-summary.json records route counts and failures
- One unreadable document never stops the rest

Example:
  claimroute batch ./inbox
  claimroute batch claims.txt --concurrency 8 --output-dir ./decisions
  claimroute batch ./inbox --md --timeout 2m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchFlags.register(batchCmd)
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimroute-decisions", "output directory for decisions")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchMD, "md", false, "also write a Markdown report per document")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, p, err := buildPipeline(cmd, &batchFlags)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	summary := model.NewBatchSummary(uuid.NewString(), time.Now().UTC())
	logger = logger.With(zap.String("run_id", summary.RunID))

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  claimroute Batch Routing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "  Run ID:       %s\n", summary.RunID)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results, err := processor.ProcessInput(ctx, input)
	if err != nil {
		return fmt.Errorf("resolve input: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Routing %d documents...\n\n", len(results))

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	names := newNameAllocator()

	for _, result := range results {
		if result.Error != nil {
			summary.RecordFailure(result.Path, result.Error)
			logger.Warn("document failed", zap.String("path", result.Path), zap.Error(result.Error))
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		name := names.next(result.Document.Name)
		jsonPath := filepath.Join(outputDir, name+".json")
		if err := renderer.RenderJSON(result.Decision, jsonPath); err != nil {
			summary.RecordFailure(result.Path, err)
			logger.Error("write decision", zap.String("path", jsonPath), zap.Error(err))
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if batchMD {
			mdPath := filepath.Join(outputDir, name+".md")
			if err := renderer.RenderMarkdown(result.Path, result.Decision, mdPath); err != nil {
				summary.RecordFailure(result.Path, err)
				logger.Error("write report", zap.String("path", mdPath), zap.Error(err))
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
				continue
			}
		}

		summary.Record(result.Decision)
		logger.Debug("document routed",
			zap.String("path", result.Path),
			zap.String("route", string(result.Decision.RecommendedRoute)),
		)
		fmt.Fprintf(os.Stderr, "✓ %s → %s\n", result.Path, result.Decision.RecommendedRoute)
	}

	summary.CompletedAt = time.Now().UTC()
	summaryPath := filepath.Join(outputDir, "batch-summary.json")
	if err := renderer.RenderJSON(summary, summaryPath); err != nil {
		return fmt.Errorf("write batch summary: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", summary.Total)
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", summary.Succeeded)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", summary.Failed)
	for _, route := range model.Routes() {
		if n := summary.Routes[route]; n > 0 {
			fmt.Fprintf(os.Stderr, "    %-18s %d\n", route+":", n)
		}
	}
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	logger.Info("batch complete",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
	)

	return nil
}

// nameAllocator hands out unique output names; a repeated name gets a
// numeric suffix (claim, claim-2, claim-3)
type nameAllocator struct {
	used map[string]bool
}

func newNameAllocator() *nameAllocator {
	// batch-summary.json shares the output directory
	return &nameAllocator{used: map[string]bool{"batch-summary": true}}
}

func (a *nameAllocator) next(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "document"
	}

	candidate := name
	for i := 2; a.used[strings.ToLower(candidate)]; i++ {
		candidate = name + "-" + strconv.Itoa(i)
	}
	a.used[strings.ToLower(candidate)] = true
	return candidate
}
