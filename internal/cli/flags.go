package cli

import (
	"github.com/ppiankov/claimroute/internal/model"
	"github.com/ppiankov/claimroute/internal/pipeline"
	"github.com/spf13/cobra"
)

// pipelineFlags are the routing overrides shared by route, batch and serve
type pipelineFlags struct {
	threshold float64
	currency  string
	rulesFile string
	maxBytes  int64
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.threshold, "threshold", 25000, "fast-track threshold (damage strictly below routes to Fast-track)")
	cmd.Flags().StringVar(&f.currency, "currency", "₹", "currency symbol used in reasoning strings")
	cmd.Flags().StringVar(&f.rulesFile, "rules", "", "YAML file replacing the extraction rule table")
	cmd.Flags().Int64Var(&f.maxBytes, "max-bytes", 1_000_000, "max document bytes to read")
}

// apply overrides cfg with flags the user set explicitly
func (f *pipelineFlags) apply(cmd *cobra.Command, cfg *model.Config) {
	if cmd.Flags().Changed("threshold") {
		cfg.Routing.FastTrackThreshold = f.threshold
	}
	if cmd.Flags().Changed("currency") {
		cfg.Routing.CurrencySymbol = f.currency
	}
	if cmd.Flags().Changed("rules") {
		cfg.Extraction.RulesFile = f.rulesFile
	}
	if cmd.Flags().Changed("max-bytes") {
		cfg.Input.MaxBytes = f.maxBytes
	}
}

// buildPipeline loads configuration, applies flags and compiles the pipeline
func buildPipeline(cmd *cobra.Command, flags *pipelineFlags) (*model.Config, *pipeline.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	flags.apply(cmd, cfg)

	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}
