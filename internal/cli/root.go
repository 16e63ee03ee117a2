package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/claimroute/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "claimroute v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimroute",
	Short: "claimroute - First Notice of Loss intake routing",
	Long: `claimroute reads a free-text First Notice of Loss (FNOL) document and
decides which claims queue it belongs in.

It extracts labeled fields with pattern rules, checks the mandatory-field
checklist, scans the incident description for fraud keywords and applies an
ordered routing policy:

  1. Missing mandatory fields   -> Manual Review
  2. Fraud keywords             -> Investigation Flag
  3. Injury claim type          -> Specialist Queue
  4. Damage below threshold     -> Fast-track
     Damage at/above threshold  -> Standard Review

Every decision carries a plain-language reason. claimroute triages intake;
it does not settle claims.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of claimroute.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimroute/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.claimroute")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// CLAIMROUTE_ROUTING_FAST_TRACK_THRESHOLD overrides routing.fast_track_threshold
	viper.SetEnvPrefix("CLAIMROUTE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper(), model.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every scalar key so AutomaticEnv can resolve it.
// Tables (rules, mandatory fields) come from the config file only.
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("routing.fast_track_threshold", cfg.Routing.FastTrackThreshold)
	v.SetDefault("routing.currency_symbol", cfg.Routing.CurrencySymbol)
	v.SetDefault("extraction.rules_file", cfg.Extraction.RulesFile)
	v.SetDefault("fraud.keywords", cfg.Fraud.Keywords)
	v.SetDefault("input.max_bytes", cfg.Input.MaxBytes)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.requests_per_second", cfg.Server.RequestsPerSecond)
	v.SetDefault("server.burst_size", cfg.Server.BurstSize)
	v.SetDefault("server.body_limit", cfg.Server.BodyLimit)
	v.SetDefault("server.cache_ttl", cfg.Server.CacheTTL)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("output.include_footer", cfg.Output.IncludeFooter)
}

// loadConfig merges defaults, config file and environment into a Config
func loadConfig() (*model.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()

	// Decoding into a populated slice overwrites element by element and
	// never shrinks it, so tables start empty and fall back afterwards.
	cfg.Extraction.Rules = nil
	cfg.Validation.MandatoryFields = nil
	cfg.Fraud.Keywords = nil

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Extraction.Rules == nil {
		cfg.Extraction.Rules = model.DefaultExtractionRules()
	}
	if cfg.Validation.MandatoryFields == nil {
		cfg.Validation.MandatoryFields = model.DefaultMandatoryFields()
	}
	if cfg.Fraud.Keywords == nil {
		cfg.Fraud.Keywords = model.DefaultFraudKeywords()
	}

	return cfg, nil
}
