package model

import "time"

// Config holds the full claimroute configuration
type Config struct {
	Routing     RoutingConfig     `yaml:"routing" mapstructure:"routing"`
	Extraction  ExtractionConfig  `yaml:"extraction" mapstructure:"extraction"`
	Validation  ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	Fraud       FraudConfig       `yaml:"fraud" mapstructure:"fraud"`
	Input       InputConfig       `yaml:"input" mapstructure:"input"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// RoutingConfig controls the damage threshold tier
type RoutingConfig struct {
	FastTrackThreshold float64 `yaml:"fast_track_threshold" mapstructure:"fast_track_threshold"` // Strictly below routes to Fast-track
	CurrencySymbol     string  `yaml:"currency_symbol" mapstructure:"currency_symbol"`           // Prefix used in reasoning strings
}

// ExtractionRule maps a field name to a pattern with exactly one capture group
type ExtractionRule struct {
	Field   string `yaml:"field" mapstructure:"field"`
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
}

// ExtractionConfig holds the extraction rule table.
// RulesFile, when set, replaces Rules entirely.
type ExtractionConfig struct {
	RulesFile string           `yaml:"rules_file,omitempty" mapstructure:"rules_file"`
	Rules     []ExtractionRule `yaml:"rules" mapstructure:"rules"`
}

// ValidationConfig holds the mandatory-field checklist
type ValidationConfig struct {
	MandatoryFields []MandatoryField `yaml:"mandatory_fields" mapstructure:"mandatory_fields"`
}

// FraudConfig holds the risk lexicon
type FraudConfig struct {
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

// InputConfig limits what is read from disk or stdin
type InputConfig struct {
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host              string        `yaml:"host" mapstructure:"host"`
	Port              int           `yaml:"port" mapstructure:"port"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"` // Per client
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	BodyLimit         string        `yaml:"body_limit" mapstructure:"body_limit"` // e.g. "1M"
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`   // 0 disables the decision cache
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json, console
}

// OutputConfig configures rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the standard FNOL intake configuration
func DefaultConfig() *Config {
	return &Config{
		Routing: RoutingConfig{
			FastTrackThreshold: 25000,
			CurrencySymbol:     "₹",
		},
		Extraction: ExtractionConfig{
			Rules: DefaultExtractionRules(),
		},
		Validation: ValidationConfig{
			MandatoryFields: DefaultMandatoryFields(),
		},
		Fraud: FraudConfig{
			Keywords: DefaultFraudKeywords(),
		},
		Input: InputConfig{
			MaxBytes: 1_000_000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Server: ServerConfig{
			Host:              "localhost",
			Port:              8080,
			RequestsPerSecond: 20,
			BurstSize:         40,
			BodyLimit:         "1M",
			CacheTTL:          5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}

// DefaultExtractionRules returns the canonical FNOL label table.
// Label synonyms and capture shapes follow existing FNOL form conventions
// and must not be tightened here; override through a rules file instead.
func DefaultExtractionRules() []ExtractionRule {
	return []ExtractionRule{
		{Field: "policy_number", Pattern: `(?:Policy Number|POL)[:\s]+([A-Z0-9]+)`},
		{Field: "policyholder_name", Pattern: `(?:Policyholder Name|Insured)[:\s]+([A-Za-z\s]+)`},
		{Field: "incident_date", Pattern: `(?:Incident Date|Date of Loss)[:\s]+([0-9\-/]+)`},
		{Field: "incident_time", Pattern: `(?:Incident Time|Time of Loss)[:\s]+([0-9:]+\s*(?:AM|PM)?)`},
		{Field: "location", Pattern: `(?:Location|Address of Loss)[:\s]+([^\n]+)`},
		{Field: "description", Pattern: `(?:Description|Accident Description)[:\s]+([^\n]+)`},
		{Field: "claimant", Pattern: `(?:Claimant|Insured)[:\s]+([A-Za-z\s]+)`},
		{Field: "contact_details", Pattern: `(?:Contact|Phone)[:\s]+([0-9\-\+\s]+)`},
		{Field: "asset_type", Pattern: `(?:Asset Type|Vehicle Type)[:\s]+([A-Za-z\s]+)`},
		{Field: "asset_id", Pattern: `(?:Asset ID|VIN|Registration)[:\s]+([A-Z0-9]+)`},
		{Field: "estimated_damage", Pattern: `(?:Estimated Damage|Estimate Amount)[:\s]+(?:₹|Rs\.?)?([0-9]+)`},
		{Field: "claim_type", Pattern: `(?:Claim Type)[:\s]+([A-Za-z\s]+)`},
		{Field: "attachments", Pattern: `(?:Attachments?)[:\s]+([^\n]+)`},
		{Field: "initial_estimate", Pattern: `(?:Initial Estimate)[:\s]+(?:₹|Rs\.?)?([0-9]+)`},
	}
}

// DefaultMandatoryFields returns the ten fields required before a claim can
// leave intake. contact_details, asset_id, attachments and initial_estimate
// are extracted but optional.
func DefaultMandatoryFields() []MandatoryField {
	return []MandatoryField{
		{Field: "policy_number", Category: "Policy Information"},
		{Field: "policyholder_name", Category: "Policy Information"},
		{Field: "incident_date", Category: "Incident Information"},
		{Field: "incident_time", Category: "Incident Information"},
		{Field: "location", Category: "Incident Information"},
		{Field: "description", Category: "Incident Information"},
		{Field: "claimant", Category: "Involved Parties"},
		{Field: "asset_type", Category: "Asset Details"},
		{Field: "estimated_damage", Category: "Asset Details"},
		{Field: "claim_type", Category: "Claim Type"},
	}
}

// DefaultFraudKeywords returns the risk lexicon in reporting order
func DefaultFraudKeywords() []string {
	return []string{"fraud", "staged", "inconsistent", "suspicious", "fabricated", "false claim"}
}
