package pipeline

import (
	"fmt"

	"github.com/ppiankov/claimroute/internal/extract"
	"github.com/ppiankov/claimroute/internal/ingest"
	"github.com/ppiankov/claimroute/internal/model"
	"github.com/ppiankov/claimroute/internal/route"
	"github.com/ppiankov/claimroute/internal/validate"
)

// Pipeline orchestrates extraction, validation, fraud scanning and routing.
// It is immutable after New and safe to share between goroutines.
type Pipeline struct {
	extractor *extract.FieldExtractor
	validator *validate.MandatoryValidator
	scanner   *extract.FraudScanner
	router    *route.Router
	loader    *ingest.Loader
	config    *model.Config
}

// New builds a pipeline from configuration. Configuration problems (bad
// patterns, duplicate fields, a non-positive threshold) are reported here
// so that processing itself never fails.
func New(cfg *model.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	rules := cfg.Extraction.Rules
	if cfg.Extraction.RulesFile != "" {
		loaded, err := extract.LoadRules(cfg.Extraction.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		rules = loaded
	}

	extractor, err := extract.NewFieldExtractor(rules)
	if err != nil {
		return nil, fmt.Errorf("extraction rules: %w", err)
	}

	validator, err := validate.NewMandatoryValidator(cfg.Validation.MandatoryFields)
	if err != nil {
		return nil, fmt.Errorf("mandatory fields: %w", err)
	}

	router, err := route.NewRouter(cfg.Routing)
	if err != nil {
		return nil, fmt.Errorf("routing: %w", err)
	}

	return &Pipeline{
		extractor: extractor,
		validator: validator,
		scanner:   extract.NewFraudScanner(cfg.Fraud.Keywords),
		router:    router,
		loader:    ingest.NewLoader(cfg.Input.MaxBytes),
		config:    cfg,
	}, nil
}

// Process routes one FNOL document. Any input, including empty text,
// produces a well-formed decision.
func (p *Pipeline) Process(text string) model.ClaimDecision {
	// 1. Extract labeled fields
	extraction := p.extractor.Extract(text)

	// 2. Check the mandatory-field checklist
	missing := p.validator.Validate(extraction.Fields)

	// 3. Scan the description for fraud keywords
	flags := p.scanner.Scan(extraction.Fields)

	// 4. Route
	decision := p.router.Route(extraction.Fields, missing, flags)

	return model.ClaimDecision{
		ExtractedFields:  extraction.Fields,
		MissingFields:    missing.Names(),
		RecommendedRoute: decision.Route,
		Reasoning:        decision.Reasoning,
		FraudFlags:       flags,
		Warnings:         extraction.Warnings,
	}
}

// ProcessFile loads a document from disk (or stdin for "-") and routes it
func (p *Pipeline) ProcessFile(path string) (*ingest.Document, model.ClaimDecision, error) {
	doc, err := p.loader.Load(path)
	if err != nil {
		return nil, model.ClaimDecision{}, err
	}
	return doc, p.Process(doc.Text), nil
}

// Loader returns the document loader configured for this pipeline
func (p *Pipeline) Loader() *ingest.Loader {
	return p.loader
}

// Tables describes the active configuration tables
type Tables struct {
	Rules           []model.ExtractionRule `json:"rules" yaml:"rules"`
	MandatoryFields []model.MandatoryField `json:"mandatory_fields" yaml:"mandatory_fields"`
	FraudKeywords   []string               `json:"fraud_keywords" yaml:"fraud_keywords"`
	Threshold       float64                `json:"fast_track_threshold" yaml:"fast_track_threshold"`
	CurrencySymbol  string                 `json:"currency_symbol" yaml:"currency_symbol"`
}

// Tables returns the compiled rule table, checklist and lexicon
func (p *Pipeline) Tables() Tables {
	compiled := p.extractor.Rules()
	rules := make([]model.ExtractionRule, 0, len(compiled))
	for _, r := range compiled {
		rules = append(rules, model.ExtractionRule{Field: r.Field, Pattern: r.Pattern})
	}

	return Tables{
		Rules:           rules,
		MandatoryFields: p.validator.Required(),
		FraudKeywords:   p.scanner.Keywords(),
		Threshold:       p.router.Threshold(),
		CurrencySymbol:  p.config.Routing.CurrencySymbol,
	}
}
