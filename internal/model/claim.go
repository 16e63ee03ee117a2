package model

import "strings"

// Route is the internal queue a claim is sent to
type Route string

const (
	RouteManualReview    Route = "Manual Review"      // Incomplete data or unreadable estimate
	RouteInvestigation   Route = "Investigation Flag" // Fraud keywords in the description
	RouteSpecialistQueue Route = "Specialist Queue"   // Injury claims
	RouteFastTrack       Route = "Fast-track"         // Complete, clean, below threshold
	RouteStandardReview  Route = "Standard Review"    // Complete, clean, at or above threshold
)

// Routes returns every route in the order the router considers them
func Routes() []Route {
	return []Route{
		RouteManualReview,
		RouteInvestigation,
		RouteSpecialistQueue,
		RouteFastTrack,
		RouteStandardReview,
	}
}

// Code returns the route as an upper snake-case token (e.g. FAST_TRACK)
func (r Route) Code() string {
	return strings.ReplaceAll(strings.ToUpper(string(r)), "-", "_")
}

// ExtractedFields maps a field name to its trimmed captured value.
// A field that did not match is absent, never empty.
type ExtractedFields map[string]string

// Get returns the value for name, or "" when the field was not extracted
func (f ExtractedFields) Get(name string) string {
	return f[name]
}

// Has reports whether name was extracted
func (f ExtractedFields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// MandatoryField is a field required for automated processing
type MandatoryField struct {
	Field    string `json:"field" yaml:"field" mapstructure:"field"`
	Category string `json:"category" yaml:"category" mapstructure:"category"`
}

// MissingFieldReport lists absent mandatory fields in declaration order
type MissingFieldReport []MandatoryField

// Names drops the categories
func (r MissingFieldReport) Names() []string {
	names := make([]string, 0, len(r))
	for _, f := range r {
		names = append(names, f.Field)
	}
	return names
}

// FraudFlags lists lexicon keywords found in the description, in lexicon order
type FraudFlags []string

// ClaimDecision is the single output record of the routing pipeline
type ClaimDecision struct {
	ExtractedFields  ExtractedFields `json:"extractedFields"`
	MissingFields    []string        `json:"missingFields"`
	RecommendedRoute Route           `json:"recommendedRoute"`
	Reasoning        string          `json:"reasoning"`
	FraudFlags       FraudFlags      `json:"fraudFlags"`         // null when no keyword matched
	Warnings         []string        `json:"warnings,omitempty"` // Extraction ambiguities, never affect routing
}

// Field names the router and scanner read directly
const (
	FieldDescription     = "description"
	FieldClaimType       = "claim_type"
	FieldEstimatedDamage = "estimated_damage"
)
