package route

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/claimroute/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const injuryKeyword = "injury"

const (
	reasonMissingPrefix  = "Missing mandatory fields: "
	reasonFraudPrefix    = "Suspicious keywords detected: "
	reasonInjury         = "Injury-related claim requires specialist handling"
	reasonInvalidDamage  = "Invalid or missing damage estimate"
	reasonBelowThreshold = "Estimated damage %s is below fast-track threshold"
	reasonAboveThreshold = "Estimated damage %s exceeds fast-track threshold"
)

// Decision is the route chosen for a claim and why
type Decision struct {
	Route     model.Route
	Reasoning string
}

// Router applies the ordered routing policy
type Router struct {
	threshold float64
	currency  string
}

// NewRouter creates a router from the routing configuration
func NewRouter(cfg model.RoutingConfig) (*Router, error) {
	if cfg.FastTrackThreshold <= 0 || math.IsNaN(cfg.FastTrackThreshold) || math.IsInf(cfg.FastTrackThreshold, 0) {
		return nil, fmt.Errorf("fast-track threshold must be a positive number, got %v", cfg.FastTrackThreshold)
	}
	return &Router{
		threshold: cfg.FastTrackThreshold,
		currency:  cfg.CurrencySymbol,
	}, nil
}

// Threshold returns the fast-track threshold
func (r *Router) Threshold() float64 {
	return r.threshold
}

// Route picks exactly one route. Checks run in priority order and the first
// that fires ends evaluation:
//
//  1. missing mandatory fields -> Manual Review
//  2. fraud keywords           -> Investigation Flag
//  3. injury claim type        -> Specialist Queue
//  4. damage estimate          -> Fast-track / Standard Review, or Manual Review if unreadable
func (r *Router) Route(fields model.ExtractedFields, missing model.MissingFieldReport, flags model.FraudFlags) Decision {
	if len(missing) > 0 {
		return Decision{
			Route:     model.RouteManualReview,
			Reasoning: reasonMissingPrefix + strings.Join(missing.Names(), ", "),
		}
	}

	if len(flags) > 0 {
		return Decision{
			Route:     model.RouteInvestigation,
			Reasoning: reasonFraudPrefix + strings.Join(flags, ", "),
		}
	}

	if strings.Contains(strings.ToLower(fields.Get(model.FieldClaimType)), injuryKeyword) {
		return Decision{
			Route:     model.RouteSpecialistQueue,
			Reasoning: reasonInjury,
		}
	}

	damage, ok := parseAmount(fields.Get(model.FieldEstimatedDamage))
	if !ok {
		return Decision{
			Route:     model.RouteManualReview,
			Reasoning: reasonInvalidDamage,
		}
	}

	if damage < r.threshold {
		return Decision{
			Route:     model.RouteFastTrack,
			Reasoning: fmt.Sprintf(reasonBelowThreshold, r.FormatAmount(damage)),
		}
	}

	return Decision{
		Route:     model.RouteStandardReview,
		Reasoning: fmt.Sprintf(reasonAboveThreshold, r.FormatAmount(damage)),
	}
}

// FormatAmount renders an amount with the configured currency symbol,
// thousands separators and two decimals (e.g. ₹65,000.00)
func (r *Router) FormatAmount(amount float64) string {
	p := message.NewPrinter(language.English)
	return r.currency + p.Sprintf("%.2f", amount)
}

// parseAmount accepts finite numbers only; an empty value is a failure
func parseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
