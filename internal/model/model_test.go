package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoute_Code(t *testing.T) {
	assert.Equal(t, "MANUAL_REVIEW", RouteManualReview.Code())
	assert.Equal(t, "INVESTIGATION_FLAG", RouteInvestigation.Code())
	assert.Equal(t, "SPECIALIST_QUEUE", RouteSpecialistQueue.Code())
	assert.Equal(t, "FAST_TRACK", RouteFastTrack.Code())
	assert.Equal(t, "STANDARD_REVIEW", RouteStandardReview.Code())
}

func TestExtractedFields(t *testing.T) {
	fields := ExtractedFields{"location": "Pune"}

	assert.True(t, fields.Has("location"))
	assert.False(t, fields.Has("claimant"))
	assert.Equal(t, "Pune", fields.Get("location"))
	assert.Equal(t, "", fields.Get("claimant"))

	var empty ExtractedFields
	assert.False(t, empty.Has("location"))
}

func TestMissingFieldReport_Names(t *testing.T) {
	report := MissingFieldReport{{Field: "claimant", Category: "Involved Parties"}, {Field: "claim_type"}}
	assert.Equal(t, []string{"claimant", "claim_type"}, report.Names())
	assert.Equal(t, []string{}, MissingFieldReport(nil).Names())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 25000.0, cfg.Routing.FastTrackThreshold)
	assert.Equal(t, "₹", cfg.Routing.CurrencySymbol)
	assert.Len(t, cfg.Extraction.Rules, 14)
	assert.Len(t, cfg.Validation.MandatoryFields, 10)
	assert.Equal(t, []string{"fraud", "staged", "inconsistent", "suspicious", "fabricated", "false claim"}, cfg.Fraud.Keywords)

	// Each call returns independent tables
	cfg.Extraction.Rules[0].Field = "changed"
	assert.Equal(t, "policy_number", DefaultConfig().Extraction.Rules[0].Field)
}

func TestBatchSummary(t *testing.T) {
	started := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	summary := NewBatchSummary("run-1", started)

	for _, r := range Routes() {
		assert.Equal(t, 0, summary.Routes[r])
	}

	summary.Record(ClaimDecision{RecommendedRoute: RouteFastTrack})
	summary.Record(ClaimDecision{RecommendedRoute: RouteFastTrack})
	summary.Record(ClaimDecision{RecommendedRoute: RouteManualReview})
	summary.RecordFailure("missing.txt", errors.New("open document: no such file"))

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Routes[RouteFastTrack])
	assert.Equal(t, 1, summary.Routes[RouteManualReview])
	assert.Equal(t, []BatchFailure{{Source: "missing.txt", Error: "open document: no such file"}}, summary.Failures)
}
