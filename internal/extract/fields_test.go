package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/claimroute/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultExtractor(t *testing.T) *FieldExtractor {
	t.Helper()
	extractor, err := NewFieldExtractor(model.DefaultExtractionRules())
	require.NoError(t, err)
	return extractor
}

func TestFieldExtractor_SingleLineFields(t *testing.T) {
	extractor := newDefaultExtractor(t)

	text := `
Policy Number: POL123456
Incident Date: 15-03-2024
Incident Time: 18:30 PM
Location: Mumbai, Maharashtra
Description: Rear-end collision at traffic signal.
Asset ID: MH12AB1234
Estimated Damage: 18000
Attachments: Photos, FIR
Initial Estimate: 18000
`
	got := extractor.Extract(text)

	assert.Equal(t, "POL123456", got.Fields.Get("policy_number"))
	assert.Equal(t, "15-03-2024", got.Fields.Get("incident_date"))
	assert.Equal(t, "18:30 PM", got.Fields.Get("incident_time"))
	assert.Equal(t, "Mumbai, Maharashtra", got.Fields.Get("location"))
	assert.Equal(t, "Rear-end collision at traffic signal.", got.Fields.Get("description"))
	assert.Equal(t, "MH12AB1234", got.Fields.Get("asset_id"))
	assert.Equal(t, "18000", got.Fields.Get("estimated_damage"))
	assert.Equal(t, "Photos, FIR", got.Fields.Get("attachments"))
	assert.Equal(t, "18000", got.Fields.Get("initial_estimate"))
	assert.Empty(t, got.Warnings)
}

func TestFieldExtractor_LabelSynonyms(t *testing.T) {
	extractor := newDefaultExtractor(t)

	text := "POL: AB998\nDate of Loss: 2024/01/02\nTime of Loss: 9:15 am\n" +
		"Address of Loss: 12 High Street\nAccident Description: Hit a pole\n" +
		"Vehicle Type: Truck\nVIN: 1HGCM82633A\nEstimate Amount: Rs.4200\nPhone: +91 98765 43210"
	got := extractor.Extract(text)

	assert.Equal(t, "AB998", got.Fields.Get("policy_number"))
	assert.Equal(t, "2024/01/02", got.Fields.Get("incident_date"))
	assert.Equal(t, "9:15 am", got.Fields.Get("incident_time"))
	assert.Equal(t, "12 High Street", got.Fields.Get("location"))
	assert.Equal(t, "Hit a pole", got.Fields.Get("description"))
	assert.True(t, strings.HasPrefix(got.Fields.Get("asset_type"), "Truck"))
	assert.Equal(t, "1HGCM82633A", got.Fields.Get("asset_id"))
	assert.Equal(t, "4200", got.Fields.Get("estimated_damage"))
	assert.Equal(t, "+91 98765 43210", got.Fields.Get("contact_details"))
}

func TestFieldExtractor_CaseInsensitiveLabels(t *testing.T) {
	extractor := newDefaultExtractor(t)

	got := extractor.Extract("policy number: pol42\nLOCATION: Pune")
	assert.Equal(t, "pol42", got.Fields.Get("policy_number"))
	assert.Equal(t, "Pune", got.Fields.Get("location"))
}

func TestFieldExtractor_RupeePrefix(t *testing.T) {
	extractor := newDefaultExtractor(t)

	got := extractor.Extract("Estimated Damage: ₹25000\nInitial Estimate: Rs.3000")
	assert.Equal(t, "25000", got.Fields.Get("estimated_damage"))
	assert.Equal(t, "3000", got.Fields.Get("initial_estimate"))
}

func TestFieldExtractor_FirstMatchWins(t *testing.T) {
	extractor := newDefaultExtractor(t)

	got := extractor.Extract("Location: Delhi\nLocation: Chennai")
	assert.Equal(t, "Delhi", got.Fields.Get("location"))
}

func TestFieldExtractor_NameCaptureSpansLines(t *testing.T) {
	extractor := newDefaultExtractor(t)

	// Letters and whitespace run on into the next label up to its colon
	got := extractor.Extract("Policyholder Name: John Doe\nPolicy Effective Dates: 01-01-2024")
	assert.Equal(t, "John Doe\nPolicy Effective Dates", got.Fields.Get("policyholder_name"))
}

func TestFieldExtractor_ContactDetailsLabel(t *testing.T) {
	extractor := newDefaultExtractor(t)

	// "Contact" must be followed directly by the separator and digits
	got := extractor.Extract("Contact Details: 9876543210")
	assert.False(t, got.Fields.Has("contact_details"))

	got = extractor.Extract("Contact: 9876543210")
	assert.Equal(t, "9876543210", got.Fields.Get("contact_details"))
}

func TestFieldExtractor_EmptyCaptureDropped(t *testing.T) {
	extractor, err := NewFieldExtractor([]model.ExtractionRule{
		{Field: "note", Pattern: `Note:([^\n]*)`},
	})
	require.NoError(t, err)

	got := extractor.Extract("Note:   \nOther: x")
	assert.False(t, got.Fields.Has("note"))
	assert.Empty(t, got.Fields)
}

func TestFieldExtractor_EmptyText(t *testing.T) {
	extractor := newDefaultExtractor(t)

	got := extractor.Extract("")
	assert.NotNil(t, got.Fields)
	assert.Empty(t, got.Fields)
	assert.Empty(t, got.Warnings)
}

func TestFieldExtractor_SharedInsuredLabel(t *testing.T) {
	extractor := newDefaultExtractor(t)

	got := extractor.Extract("Insured: Jane Roe\n")
	assert.Equal(t, "Jane Roe", got.Fields.Get("policyholder_name"))
	assert.Equal(t, "Jane Roe", got.Fields.Get("claimant"))
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, `policyholder_name and claimant captured from the same label "Insured"`, got.Warnings[0])
}

func TestFieldExtractor_DistinctLabelsNoWarning(t *testing.T) {
	extractor := newDefaultExtractor(t)

	got := extractor.Extract("Policyholder Name: Jane Roe\n\nClaimant: Sam Roe\n")
	assert.True(t, strings.HasPrefix(got.Fields.Get("policyholder_name"), "Jane Roe"))
	assert.Equal(t, "Sam Roe", got.Fields.Get("claimant"))
	assert.Empty(t, got.Warnings)
}

func TestFieldExtractor_Deterministic(t *testing.T) {
	extractor := newDefaultExtractor(t)
	text := "Insured: A B\nPolicy Number: X1\nDescription: fine"

	first := extractor.Extract(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, extractor.Extract(text))
	}
}

func TestFieldExtractor_RulesCopy(t *testing.T) {
	extractor := newDefaultExtractor(t)

	rules := extractor.Rules()
	rules[0].Field = "changed"
	assert.Equal(t, "policy_number", extractor.Rules()[0].Field)
}

func TestJoinFields(t *testing.T) {
	assert.Equal(t, "a and b", joinFields([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", joinFields([]string{"a", "b", "c"}))
}
