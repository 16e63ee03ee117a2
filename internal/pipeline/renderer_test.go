package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/claimroute/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDecision() model.ClaimDecision {
	return model.ClaimDecision{
		ExtractedFields: model.ExtractedFields{
			"policy_number": "POL1",
			"claim_type":    "Bodily Injury",
			"location":      "A | B",
		},
		MissingFields:    []string{},
		RecommendedRoute: model.RouteSpecialistQueue,
		Reasoning:        "Injury-related claim requires specialist handling",
	}
}

func TestRenderer_WriteJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteJSON(&buf, sampleDecision()))

	out := buf.String()
	assert.Contains(t, out, `"missingFields": []`)
	assert.Contains(t, out, `"fraudFlags": null`)
	assert.Contains(t, out, `"recommendedRoute": "Specialist Queue"`)
	assert.NotContains(t, out, "warnings")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 5)
}

func TestRenderer_WriteJSON_NoHTMLEscaping(t *testing.T) {
	decision := sampleDecision()
	decision.Reasoning = "Estimated damage ₹8,500.00 is below fast-track threshold"
	decision.ExtractedFields["description"] = "<b>Rear-end</b> & minor"

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteJSON(&buf, decision))

	assert.Contains(t, buf.String(), "₹8,500.00")
	assert.Contains(t, buf.String(), "<b>Rear-end</b> & minor")
}

func TestRenderer_WriteSummary(t *testing.T) {
	decision := sampleDecision()
	decision.FraudFlags = model.FraudFlags{"fraud", "staged"}
	decision.Warnings = []string{"policyholder_name and claimant captured from the same label \"Insured\""}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteSummary(&buf, decision))

	want := "\nSUMMARY\n" +
		strings.Repeat("-", 80) + "\n" +
		"Claim Type: bodily_injury\n" +
		"Recommended Route: SPECIALIST_QUEUE\n" +
		"Risk Flags: fraud, staged\n" +
		"Missing Fields: None\n" +
		"Warning: policyholder_name and claimant captured from the same label \"Insured\"\n" +
		"\nDecision Reasoning:\n" +
		"Injury-related claim requires specialist handling\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderer_WriteSummary_NoneValues(t *testing.T) {
	decision := model.ClaimDecision{
		ExtractedFields:  model.ExtractedFields{},
		MissingFields:    []string{"claim_type"},
		RecommendedRoute: model.RouteFastTrack,
		Reasoning:        "x",
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteSummary(&buf, decision))

	assert.Contains(t, buf.String(), "Claim Type: unknown\n")
	assert.Contains(t, buf.String(), "Recommended Route: FAST_TRACK\n")
	assert.Contains(t, buf.String(), "Risk Flags: None\n")
	assert.Contains(t, buf.String(), "Missing Fields: claim_type\n")
}

func TestRenderer_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(true).WriteMarkdown(&buf, "claim.txt", sampleDecision()))

	out := buf.String()
	assert.Contains(t, out, "# FNOL Routing Decision: claim.txt")
	assert.Contains(t, out, "**Route:** Specialist Queue")
	assert.Contains(t, out, "| location | A \\| B |")
	assert.Contains(t, out, "Generated by claimroute")

	buf.Reset()
	require.NoError(t, NewRenderer(false).WriteMarkdown(&buf, "claim.txt", sampleDecision()))
	assert.NotContains(t, buf.String(), "Generated by claimroute")
}

func TestRenderer_RenderFiles(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(true)

	jsonPath := filepath.Join(dir, "out.json")
	require.NoError(t, renderer.RenderJSON(sampleDecision(), jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var decoded model.ClaimDecision
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, model.RouteSpecialistQueue, decoded.RecommendedRoute)

	mdPath := filepath.Join(dir, "out.md")
	require.NoError(t, renderer.RenderMarkdown("claim.txt", sampleDecision(), mdPath))
	_, err = os.Stat(mdPath)
	assert.NoError(t, err)

	assert.Error(t, renderer.RenderJSON(sampleDecision(), filepath.Join(dir, "missing", "out.json")))
}

func TestClaimTypeCode(t *testing.T) {
	assert.Equal(t, "vehicle_damage", ClaimTypeCode(model.ExtractedFields{"claim_type": "Vehicle  Damage"}))
	assert.Equal(t, "bodily_injury_attachments", ClaimTypeCode(model.ExtractedFields{"claim_type": "Bodily Injury\nAttachments"}))
	assert.Equal(t, "unknown", ClaimTypeCode(nil))
}
