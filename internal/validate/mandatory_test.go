package validate

import (
	"testing"

	"github.com/ppiankov/claimroute/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeFields() model.ExtractedFields {
	fields := make(model.ExtractedFields)
	for _, f := range model.DefaultMandatoryFields() {
		fields[f.Field] = "x"
	}
	return fields
}

func TestMandatoryValidator_Complete(t *testing.T) {
	v, err := NewMandatoryValidator(model.DefaultMandatoryFields())
	require.NoError(t, err)

	missing := v.Validate(completeFields())
	require.NotNil(t, missing)
	assert.Empty(t, missing)
	assert.Equal(t, []string{}, missing.Names())
}

func TestMandatoryValidator_EmptyFields(t *testing.T) {
	v, err := NewMandatoryValidator(model.DefaultMandatoryFields())
	require.NoError(t, err)

	missing := v.Validate(model.ExtractedFields{})
	assert.Equal(t, []string{
		"policy_number", "policyholder_name", "incident_date", "incident_time", "location",
		"description", "claimant", "asset_type", "estimated_damage", "claim_type",
	}, missing.Names())
}

func TestMandatoryValidator_ChecklistOrder(t *testing.T) {
	v, err := NewMandatoryValidator(model.DefaultMandatoryFields())
	require.NoError(t, err)

	fields := completeFields()
	delete(fields, "claim_type")
	delete(fields, "policy_number")
	delete(fields, "asset_type")

	missing := v.Validate(fields)
	assert.Equal(t, []string{"policy_number", "asset_type", "claim_type"}, missing.Names())
	assert.Equal(t, "Policy Information", missing[0].Category)
	assert.Equal(t, "Asset Details", missing[1].Category)
}

func TestMandatoryValidator_OptionalFieldsIgnored(t *testing.T) {
	v, err := NewMandatoryValidator(model.DefaultMandatoryFields())
	require.NoError(t, err)

	fields := completeFields()
	delete(fields, "contact_details")
	delete(fields, "asset_id")
	assert.Empty(t, v.Validate(fields))
}

func TestMandatoryValidator_ValueContentNotChecked(t *testing.T) {
	v, err := NewMandatoryValidator([]model.MandatoryField{{Field: "incident_date"}})
	require.NoError(t, err)

	assert.Empty(t, v.Validate(model.ExtractedFields{"incident_date": "99-99-9999"}))
}

func TestNewMandatoryValidator_Rejects(t *testing.T) {
	_, err := NewMandatoryValidator([]model.MandatoryField{{Field: " "}})
	assert.ErrorContains(t, err, "empty name")

	_, err = NewMandatoryValidator([]model.MandatoryField{{Field: "location"}, {Field: "location"}})
	assert.ErrorContains(t, err, `duplicate "location"`)
}

func TestMandatoryValidator_EmptyChecklist(t *testing.T) {
	v, err := NewMandatoryValidator(nil)
	require.NoError(t, err)

	assert.Empty(t, v.Validate(model.ExtractedFields{}))
	assert.Empty(t, v.Required())
}

func TestMandatoryValidator_RequiredCopy(t *testing.T) {
	v, err := NewMandatoryValidator(model.DefaultMandatoryFields())
	require.NoError(t, err)

	required := v.Required()
	required[0].Field = "changed"
	assert.Equal(t, "policy_number", v.Required()[0].Field)
}
