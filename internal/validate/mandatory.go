package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimroute/internal/model"
)

// MandatoryValidator checks extracted fields against the mandatory-field checklist
type MandatoryValidator struct {
	required []model.MandatoryField
}

// NewMandatoryValidator creates a validator over the given checklist
func NewMandatoryValidator(required []model.MandatoryField) (*MandatoryValidator, error) {
	seen := make(map[string]bool, len(required))
	list := make([]model.MandatoryField, 0, len(required))

	for i, f := range required {
		name := strings.TrimSpace(f.Field)
		if name == "" {
			return nil, fmt.Errorf("mandatory field %d: empty name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("mandatory field %d: duplicate %q", i, name)
		}
		seen[name] = true
		list = append(list, model.MandatoryField{Field: name, Category: f.Category})
	}

	return &MandatoryValidator{required: list}, nil
}

// Required returns the checklist in declaration order
func (v *MandatoryValidator) Required() []model.MandatoryField {
	out := make([]model.MandatoryField, len(v.required))
	copy(out, v.required)
	return out
}

// Validate returns every mandatory field absent from fields, in checklist
// order. Values are not inspected: a malformed value still counts as present.
func (v *MandatoryValidator) Validate(fields model.ExtractedFields) model.MissingFieldReport {
	missing := make(model.MissingFieldReport, 0)
	for _, f := range v.required {
		if !fields.Has(f.Field) {
			missing = append(missing, f)
		}
	}
	return missing
}
