package extract

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimroute/internal/model"
)

// FieldExtractor applies a compiled rule table to FNOL document text.
// It holds no per-document state and is safe for concurrent use.
type FieldExtractor struct {
	rules []Rule
}

// NewFieldExtractor compiles rules into a field extractor
func NewFieldExtractor(rules []model.ExtractionRule) (*FieldExtractor, error) {
	compiled, err := CompileRules(rules)
	if err != nil {
		return nil, err
	}
	return &FieldExtractor{rules: compiled}, nil
}

// Rules returns the compiled rule table
func (e *FieldExtractor) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Extraction is the result of one extraction pass
type Extraction struct {
	Fields   model.ExtractedFields
	Warnings []string // Fields captured from one shared label occurrence
}

// labelHit groups the fields whose match began at the same offset
type labelHit struct {
	label  string
	fields []string
}

// Extract runs every rule against the full text. The first match of each
// rule wins; captures are trimmed and empty captures are dropped.
func (e *FieldExtractor) Extract(text string) Extraction {
	fields := make(model.ExtractedFields, len(e.rules))
	hits := make(map[int]*labelHit)
	var offsets []int

	for _, r := range e.rules {
		loc := r.regex.FindStringSubmatchIndex(text)
		if loc == nil || loc[2] < 0 {
			continue
		}

		value := strings.TrimSpace(text[loc[2]:loc[3]])
		if value == "" {
			continue
		}
		fields[r.Field] = value

		hit, ok := hits[loc[0]]
		if !ok {
			hit = &labelHit{label: labelText(text[loc[0]:loc[2]])}
			hits[loc[0]] = hit
			offsets = append(offsets, loc[0])
		}
		hit.fields = append(hit.fields, r.Field)
	}

	var warnings []string
	for _, off := range offsets {
		hit := hits[off]
		if len(hit.fields) < 2 {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("%s captured from the same label %q",
			joinFields(hit.fields), hit.label))
	}

	return Extraction{
		Fields:   fields,
		Warnings: warnings,
	}
}

// labelText strips the separator that precedes a capture
func labelText(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ": \t\r\n")
}

func joinFields(fields []string) string {
	if len(fields) == 2 {
		return fields[0] + " and " + fields[1]
	}
	return strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1]
}
