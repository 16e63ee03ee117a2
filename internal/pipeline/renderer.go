package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/claimroute/internal/model"
)

const summaryRule = "--------------------------------------------------------------------------------"

// Renderer writes decisions as JSON, console summaries and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON writes any value as indented JSON without HTML escaping
func (r *Renderer) WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RenderJSON writes a value as JSON to path
func (r *Renderer) RenderJSON(v interface{}, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return r.WriteJSON(f, v)
}

// WriteSummary writes the human-readable decision summary
func (r *Renderer) WriteSummary(w io.Writer, decision model.ClaimDecision) error {
	var b strings.Builder

	b.WriteString("\nSUMMARY\n")
	b.WriteString(summaryRule + "\n")
	fmt.Fprintf(&b, "Claim Type: %s\n", ClaimTypeCode(decision.ExtractedFields))
	fmt.Fprintf(&b, "Recommended Route: %s\n", decision.RecommendedRoute.Code())
	fmt.Fprintf(&b, "Risk Flags: %s\n", joinOrNone(decision.FraudFlags))
	fmt.Fprintf(&b, "Missing Fields: %s\n", joinOrNone(decision.MissingFields))
	for _, warning := range decision.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}
	b.WriteString("\nDecision Reasoning:\n")
	b.WriteString(decision.Reasoning + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMarkdown writes a Markdown decision report
func (r *Renderer) WriteMarkdown(w io.Writer, source string, decision model.ClaimDecision) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# FNOL Routing Decision: %s\n\n", source)
	fmt.Fprintf(&b, "**Route:** %s\n\n", decision.RecommendedRoute)
	fmt.Fprintf(&b, "**Reasoning:** %s\n\n", decision.Reasoning)

	b.WriteString("## Extracted Fields\n\n")
	if len(decision.ExtractedFields) == 0 {
		b.WriteString("_No fields extracted._\n\n")
	} else {
		b.WriteString("| Field | Value |\n|---|---|\n")
		names := make([]string, 0, len(decision.ExtractedFields))
		for name := range decision.ExtractedFields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "| %s | %s |\n", name, markdownCell(decision.ExtractedFields[name]))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Missing Fields\n\n%s\n\n", joinOrNone(decision.MissingFields))
	fmt.Fprintf(&b, "## Risk Flags\n\n%s\n\n", joinOrNone(decision.FraudFlags))

	if len(decision.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, warning := range decision.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n_Generated by claimroute. Pattern-based intake triage; a human handler owns the final decision._\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMarkdown writes a Markdown report to path
func (r *Renderer) RenderMarkdown(source string, decision model.ClaimDecision, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return r.WriteMarkdown(f, source, decision)
}

// ClaimTypeCode lower-cases the claim type and joins words with underscores
// (e.g. "Bodily Injury" -> bodily_injury), or "unknown" when absent
func ClaimTypeCode(fields model.ExtractedFields) string {
	claimType := fields.Get(model.FieldClaimType)
	if claimType == "" {
		return "unknown"
	}
	return strings.Join(strings.Fields(strings.ToLower(claimType)), "_")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}
