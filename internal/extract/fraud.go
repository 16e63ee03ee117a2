package extract

import (
	"strings"

	"github.com/ppiankov/claimroute/internal/model"
)

// FraudScanner flags risk keywords in the incident description
type FraudScanner struct {
	keywords []string
}

// NewFraudScanner creates a scanner over the given lexicon.
// Keywords are lower-cased; blanks and repeats are dropped.
func NewFraudScanner(keywords []string) *FraudScanner {
	seen := make(map[string]bool, len(keywords))
	lexicon := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		lexicon = append(lexicon, kw)
	}

	return &FraudScanner{keywords: lexicon}
}

// Keywords returns the active lexicon
func (s *FraudScanner) Keywords() []string {
	out := make([]string, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// Scan checks the description field for lexicon keywords. A missing
// description scans as empty text. Flags come back in lexicon order,
// each keyword at most once; nil means nothing matched.
func (s *FraudScanner) Scan(fields model.ExtractedFields) model.FraudFlags {
	lower := strings.ToLower(fields.Get(model.FieldDescription))

	var flags model.FraudFlags
	for _, keyword := range s.keywords {
		if strings.Contains(lower, keyword) {
			flags = append(flags, keyword)
		}
	}

	return flags
}
