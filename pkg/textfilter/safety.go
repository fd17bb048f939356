// Package textfilter provides the local safety pre-filter applied before a
// prompt is sent to the generation backend, and the profanity post-filter
// applied to generated dialogue for family-friendly content ratings.
package textfilter

import "regexp"

// Terms that indicate the player is asking for real-world illegal activity
// or in-game cheating. Matched case-insensitively on word boundaries.
var bannedTerms = []string{
	"hack",
	"exploit",
	"cheat",
	"dupe",
	"aimbot",
	"wallhack",
	"ddos",
	"phish",
	"malware",
	"keylogger",
	"counterfeit",
	"launder",
}

// SafetyFilter scans outgoing prompt text for banned terms.
type SafetyFilter struct {
	patterns map[string]*regexp.Regexp
}

// NewSafetyFilter compiles the banned-term patterns once.
func NewSafetyFilter() *SafetyFilter {
	f := &SafetyFilter{patterns: make(map[string]*regexp.Regexp, len(bannedTerms))}
	for _, term := range bannedTerms {
		f.patterns[term] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return f
}

// MatchBannedTerm returns the first banned term found in text. The returned
// term is the canonical lowercase form, suitable for logging and metadata.
func (f *SafetyFilter) MatchBannedTerm(text string) (string, bool) {
	for _, term := range bannedTerms {
		if f.patterns[term].MatchString(text) {
			return term, true
		}
	}
	return "", false
}
