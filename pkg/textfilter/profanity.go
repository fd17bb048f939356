package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Replacements for common US English profanity, applied to generated
// dialogue when the content rating calls for filtering. NPC dialogue comes
// straight from the model, so the engine cleans it up rather than refusing.
var profanityReplacements = map[string]string{
	"fuck":     "fudge",
	"shit":     "shoot",
	"damn":     "dang",
	"hell":     "heck",
	"ass":      "butt",
	"bitch":    "jerk",
	"bastard":  "jerk",
	"crap":     "crud",
	"bullshit": "baloney",
	"goddamn":  "gosh-dang",
	"asshole":  "jerk",
	"dumbass":  "dummy",
	"prick":    "jerk",
	"dick":     "jerk",
	"piss":     "ticked",
}

// ProfanityFilter rewrites profanity in dialogue with tame alternatives,
// preserving the case pattern of the original word.
type ProfanityFilter struct {
	patterns map[string]*regexp.Regexp
}

// NewProfanityFilter precompiles a word-boundary pattern per entry.
func NewProfanityFilter() *ProfanityFilter {
	f := &ProfanityFilter{patterns: make(map[string]*regexp.Regexp, len(profanityReplacements))}
	for word := range profanityReplacements {
		f.patterns[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return f
}

// FilterDialogue replaces each profanity with its alternative.
func (f *ProfanityFilter) FilterDialogue(text string) string {
	result := text
	for word, replacement := range profanityReplacements {
		result = f.patterns[word].ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}
	return result
}

// ShouldFilterContent reports whether dialogue for the given content rating
// must pass through the profanity filter.
func ShouldFilterContent(rating string) bool {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "G", "PG", "PG13", "PG-13":
		return true
	default:
		return false
	}
}

// preserveCase applies the case pattern of the original word to the
// replacement.
func preserveCase(original, replacement string) string {
	if original == "" {
		return replacement
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case: mirror the original character by character.
	originalRunes := []rune(original)
	result := make([]rune, 0, len(replacement))
	for i, r := range []rune(replacement) {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}
