// Package moderation classifies and masks user-submitted text against static
// word lists. All functions are pure; the tables live in wordlists.go.
package moderation

import "strings"

// Verdict is the severity assigned to a piece of text.
type Verdict string

const (
	// VerdictSafe means the text matched nothing.
	VerdictSafe Verdict = "safe"
	// VerdictFlagged means the text contains a word from the broader flagged
	// list. Informational only; callers do not reject flagged text.
	VerdictFlagged Verdict = "flagged"
	// VerdictBlocked means the text contains a banned word or matches an
	// evasion pattern and must not be persisted.
	VerdictBlocked Verdict = "blocked"
)

// Classify maps free text to a severity verdict. Banned literals and evasion
// patterns take precedence over the flagged list.
func Classify(text string) Verdict {
	lower := strings.ToLower(text)

	for _, w := range bannedWords {
		if strings.Contains(lower, w) {
			return VerdictBlocked
		}
	}
	for _, p := range evasionPatterns {
		if p.MatchString(text) {
			return VerdictBlocked
		}
	}
	for _, p := range flaggedWordPatterns {
		if p.MatchString(text) {
			return VerdictFlagged
		}
	}
	return VerdictSafe
}
