package moderation

import "regexp"

// Static moderation tables. These are compiled once at init and never mutated
// at runtime. Matching lowercases the input; there is no unicode-confusable or
// diacritic normalization.

// bannedWords are literal substrings that block a message outright,
// case-insensitively.
var bannedWords = []string{
	"kys",
	"kill yourself",
	"kill urself",
	"neck yourself",
	"go die",
	"unalive yourself",
	"slit your wrists",
}

// evasionPatterns catch spaced-out or leetspeak variants of the banned
// entries. A match blocks the message the same way a literal does.
var evasionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bk+\s*y+\s*s+\b`),
	regexp.MustCompile(`(?i)k[i1!|]+ll?\s*(?:y[o0]+u?r?self|u+r+\s*s[e3]+lf)`),
	regexp.MustCompile(`(?i)\bun[a4@]l[i1!|]v[e3]\b`),
	regexp.MustCompile(`(?i)n[e3]+ck\s*y[o0]+urs[e3]+lf`),
}

// flaggedWords is an intentionally broader list matched as whole words. A
// flagged verdict is informational only; no caller rejects on it.
var flaggedWords = []string{
	"hate",
	"stupid",
	"idiot",
	"ugly",
	"loser",
	"dumb",
	"trash",
	"creep",
	"kill",
	"die",
}

// bannedLiteralPatterns are the banned words as case-insensitive regexes, used
// by Filter to locate the exact spans to mask.
var bannedLiteralPatterns []*regexp.Regexp

// flaggedWordPatterns are word-boundary regexes over flaggedWords.
var flaggedWordPatterns []*regexp.Regexp

func init() {
	for _, w := range bannedWords {
		bannedLiteralPatterns = append(bannedLiteralPatterns,
			regexp.MustCompile(`(?i)`+regexp.QuoteMeta(w)))
	}
	for _, w := range flaggedWords {
		flaggedWordPatterns = append(flaggedWordPatterns,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
}
