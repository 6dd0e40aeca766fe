package moderation

import "strings"

// Filter masks every banned-literal match and every evasion-pattern match with
// a run of '*' of the same length. Literals are masked first, then the
// patterns run over the already-masked text. Output length always equals
// input length, and running Filter on its own output changes nothing.
func Filter(text string) string {
	out := text
	for _, p := range bannedLiteralPatterns {
		out = p.ReplaceAllStringFunc(out, mask)
	}
	for _, p := range evasionPatterns {
		out = p.ReplaceAllStringFunc(out, mask)
	}
	return out
}

func mask(match string) string {
	return strings.Repeat("*", len([]rune(match)))
}
