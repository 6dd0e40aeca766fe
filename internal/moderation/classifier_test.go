package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_BannedLiterals(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"lowercase", "just kys already"},
		{"uppercase", "KYS"},
		{"mixed case", "Kill Yourself"},
		{"embedded in sentence", "nobody cares, go die somewhere"},
		{"no surrounding spaces", "ikysi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, VerdictBlocked, Classify(tt.text))
		})
	}
}

func TestClassify_EvasionPatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"spaced out", "you should just ky s already"},
		{"repeated letters", "kkyyyss"},
		{"leetspeak kill yourself", "k1ll y0urself"},
		{"leetspeak unalive", "just un4l1ve yourself"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, VerdictBlocked, Classify(tt.text))
		})
	}
}

func TestClassify_FlaggedWords(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"hate", "i hate monday lectures"},
		{"stupid", "this assignment is Stupid"},
		{"loser", "what a loser move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, VerdictFlagged, Classify(tt.text))
		})
	}
}

func TestClassify_Safe(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain text", "selling my bike, barely used"},
		{"empty", ""},
		{"flagged word inside another word", "my diet starts monday"},
		{"kill inside another word", "skillful means capable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, VerdictSafe, Classify(tt.text))
		})
	}
}

func TestClassify_BannedWinsOverFlagged(t *testing.T) {
	// "kill yourself" contains the flagged word "kill" but must block.
	assert.Equal(t, VerdictBlocked, Classify("kill yourself"))
}
