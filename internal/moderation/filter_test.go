package moderation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_MasksBannedLiterals(t *testing.T) {
	assert.Equal(t, "*** now", Filter("kys now"))
	assert.Equal(t, "please ************* thanks", Filter("please kill yourself thanks"))
}

func TestFilter_MasksEvasionMatches(t *testing.T) {
	out := Filter("you should just ky s already")
	assert.Equal(t, "you should just **** already", out)
}

func TestFilter_PreservesLength(t *testing.T) {
	inputs := []string{
		"kys",
		"please kill yourself thanks",
		"you should just ky s already",
		"nothing wrong here",
		"",
	}
	for _, in := range inputs {
		out := Filter(in)
		assert.Equal(t, len([]rune(in)), len([]rune(out)), "input %q", in)
	}
}

func TestFilter_MaskedSpansAreOnlyStars(t *testing.T) {
	out := Filter("kys and go die")
	masked := strings.Count(out, "*")
	assert.Equal(t, len("kys")+len("go die"), masked)
	assert.NotContains(t, out, "kys")
	assert.NotContains(t, out, "go die")
}

func TestFilter_Idempotent(t *testing.T) {
	inputs := []string{
		"kys now",
		"you should just ky s already",
		"clean message",
	}
	for _, in := range inputs {
		once := Filter(in)
		assert.Equal(t, once, Filter(once), "input %q", in)
	}
}

func TestFilter_LeavesCleanTextAlone(t *testing.T) {
	in := "selling a barely used desk lamp"
	assert.Equal(t, in, Filter(in))
}
