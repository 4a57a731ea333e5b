package recognize

import (
	"testing"
)

func TestScoreIdentity(t *testing.T) {
	inputs := []string{"example show", "shūmatsu no harem", "a", "one two three"}
	for _, in := range inputs {
		if got := Score(in, in); got != 1.0 {
			t.Errorf("Score(%q, %q) = %f, expected 1.0", in, in, got)
		}
	}
}

func TestScoreDisjoint(t *testing.T) {
	if got := Score("example show", "totally unrelated nonsense"); got != 0.0 {
		t.Errorf("disjoint token sets should score 0, got %f", got)
	}
}

func TestScoreEmpty(t *testing.T) {
	if got := Score("", "example show"); got != 0.0 {
		t.Errorf("empty input should score 0, got %f", got)
	}
	if got := Score("", ""); got != 0.0 {
		t.Errorf("two empty inputs should score 0, got %f", got)
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"example show", "example show 2nd season"},
		{"show example", "example show"},
		{"one two", "two three"},
		{"shūmatsu", "shumatsu"},
	}
	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q, %q) = %f but reversed = %f", p[0], p[1], ab, ba)
		}
	}
}

func TestScoreBounded(t *testing.T) {
	pairs := [][2]string{
		{"example show", "example show 2nd season"},
		{"a b c d e f", "a"},
		{"x", "y"},
		{"long title with many words here", "long title"},
	}
	for _, p := range pairs {
		s := Score(p[0], p[1])
		if s < 0.0 || s > 1.0 {
			t.Errorf("Score(%q, %q) = %f, out of [0,1]", p[0], p[1], s)
		}
	}
}

func TestScoreDiacriticFolding(t *testing.T) {
	// Catalog titles carry macrons, filenames do not.
	if got := Score("shūmatsu nani shitemasu ka", "shumatsu nani shitemasu ka"); got != 1.0 {
		t.Errorf("folded titles should be identical, got %f", got)
	}
}

func TestScoreReorderTolerance(t *testing.T) {
	// Same tokens in a different order must stay a strong match.
	got := Score("example show", "show example")
	if got < 0.7 || got >= 1.0 {
		t.Errorf("reordered tokens should score high but below 1.0, got %f", got)
	}
}

func TestScoreSubstring(t *testing.T) {
	// A strict superset title degrades but never collapses to 0.
	got := Score("example show", "example show 2nd season")
	if got <= 0.0 || got >= 1.0 {
		t.Errorf("substring relation should score in (0,1), got %f", got)
	}
}
