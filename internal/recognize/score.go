package recognize

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Score compares two normalized titles and returns a similarity in [0,1].
// It blends token-set overlap (order-free, so "Show Example" still resembles
// "Example Show") with a character LCS term that rewards agreeing order.
// Symmetric by construction; 1.0 only for identical strings after diacritic
// folding, 0.0 when the token sets share nothing.
func Score(a, b string) float64 {
	a = foldDiacritics(strings.TrimSpace(a))
	b = foldDiacritics(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)

	overlap := jaccard(tokensA, tokensB)
	if overlap == 0 {
		return 0
	}

	lcs := float64(edlib.LCS(a, b))
	longer := float64(len(a))
	if len(b) > len(a) {
		longer = float64(len(b))
	}
	order := lcs / longer

	score := tokenWeight*overlap + orderWeight*order
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

const (
	tokenWeight = 0.6
	orderWeight = 0.4
)

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	union := len(set)
	shared := 0
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			shared++
		} else {
			union++
		}
	}
	return float64(shared) / float64(union)
}
