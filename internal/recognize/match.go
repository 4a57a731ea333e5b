package recognize

import (
	"sort"
	"strings"
)

// Config carries the tunables for matching. The 0.65 acceptance default is
// shared with the UI's pass/fail coloring; keep the two in sync through
// configuration, never by editing one of them.
type Config struct {
	AcceptanceThreshold float64
	SecondaryThreshold  float64
	ExtraNoiseTokens    []string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		AcceptanceThreshold: 0.65,
		SecondaryThreshold:  0.3,
	}
}

// Candidate is one catalog entry as the matcher sees it: an id plus every
// title variant (romaji/english/native/synonyms/custom) it may appear under.
type Candidate struct {
	ID     int
	Titles []string
}

// Result is the outcome of resolving one filename. MatchedID is nil when no
// candidate cleared the acceptance threshold; Confidence still carries the
// best score achieved so callers can tell "close but rejected" from "nothing
// even close". The extracted fields are filled in either way.
type Result struct {
	MatchedID    *int          `json:"matched_id"`
	MatchedTitle string        `json:"matched_title"`
	Confidence   float64       `json:"confidence"`
	Title        string        `json:"title"`
	Episode      *EpisodeRange `json:"episode"`
	Resolution   int           `json:"resolution"`
	SubGroup     string        `json:"sub_group"`
	IsBatch      bool          `json:"is_batch"`
}

// Resolve runs the full pipeline over one filename: field extraction, then the
// extracted title span against every candidate's title variants. Pure function
// of its inputs; candidates are read-only and may be shared across goroutines.
func Resolve(filename string, candidates []Candidate, cfg Config) Result {
	for _, tok := range cfg.ExtraNoiseTokens {
		if tok != "" {
			filename = strings.ReplaceAll(filename, tok, " ")
		}
	}

	fields := ExtractFields(filename)
	res := Result{
		Title:      fields.TitleSpan,
		Episode:    fields.Episode,
		Resolution: fields.Resolution,
		SubGroup:   fields.SubGroup,
		IsBatch:    fields.IsBatch,
	}
	if fields.TitleSpan == "" || len(candidates) == 0 {
		return res
	}

	best := pickBest(fields.TitleSpan, candidates, cfg)

	// Retry on the pre-dash part: "Title - Arc Name" often only matches on
	// "Title". Keep whichever attempt scored higher.
	if best.score < cfg.AcceptanceThreshold && fields.PreDash != "" && fields.PreDash != fields.TitleSpan {
		retry := pickBest(fields.PreDash, candidates, cfg)
		if retry.score > best.score {
			best = retry
		}
	}

	res.Confidence = best.score
	if best.score >= cfg.AcceptanceThreshold && best.id != 0 {
		id := best.id
		res.MatchedID = &id
		res.MatchedTitle = best.title
	}
	return res
}

type bestMatch struct {
	id     int
	title  string
	score  float64
	exact  bool
	strong int // variants above the secondary threshold
}

// pickBest scans every candidate and keeps the highest scorer. Ties go to the
// candidate with an exact variant match, then to the one with more variants
// above the secondary threshold, then to the lowest id so results are stable.
func pickBest(title string, candidates []Candidate, cfg Config) bestMatch {
	// Deterministic iteration regardless of how the snapshot was assembled.
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var best bestMatch
	folded := foldDiacritics(title)
	for _, c := range ordered {
		var cur bestMatch
		cur.id = c.ID
		for _, variant := range c.Titles {
			normalized := Normalize(variant)
			if normalized == "" {
				continue
			}
			s := Score(title, normalized)
			if s > cur.score {
				cur.score = s
				cur.title = variant
			}
			if foldDiacritics(normalized) == folded {
				cur.exact = true
			}
			if s >= cfg.SecondaryThreshold {
				cur.strong++
			}
		}
		if betterMatch(cur, best) {
			best = cur
		}
	}
	return best
}

func betterMatch(a, b bestMatch) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.exact != b.exact {
		return a.exact
	}
	if a.strong != b.strong {
		return a.strong > b.strong
	}
	// Equal on all counts: the earlier (lower id) candidate wins, and ordered
	// iteration already visited it first.
	return false
}
