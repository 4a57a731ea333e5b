package recognize

import (
	"regexp"
	"strconv"
	"strings"
)

// EpisodeRange is a single episode (Start == End) or a batch span.
type EpisodeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Length returns the number of episodes the range covers.
func (r EpisodeRange) Length() int {
	return r.End - r.Start + 1
}

// Fields holds everything pulled out of a filename besides the title itself.
// Zero values mean unknown: Resolution 0, Episode nil, SubGroup "".
type Fields struct {
	SubGroup   string        `json:"sub_group"`
	Resolution int           `json:"resolution"`
	Episode    *EpisodeRange `json:"episode"`
	IsBatch    bool          `json:"is_batch"`
	TitleSpan  string        `json:"title_span"`

	// PreDash is the title up to the first " - " separator, normalized. Kept
	// for a second matching attempt: "Title - Subtitle" filenames often carry
	// a subtitle no catalog variant has. Empty when the span has no dash.
	PreDash string `json:"pre_dash"`
}

var (
	leadBracket = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*`)

	// Resolution must carry an explicit unit; a bare "1080" is an episode
	// number until proven otherwise.
	resolutionP  = regexp.MustCompile(`(?i)\b(\d{3,4})[pP]\b`)
	resolutionWH = regexp.MustCompile(`(?i)\b\d{3,4} ?[xX] ?(\d{3,4})\b`)
	resolutionKW = regexp.MustCompile(`(?i)\b(4k|uhd|fhd|hd|sd)\b`)

	batchWord = regexp.MustCompile(`(?i)\b(complete|batch|season ?pack)\b`)

	// Ordered from most to least specific, same as the matcher that shipped
	// with the tracker this feeds.
	episodeRange    = regexp.MustCompile(`(^|[^sSvV\dx])(\d{1,4})[&-](\d{1,4})($|[^\d])`)
	episodeDashWord = regexp.MustCompile(`(?i) - episode (\d{1,4})`)
	episodeSxxEyy   = regexp.MustCompile(`(?i)\bs\d{1,2} ?e[p]? ?(\d{1,4})\b`)
	episodeWord     = regexp.MustCompile(`(?i)\b(?:episode|ep|e) ?(\d{1,4})\b`)
	episodeDash     = regexp.MustCompile(` - (\d{1,4})`)
	episodeLoose    = regexp.MustCompile(`(^|[^sSvV\dx])(\d{1,4})($|[^\d])`)
)

var namedResolutions = map[string]int{
	"4k": 2160, "uhd": 2160, "fhd": 1080, "hd": 720, "sd": 480,
}

// ExtractFields pulls the structured metadata out of a raw release filename.
// It never fails; anything ambiguous stays at its unknown value. The leading
// bracket group is assumed to be the sub-group unless its content is itself a
// resolution/codec/checksum tag — filenames with several non-noise bracket
// groups before the title will mis-assign it, there is no reliable rule.
func ExtractFields(raw string) Fields {
	var f Fields
	work := stripExtension(strings.TrimSpace(raw))
	if work == "" {
		f.TitleSpan = ""
		return f
	}

	work = strings.ReplaceAll(work, "_", " ")
	if strings.Count(work, ".") > 5 {
		work = strings.ReplaceAll(work, ".", " ")
	}
	work = checksumBracket.ReplaceAllString(work, " ")

	// Sub-group: leading bracket groups, skipping the ones that are tags.
	// A skipped tag may still be the resolution ("[1080p][Group] Title").
	for {
		m := leadBracket.FindStringSubmatch(work)
		if m == nil {
			break
		}
		work = strings.TrimPrefix(work, m[0])
		if !isNoiseTag(m[1]) {
			f.SubGroup = strings.TrimSpace(m[1])
			break
		}
		if f.Resolution == 0 {
			f.Resolution = parseResolution(m[1])
		}
	}

	// Resolution before episode, so "1080p" can never be read as episode 1080.
	if m := resolutionP.FindStringSubmatch(work); m != nil {
		if f.Resolution == 0 {
			f.Resolution, _ = strconv.Atoi(m[1])
		}
		work = resolutionP.ReplaceAllString(work, " ")
	} else if m := resolutionWH.FindStringSubmatch(work); m != nil {
		if f.Resolution == 0 {
			f.Resolution, _ = strconv.Atoi(m[1])
		}
		work = resolutionWH.ReplaceAllString(work, " ")
	} else if m := resolutionKW.FindStringSubmatch(work); m != nil {
		if f.Resolution == 0 {
			f.Resolution = namedResolutions[strings.ToLower(m[1])]
		}
		work = resolutionKW.ReplaceAllString(work, " ")
	}

	if batchWord.MatchString(work) {
		f.IsBatch = true
		work = batchWord.ReplaceAllString(work, " ")
	}

	work = stripBrackets(work)
	work = versionTag.ReplaceAllString(work, " ")

	// Episode number or range. The title is everything left of the match.
	if span, ep := findEpisode(work); ep != nil {
		f.Episode = ep
		if ep.End > ep.Start {
			f.IsBatch = true
		}
		if idx := strings.LastIndex(work, span); idx >= 0 {
			work = work[:idx]
		}
	}

	f.TitleSpan = Normalize(work)
	// The dash is gone after Normalize, so the split has to happen here.
	if idx := strings.Index(work, " - "); idx > 0 {
		f.PreDash = Normalize(work[:idx])
	}
	return f
}

// findEpisode returns the matched substring and the parsed range, or nil when
// no plausible episode number exists.
func findEpisode(s string) (string, *EpisodeRange) {
	// Range first: "01-13", "01&13". Yearish pairs are not ranges.
	if idx := episodeRange.FindStringSubmatchIndex(s); idx != nil {
		start, _ := strconv.Atoi(s[idx[4]:idx[5]])
		end, _ := strconv.Atoi(s[idx[6]:idx[7]])
		if end > start && isLikelyEpisode(start) && isLikelyEpisode(end) {
			return s[idx[4]:idx[7]], &EpisodeRange{Start: start, End: end}
		}
	}

	patterns := []*regexp.Regexp{episodeDashWord, episodeSxxEyy, episodeWord, episodeDash}
	for _, p := range patterns {
		// Last match wins: numbers early in the string belong to the title.
		all := p.FindAllStringSubmatch(s, -1)
		for i := len(all) - 1; i >= 0; i-- {
			if n, _ := strconv.Atoi(all[i][1]); isLikelyEpisode(n) {
				return all[i][0], &EpisodeRange{Start: n, End: n}
			}
		}
	}

	// Loose fallback: the last standalone number that is not a year,
	// resolution or codec.
	all := episodeLoose.FindAllStringSubmatch(s, -1)
	for i := len(all) - 1; i >= 0; i-- {
		n, _ := strconv.Atoi(all[i][2])
		if isLikelyEpisode(n) {
			return all[i][2], &EpisodeRange{Start: n, End: n}
		}
	}
	return "", nil
}

// parseResolution reads a canonical pixel height out of a single tag, or 0.
func parseResolution(tag string) int {
	if m := resolutionP.FindStringSubmatch(tag); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := resolutionWH.FindStringSubmatch(tag); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := resolutionKW.FindStringSubmatch(tag); m != nil {
		return namedResolutions[strings.ToLower(m[1])]
	}
	return 0
}

func isLikelyEpisode(n int) bool {
	if n <= 0 {
		return false
	}
	switch n {
	case 480, 720, 1080, 2160, 264, 265:
		return false
	}
	if n >= 1900 && n < 2100 {
		return false
	}
	return true
}
