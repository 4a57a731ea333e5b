package recognize

import (
	"regexp"
	"strings"
)

var (
	// Bracket groups that carry no title information.
	checksumBracket = regexp.MustCompile(`[\[(][0-9A-Fa-f]{6,8}[\])]`)
	emptyBracket    = regexp.MustCompile(`(\[[ ,\-]*\])|(\([ ,\-]*\))`)

	// Tags that show up inside [] or () and mark the group as noise.
	noiseBracketContent = regexp.MustCompile(`(?i)^(\d{3,4}p|\d{3,4}\s?x\s?\d{3,4}|4k|uhd|fhd|hd|sd|s\d{1,2}|x26[45]|h\.?26[45]|hevc(-?10(bit)?)?|av1|avc|flac|aac(x\d)?|ac3|eac3|opus|mp3|10-?bits?|8-?bits?|hi10p|ma10p|web-?rip|web-?dl|bd-?rip|blu-?ray|dvd-?rip|hdtv|raw|batch|multiple subtitle|multi-?subs?|dual[ -]?audio|uncensored|v\d)$`)

	versionTag       = regexp.MustCompile(`(?i)\bv[1-9]\b`)
	trailingNoise    = regexp.MustCompile(`[ \-._]+$`)
	leadingNoise     = regexp.MustCompile(`^[ \-._]+`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	separatorRun     = regexp.MustCompile(`[._]+`)
	danglingHyphen   = regexp.MustCompile(`(^|\s)-(\s|$)`)
	bracketGroupExpr = regexp.MustCompile(`\[([^\]]*)\]|\(([^)]*)\)|\{([^}]*)\}`)
)

// Words stripped from titles regardless of position. Mirrors the tag soup that
// release groups append outside of brackets.
var noiseWords = map[string]bool{
	"mkv": true, "mp4": true, "avi": true, "mov": true, "webm": true,
	"x264": true, "x265": true, "h264": true, "h265": true, "hevc": true,
	"avc": true, "av1": true, "flac": true, "aac": true, "opus": true,
	"end": true, "final": true, "webrip": true, "bdrip": true, "bluray": true,
	"webdl": true, "web": true, "hdtv": true, "dvdrip": true, "10bit": true,
	"8bit": true, "hi10p": true, "uncensored": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true, ".flv": true,
	".wmv": true, ".ts": true, ".rmvb": true, ".webm": true, ".m2ts": true,
}

// IsVideoFile checks if the file is a video based on extension.
func IsVideoFile(path string) bool {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return false
	}
	return videoExtensions[strings.ToLower(path[dot:])]
}

// Normalize reduces a raw filename (or title fragment) to a comparable title
// string: lowercase, noise brackets removed, dot/underscore separators
// collapsed to spaces, noise words dropped. It is idempotent, so already
// normalized catalog titles pass through unchanged.
//
// Hyphens between digits are kept because they usually mark an episode range
// ("01-13"); everything else about ranges is the extractor's problem.
func Normalize(raw string) string {
	s := strings.ToLower(raw)

	s = stripExtension(s)
	s = checksumBracket.ReplaceAllString(s, " ")
	s = stripBrackets(s)
	s = versionTag.ReplaceAllString(s, " ")

	// Dots and underscores are word separators in release names.
	s = separatorRun.ReplaceAllString(s, " ")

	// A hyphen only separates words; between digits it is an episode range.
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == '-' {
			prevDigit := i > 0 && runes[i-1] >= '0' && runes[i-1] <= '9'
			nextDigit := i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9'
			if prevDigit && nextDigit {
				b.WriteRune(r)
				continue
			}
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if noiseWords[w] || isNoiseTag(w) {
			continue
		}
		kept = append(kept, w)
	}
	s = strings.Join(kept, " ")

	s = danglingHyphen.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = leadingNoise.ReplaceAllString(s, "")
	s = trailingNoise.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// stripBrackets runs the noise-bracket pass to a fixed point. The group regex
// stops at the first closing bracket, so a nested group sheds one bracket
// layer per pass; looping until stable keeps Normalize idempotent.
func stripBrackets(s string) string {
	for {
		next := stripNoiseBrackets(s)
		next = emptyBracket.ReplaceAllString(next, " ")
		if next == s {
			return s
		}
		s = next
	}
}

// stripNoiseBrackets removes bracketed groups whose content is a recognized
// tag (resolution, codec, source, checksum). Bracketed content that looks like
// part of a title (longer free text) is kept inline so the extractor can still
// see it.
func stripNoiseBrackets(s string) string {
	return bracketGroupExpr.ReplaceAllStringFunc(s, func(group string) string {
		inner := strings.Trim(group, "[](){}")
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return " "
		}
		if isNoiseTag(inner) {
			return " "
		}
		// Sub-group style tags: short, no spaces, not a dictionary-looking word
		// mix. Those are removed too; a real title fragment has spaces.
		if !strings.Contains(inner, " ") {
			return " "
		}
		// Multi-word groups: noise when every word is a known tag.
		allNoise := true
		for _, part := range strings.Fields(inner) {
			if !isNoiseTag(part) && !noiseWords[strings.ToLower(part)] {
				allNoise = false
				break
			}
		}
		if allNoise {
			return " "
		}
		return " " + inner + " "
	})
}

func isNoiseTag(s string) bool {
	return noiseBracketContent.MatchString(strings.TrimSpace(s))
}

func stripExtension(s string) string {
	for ext := range videoExtensions {
		if strings.HasSuffix(s, ext) {
			return strings.TrimSuffix(s, ext)
		}
	}
	return s
}

var diacriticFold = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a", "å", "a",
	"æ", "ae", "ç", "c", "è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ð", "d", "ñ", "n",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o", "ø", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u", "ý", "y", "ÿ", "y",
	"ß", "b", "ū", "u", "ō", "o", "ā", "a", "ē", "e", "ī", "i",
)

// foldDiacritics maps accented vowels to their plain ASCII forms. Official
// titles often carry macrons ("Shūmatsu") that nobody types in a filename, so
// comparisons run on the folded form while Normalize leaves the title as is.
func foldDiacritics(s string) string {
	return diacriticFold.Replace(s)
}
