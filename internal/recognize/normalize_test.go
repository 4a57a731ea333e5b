package recognize

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		In       string
		Expected string
	}{
		{"[SubGroup] Show Name - 12 [1080p].mkv", "show name 12"},
		{"Show_Name_S01_x265.mkv", "show name"},
		{"Show.Name.BDRip.FLAC", "show name"},
		{"  Show Name - ", "show name"},
		{"[ABCD1234] Show Name", "show name"},
		{"", ""},
		{"...", ""},
		{"Show Name (Yet Another Arc)", "show name yet another arc"},
	}

	for _, c := range cases {
		got := Normalize(c.In)
		if got != c.Expected {
			t.Errorf("Normalize(%q) = %q, expected %q", c.In, got, c.Expected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"[Erai-raws] Example Show - 12 [1080p][Multiple Subtitle].mkv",
		"Example.Show.S01.Complete.1080p.BDRip",
		"Shūmatsu Nani Shitemasu ka",
		"Show Name 01-13",
		"",
		"___...---",
		"Totally Normal Title",
		"[a [b] c] Show Name - 05",
		"[[Nested]] Show - 01",
		"(outer (inner) tag) Show Name",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeNestedBrackets(t *testing.T) {
	// The group regex stops at the first closing bracket; nested groups must
	// still be fully consumed in a single call.
	got := Normalize("[a [b] c] Show Name - 05")
	if got != "a b c show name 05" {
		t.Errorf("nested brackets not fully consumed, got %q", got)
	}
}

func TestNormalizeKeepsDiacritics(t *testing.T) {
	got := Normalize("Shūmatsu no Harem")
	if got != "shūmatsu no harem" {
		t.Errorf("diacritics should survive normalization, got %q", got)
	}
}

func TestNormalizeKeepsDigitRanges(t *testing.T) {
	got := Normalize("Show Name 01-13")
	if got != "show name 01-13" {
		t.Errorf("digit-hyphen-digit must survive for the extractor, got %q", got)
	}
}

func TestIsVideoFile(t *testing.T) {
	if !IsVideoFile("dir/show - 01.mkv") {
		t.Error("mkv should be a video file")
	}
	if IsVideoFile("notes.txt") {
		t.Error("txt is not a video file")
	}
	if IsVideoFile("no-extension") {
		t.Error("extensionless path is not a video file")
	}
}
