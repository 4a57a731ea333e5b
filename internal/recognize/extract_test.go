package recognize

import (
	"testing"
)

func TestExtractFields(t *testing.T) {
	cases := []struct {
		Filename    string
		SubGroup    string
		Resolution  int
		Episode     *EpisodeRange
		IsBatch     bool
		TitleSpan   string
		Description string
	}{
		{
			Filename:   "[Erai-raws] Example Show - 12 [1080p][Multiple Subtitle].mkv",
			SubGroup:   "Erai-raws",
			Resolution: 1080,
			Episode:    &EpisodeRange{Start: 12, End: 12},
			TitleSpan:  "example show",
		},
		{
			Filename:   "Example.Show.S01.Complete.1080p.BDRip",
			Resolution: 1080,
			IsBatch:    true,
			TitleSpan:  "example show",
		},
		{
			Filename:   "[Group] Example Show - 01-13 [720p]",
			SubGroup:   "Group",
			Resolution: 720,
			Episode:    &EpisodeRange{Start: 1, End: 13},
			IsBatch:    true,
			TitleSpan:  "example show",
		},
		{
			Filename:  "Totally Unrelated Nonsense File.mkv",
			TitleSpan: "totally unrelated nonsense file",
		},
		{
			Filename: "",
		},
		{
			Filename:   "[1080p][Nice Group] Example Show - 02.mkv",
			SubGroup:   "Nice Group",
			Resolution: 1080,
			Episode:    &EpisodeRange{Start: 2, End: 2},
			TitleSpan:  "example show",
		},
		{
			Filename:   "Example Show S02E07 1920x1080.mkv",
			Resolution: 1080,
			Episode:    &EpisodeRange{Start: 7, End: 7},
			TitleSpan:  "example show",
		},
		{
			Filename:  "Example Show - Episode 3.mkv",
			Episode:   &EpisodeRange{Start: 3, End: 3},
			TitleSpan: "example show",
		},
		{
			// Year is part of the title, not an episode.
			Filename:  "Example Show 1999.mkv",
			TitleSpan: "example show 1999",
		},
		{
			// Bare 3-digit number without a unit is an episode.
			Filename:  "Example Show - 120.mkv",
			Episode:   &EpisodeRange{Start: 120, End: 120},
			TitleSpan: "example show",
		},
	}

	for _, c := range cases {
		f := ExtractFields(c.Filename)
		if f.SubGroup != c.SubGroup {
			t.Errorf("%q: sub group = %q, expected %q", c.Filename, f.SubGroup, c.SubGroup)
		}
		if f.Resolution != c.Resolution {
			t.Errorf("%q: resolution = %d, expected %d", c.Filename, f.Resolution, c.Resolution)
		}
		if f.IsBatch != c.IsBatch {
			t.Errorf("%q: is batch = %v, expected %v", c.Filename, f.IsBatch, c.IsBatch)
		}
		if f.TitleSpan != c.TitleSpan {
			t.Errorf("%q: title span = %q, expected %q", c.Filename, f.TitleSpan, c.TitleSpan)
		}
		if (f.Episode == nil) != (c.Episode == nil) {
			t.Errorf("%q: episode = %v, expected %v", c.Filename, f.Episode, c.Episode)
			continue
		}
		if f.Episode != nil && (f.Episode.Start != c.Episode.Start || f.Episode.End != c.Episode.End) {
			t.Errorf("%q: episode = %v, expected %v", c.Filename, *f.Episode, *c.Episode)
		}
	}
}

func TestExtractPreDash(t *testing.T) {
	f := ExtractFields("[Grp] Example Show - The Journey Continues - 05 [1080p].mkv")
	if f.TitleSpan != "example show the journey continues" {
		t.Errorf("title span = %q", f.TitleSpan)
	}
	if f.PreDash != "example show" {
		t.Errorf("pre-dash span = %q, expected %q", f.PreDash, "example show")
	}

	// No dash left after the episode is cut away.
	f = ExtractFields("[Grp] Example Show - 05.mkv")
	if f.PreDash != "" {
		t.Errorf("pre-dash span = %q, expected empty", f.PreDash)
	}
}

func TestExtractFieldsNeverPanics(t *testing.T) {
	inputs := []string{"", ".", "[[[", "]]]", "-", "1", "....mkv", "[]() {}"}
	for _, in := range inputs {
		_ = ExtractFields(in)
	}
}

func TestEpisodeRangeLength(t *testing.T) {
	r := EpisodeRange{Start: 1, End: 13}
	if r.Length() != 13 {
		t.Errorf("range length = %d, expected 13", r.Length())
	}
	single := EpisodeRange{Start: 5, End: 5}
	if single.Length() != 1 {
		t.Errorf("single episode length = %d, expected 1", single.Length())
	}
}
