package recognize

import (
	"testing"
)

func testCandidates() []Candidate {
	return []Candidate{
		{ID: 100, Titles: []string{"Example Show", "Tatoeba Bangumi"}},
		{ID: 200, Titles: []string{"Another Program", "Another Program 2nd Season"}},
		{ID: 300, Titles: []string{"Shūmatsu Quest"}},
	}
}

func TestResolveScenarios(t *testing.T) {
	cfg := DefaultConfig()
	catalog := testCandidates()

	cases := []struct {
		Filename   string
		MatchedID  int // 0 = expect no match
		Episode    *EpisodeRange
		Resolution int
		SubGroup   string
		IsBatch    bool
	}{
		{
			Filename:   "[Erai-raws] Example Show - 12 [1080p][Multiple Subtitle].mkv",
			MatchedID:  100,
			Episode:    &EpisodeRange{Start: 12, End: 12},
			Resolution: 1080,
			SubGroup:   "Erai-raws",
		},
		{
			Filename:   "Example.Show.S01.Complete.1080p.BDRip",
			MatchedID:  100,
			Resolution: 1080,
			IsBatch:    true,
		},
		{
			Filename: "Totally Unrelated Nonsense File.mkv",
		},
		{
			Filename:   "[Group] Example Show - 01-13 [720p]",
			MatchedID:  100,
			Episode:    &EpisodeRange{Start: 1, End: 13},
			Resolution: 720,
			SubGroup:   "Group",
			IsBatch:    true,
		},
		{
			Filename: "",
		},
		{
			// Synonym variant should match the same id.
			Filename:  "Tatoeba Bangumi - 05.mkv",
			MatchedID: 100,
			Episode:   &EpisodeRange{Start: 5, End: 5},
		},
		{
			// Filename without macrons against a catalog title with them.
			Filename:  "Shumatsu Quest - 02.mkv",
			MatchedID: 300,
			Episode:   &EpisodeRange{Start: 2, End: 2},
		},
	}

	for _, c := range cases {
		res := Resolve(c.Filename, catalog, cfg)

		if c.MatchedID == 0 {
			if res.MatchedID != nil {
				t.Errorf("%q: expected no match, got id %d (confidence %f)", c.Filename, *res.MatchedID, res.Confidence)
			}
			if res.Confidence >= cfg.AcceptanceThreshold {
				t.Errorf("%q: unmatched result has confidence %f above threshold", c.Filename, res.Confidence)
			}
		} else {
			if res.MatchedID == nil {
				t.Errorf("%q: expected id %d, got no match (confidence %f)", c.Filename, c.MatchedID, res.Confidence)
			} else if *res.MatchedID != c.MatchedID {
				t.Errorf("%q: matched id = %d, expected %d", c.Filename, *res.MatchedID, c.MatchedID)
			}
		}
		if res.Resolution != c.Resolution {
			t.Errorf("%q: resolution = %d, expected %d", c.Filename, res.Resolution, c.Resolution)
		}
		if res.SubGroup != c.SubGroup {
			t.Errorf("%q: sub group = %q, expected %q", c.Filename, res.SubGroup, c.SubGroup)
		}
		if res.IsBatch != c.IsBatch {
			t.Errorf("%q: is batch = %v, expected %v", c.Filename, res.IsBatch, c.IsBatch)
		}
		if (res.Episode == nil) != (c.Episode == nil) {
			t.Errorf("%q: episode = %v, expected %v", c.Filename, res.Episode, c.Episode)
		} else if res.Episode != nil && (res.Episode.Start != c.Episode.Start || res.Episode.End != c.Episode.End) {
			t.Errorf("%q: episode = %v, expected %v", c.Filename, *res.Episode, *c.Episode)
		}
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	res := Resolve("[Erai-raws] Example Show - 12 [1080p].mkv", nil, DefaultConfig())
	if res.MatchedID != nil {
		t.Errorf("empty catalog must not match, got id %d", *res.MatchedID)
	}
	if res.Confidence != 0.0 {
		t.Errorf("empty catalog confidence = %f, expected 0", res.Confidence)
	}
	// Fields are independent of the catalog.
	if res.Resolution != 1080 || res.SubGroup != "Erai-raws" || res.Episode == nil || res.Episode.Start != 12 {
		t.Errorf("extracted fields should survive an empty catalog: %+v", res)
	}
}

func TestResolveFieldIndependence(t *testing.T) {
	cfg := DefaultConfig()
	filename := "[Group] Example Show - 01-13 [720p]"

	empty := Resolve(filename, nil, cfg)
	full := Resolve(filename, testCandidates(), cfg)

	if empty.Resolution != full.Resolution || empty.SubGroup != full.SubGroup ||
		empty.IsBatch != full.IsBatch || empty.Title != full.Title {
		t.Errorf("fields differ between empty and full catalog:\nempty: %+v\nfull:  %+v", empty, full)
	}
	if (empty.Episode == nil) != (full.Episode == nil) {
		t.Errorf("episode presence differs between catalogs")
	}
	if empty.Episode != nil && *empty.Episode != *full.Episode {
		t.Errorf("episode differs: %v vs %v", *empty.Episode, *full.Episode)
	}
}

func TestResolveThresholdConsistency(t *testing.T) {
	cfg := DefaultConfig()
	catalog := testCandidates()
	filenames := []string{
		"[Erai-raws] Example Show - 12 [1080p].mkv",
		"Example Showcase - 01.mkv",
		"Totally Unrelated Nonsense File.mkv",
		"Another Program 2nd Season - 08.mkv",
		"Exam.mkv",
	}
	for _, fn := range filenames {
		res := Resolve(fn, catalog, cfg)
		matched := res.MatchedID != nil
		cleared := res.Confidence >= cfg.AcceptanceThreshold
		if matched != cleared {
			t.Errorf("%q: matched=%v but confidence %f vs threshold %f", fn, matched, res.Confidence, cfg.AcceptanceThreshold)
		}
	}
}

func TestResolveTieBreakLowestID(t *testing.T) {
	catalog := []Candidate{
		{ID: 7, Titles: []string{"Twin Title"}},
		{ID: 3, Titles: []string{"Twin Title"}},
	}
	res := Resolve("Twin Title - 01.mkv", catalog, DefaultConfig())
	if res.MatchedID == nil || *res.MatchedID != 3 {
		t.Errorf("tie should resolve to the lowest id, got %v", res.MatchedID)
	}
}

func TestResolveTieBreakExactVariant(t *testing.T) {
	catalog := []Candidate{
		{ID: 1, Titles: []string{"Twin Title Extra"}},
		{ID: 2, Titles: []string{"Twin Title"}},
	}
	res := Resolve("Twin Title - 01.mkv", catalog, DefaultConfig())
	if res.MatchedID == nil || *res.MatchedID != 2 {
		t.Errorf("exact variant should win, got %v", res.MatchedID)
	}
}

func TestResolvePreDashRetry(t *testing.T) {
	cfg := DefaultConfig()
	catalog := testCandidates()

	// The subtitle after the dash is in no catalog variant; the full span
	// scores below threshold and the pre-dash part must be retried.
	res := Resolve("[Grp] Example Show - The Journey Continues - 05 [1080p].mkv", catalog, cfg)
	if res.MatchedID == nil || *res.MatchedID != 100 {
		t.Fatalf("pre-dash retry should match id 100, got %v (confidence %f)", res.MatchedID, res.Confidence)
	}
	if res.Episode == nil || res.Episode.Start != 5 {
		t.Errorf("episode = %v, expected 5", res.Episode)
	}
	if res.Resolution != 1080 || res.SubGroup != "Grp" {
		t.Errorf("fields = %+v", res)
	}

	// The retry never rescues a filename whose pre-dash part is also junk.
	res = Resolve("Nothing Here - Still Nothing - 02.mkv", catalog, cfg)
	if res.MatchedID != nil {
		t.Errorf("expected no match, got id %d", *res.MatchedID)
	}
}

func TestResolveExtraNoiseTokens(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtraNoiseTokens = []string{"WEIRDTAG"}
	res := Resolve("Example Show WEIRDTAG - 04.mkv", testCandidates(), cfg)
	if res.MatchedID == nil || *res.MatchedID != 100 {
		t.Errorf("configured noise token should be stripped before matching, got %+v", res)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.AcceptanceThreshold != 0.65 {
		t.Errorf("acceptance threshold default = %f, expected 0.65", cfg.AcceptanceThreshold)
	}
	if cfg.SecondaryThreshold != 0.3 {
		t.Errorf("secondary threshold default = %f, expected 0.3", cfg.SecondaryThreshold)
	}
}
