package recognize

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// TestCase is one labeled corpus entry: a raw filename and the catalog id,
// episode and resolution a correct recognition must produce. Matches the
// filename_tests.json layout the desktop UI ships with.
type TestCase struct {
	Filename           string `json:"filename"`
	ExpectedAnimeID    int    `json:"expected_anime_id"`
	ExpectedEpisode    int    `json:"expected_episode"`
	ExpectedResolution int    `json:"expected_resolution"`
}

// TestResult is the row the UI's test table renders: the full recognition
// outcome next to the expected values, with a pass flag per compared field.
// AnimeID is 0 in the report when the match was rejected; the Result inside
// keeps the nil/absent distinction.
type TestResult struct {
	TestCase
	Result          Result  `json:"result"`
	AnimeID         int     `json:"anime_id"`
	SimilarityScore float64 `json:"similarity_score"`
	Title           string  `json:"title"`
	IDTitle         string  `json:"id_title"`
	Episode         int     `json:"episode"`
	Length          int     `json:"length"`
	Resolution      int     `json:"resolution"`
	IDPass          bool    `json:"id_pass"`
	EpisodePass     bool    `json:"episode_pass"`
	ResolutionPass  bool    `json:"resolution_pass"`
	ScorePass       bool    `json:"score_pass"`
}

// Passed reports whether every compared field matched its expectation.
func (r TestResult) Passed() bool {
	return r.IDPass && r.EpisodePass && r.ResolutionPass
}

// LoadTestCases reads a labeled corpus file. A missing file is an empty
// corpus, not an error, same as the original tracker's behavior.
func LoadTestCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read test corpus: %w", err)
	}
	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse test corpus: %w", err)
	}
	return cases, nil
}

// RunTests resolves every case against the same candidate set and diffs the
// outcome against the expectations. Cases are independent, so they fan out
// over a fixed worker pool; result order matches input order.
func RunTests(cases []TestCase, candidates []Candidate, cfg Config, workers int) []TestResult {
	if workers <= 0 {
		workers = 4
	}
	results := make([]TestResult, len(cases))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runCase(cases[i], candidates, cfg)
			}
		}()
	}
	for i := range cases {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func runCase(tc TestCase, candidates []Candidate, cfg Config) TestResult {
	res := Resolve(tc.Filename, candidates, cfg)

	out := TestResult{
		TestCase:        tc,
		Result:          res,
		SimilarityScore: res.Confidence,
		Title:           res.Title,
		IDTitle:         res.MatchedTitle,
		Resolution:      res.Resolution,
	}
	if res.MatchedID != nil {
		out.AnimeID = *res.MatchedID
	}
	if res.Episode != nil {
		out.Episode = res.Episode.Start
		out.Length = res.Episode.Length()
	}

	out.IDPass = out.AnimeID == tc.ExpectedAnimeID
	out.EpisodePass = out.Episode == tc.ExpectedEpisode
	out.ResolutionPass = out.Resolution == tc.ExpectedResolution
	out.ScorePass = res.Confidence >= cfg.AcceptanceThreshold
	return out
}
