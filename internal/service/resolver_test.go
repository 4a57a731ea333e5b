package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyBasic(t *testing.T) {
	r := newTestResolver()

	res := r.Identify("[Grp] Example Show - 05 [1080p].mkv")
	require.NotNil(t, res.MatchedID)
	assert.Equal(t, 10, *res.MatchedID)
	require.NotNil(t, res.Episode)
	assert.Equal(t, 5, res.Episode.Start)
	assert.Equal(t, 1080, res.Resolution)
}

func TestIdentifySequelOverflow(t *testing.T) {
	r := newTestResolver()

	// Episode 14 of a 12-episode season is episode 2 of the sequel. The
	// filename still names season 1, absolute numbering is common in releases.
	res := r.Identify("[Grp] Example Show - 14 [1080p].mkv")
	require.NotNil(t, res.MatchedID)
	assert.Equal(t, 11, *res.MatchedID)
	assert.Equal(t, "Example Show 2nd Season", res.MatchedTitle)
	require.NotNil(t, res.Episode)
	assert.Equal(t, 2, res.Episode.Start)
}

func TestIdentifySequelBatchRange(t *testing.T) {
	r := newTestResolver()

	// A 13-24 batch shifts whole onto season 2 as 1-12.
	res := r.Identify("[Grp] Example Show - 13-24 [1080p]")
	require.NotNil(t, res.MatchedID)
	assert.Equal(t, 11, *res.MatchedID)
	require.NotNil(t, res.Episode)
	assert.Equal(t, 1, res.Episode.Start)
	assert.Equal(t, 12, res.Episode.End)
}

func TestIdentifyMovieEpisodeClamp(t *testing.T) {
	r := newTestResolver()

	// A number in a movie filename is not an episode index.
	res := r.Identify("[Grp] Lonely Movie - 3 [1080p].mkv")
	require.NotNil(t, res.MatchedID)
	assert.Equal(t, 12, *res.MatchedID)
	require.NotNil(t, res.Episode)
	assert.Equal(t, 1, res.Episode.Start)
	assert.Equal(t, 1, res.Episode.End)
}

func TestIdentifyNoMatchKeepsFields(t *testing.T) {
	r := newTestResolver()

	res := r.Identify("[Grp] Totally Different Title - 07 [720p].mkv")
	assert.Nil(t, res.MatchedID)
	require.NotNil(t, res.Episode)
	assert.Equal(t, 7, res.Episode.Start)
	assert.Equal(t, 720, res.Resolution)
	assert.Less(t, res.Confidence, 0.65)
}

func TestMatchConfigDefaults(t *testing.T) {
	r := newTestResolver()

	cfg := r.MatchConfig()
	assert.InDelta(t, 0.65, cfg.AcceptanceThreshold, 1e-9)
	assert.InDelta(t, 0.3, cfg.SecondaryThreshold, 1e-9)
}
