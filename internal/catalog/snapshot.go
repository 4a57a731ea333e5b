package catalog

import (
	"sort"

	"github.com/harukimoto/anitrack/internal/recognize"
)

// Entry is one catalog title as the rest of the system sees it: the id, every
// name it may appear under, and the relation edges needed to walk seasons.
type Entry struct {
	ID           int
	Titles       []string // romaji/english/native, synonyms, custom override
	Episodes     int      // 0 = unknown / still airing
	Format       string
	CoverImage   string
	AverageScore int
	Relations    []RelationEdge
}

// Snapshot is an immutable catalog view. Build once before a batch of
// resolutions, share freely across goroutines, never mutate.
type Snapshot struct {
	entries map[int]*Entry
}

// NewSnapshot converts fetched media into a snapshot. customTitles carries
// per-id user overrides ("this show is saved under that folder name") and may
// be nil.
func NewSnapshot(media []Media, customTitles map[int]string) *Snapshot {
	entries := make(map[int]*Entry, len(media))
	for _, m := range media {
		e := &Entry{
			ID:           m.ID,
			Episodes:     m.Episodes,
			Format:       m.Format,
			CoverImage:   m.CoverImage.ExtraLarge,
			AverageScore: m.AverageScore,
			Relations:    m.Relations.Edges,
		}
		for _, title := range []string{m.Title.Romaji, m.Title.English, m.Title.Native} {
			if title != "" {
				e.Titles = append(e.Titles, title)
			}
		}
		for _, syn := range m.Synonyms {
			if syn != "" {
				e.Titles = append(e.Titles, syn)
			}
		}
		if custom, ok := customTitles[m.ID]; ok && custom != "" {
			e.Titles = append(e.Titles, custom)
		}
		entries[m.ID] = e
	}
	return &Snapshot{entries: entries}
}

// Get returns the entry for an id, or nil.
func (s *Snapshot) Get(id int) *Entry {
	if s == nil {
		return nil
	}
	return s.entries[id]
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Candidates flattens the snapshot into the matcher's input shape, ordered by
// id for deterministic iteration.
func (s *Snapshot) Candidates() []recognize.Candidate {
	if s == nil {
		return nil
	}
	out := make([]recognize.Candidate, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, recognize.Candidate{ID: e.ID, Titles: e.Titles})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AdjustSequel maps an episode number past the end of a matched season onto
// the right sequel: episode 27 of a 26-episode show is episode 1 of season 2.
// It first walks PREQUEL edges down to the first TV season, then SEQUEL edges
// forward, subtracting episode counts. Entries with unknown episode counts
// stop the walk.
func (s *Snapshot) AdjustSequel(id int, episode int) (int, int) {
	entry := s.Get(id)
	if entry == nil || entry.Episodes == 0 || episode <= entry.Episodes {
		return id, episode
	}

	// Down to the first season.
	for {
		moved := false
		for _, edge := range entry.Relations {
			prequel := s.Get(edge.Node.ID)
			if edge.RelationType == "PREQUEL" && prequel != nil && prequel.Format == "TV" {
				entry = prequel
				moved = true
				break
			}
		}
		if !moved {
			break
		}
	}

	// Forward until the episode fits.
	for entry.Episodes != 0 && episode > entry.Episodes {
		moved := false
		for _, edge := range entry.Relations {
			if edge.RelationType != "SEQUEL" || edge.Node.Format != "TV" {
				continue
			}
			sequel := s.Get(edge.Node.ID)
			if sequel == nil {
				continue
			}
			episode -= entry.Episodes
			entry = sequel
			moved = true
			break
		}
		if !moved {
			break
		}
	}
	return entry.ID, episode
}

// FixEpisode clamps the episode for single-episode formats: a number in a
// movie or OVA filename is part of the title, not an episode index.
func (s *Snapshot) FixEpisode(id int, episode *recognize.EpisodeRange) *recognize.EpisodeRange {
	entry := s.Get(id)
	if entry == nil || entry.Episodes != 1 {
		return episode
	}
	return &recognize.EpisodeRange{Start: 1, End: 1}
}
