package service

import (
	"log"
	"strconv"
	"sync"

	"github.com/harukimoto/anitrack/internal/catalog"
	"github.com/harukimoto/anitrack/internal/config"
	"github.com/harukimoto/anitrack/internal/db"
	"github.com/harukimoto/anitrack/internal/event"
	"github.com/harukimoto/anitrack/internal/model"
	"github.com/harukimoto/anitrack/internal/recognize"
)

// ResolverService 把识别流水线和目录快照粘在一起
// 快照整体替换，识别过程只读，天然并发安全
type ResolverService struct {
	client *catalog.Client

	mu         sync.RWMutex
	snapshot   *catalog.Snapshot
	candidates []recognize.Candidate
}

func NewResolverService(client *catalog.Client) *ResolverService {
	return &ResolverService{client: client}
}

// MatchConfig assembles the matcher tunables: file config first, then the
// per-user threshold stored in the database on top.
func (s *ResolverService) MatchConfig() recognize.Config {
	cfg := recognize.DefaultConfig()
	if c := config.AppConfig; c != nil {
		if c.Recognition.AcceptanceThreshold > 0 {
			cfg.AcceptanceThreshold = c.Recognition.AcceptanceThreshold
		}
		if c.Recognition.SecondaryThreshold > 0 {
			cfg.SecondaryThreshold = c.Recognition.SecondaryThreshold
		}
		cfg.ExtraNoiseTokens = c.Recognition.ExtraNoiseTokens
	}
	if db.DB != nil {
		if v := db.GetConfigValue(model.ConfigKeyThreshold, ""); v != "" {
			if t, err := strconv.ParseFloat(v, 64); err == nil && t > 0 && t <= 1 {
				cfg.AcceptanceThreshold = t
			}
		}
	}
	return cfg
}

// RefreshCatalog rebuilds the snapshot from the watch list. AniList pages cap
// at 50, so ids go out in chunks.
func (s *ResolverService) RefreshCatalog() error {
	var entries []model.WatchEntry
	if err := db.DB.Find(&entries).Error; err != nil {
		return err
	}

	ids := make([]int, 0, len(entries))
	custom := make(map[int]string)
	for _, e := range entries {
		ids = append(ids, e.MediaID)
		if e.CustomTitle != "" {
			custom[e.MediaID] = e.CustomTitle
		}
	}

	var media []catalog.Media
	for start := 0; start < len(ids); start += 50 {
		end := start + 50
		if end > len(ids) {
			end = len(ids)
		}
		page, err := s.client.GetAnimeInfo(ids[start:end])
		if err != nil {
			return err
		}
		media = append(media, page...)
	}

	snap := catalog.NewSnapshot(media, custom)
	s.ReplaceSnapshot(snap)

	log.Printf("Resolver: Catalog refreshed, %d entries", snap.Len())
	event.GlobalBus.Publish(event.EventCatalogRefreshed, map[string]interface{}{
		"entries": snap.Len(),
	})
	return nil
}

// ReplaceSnapshot swaps in a prebuilt snapshot. Tests use this to avoid the
// network.
func (s *ResolverService) ReplaceSnapshot(snap *catalog.Snapshot) {
	candidates := snap.Candidates()
	s.mu.Lock()
	s.snapshot = snap
	s.candidates = candidates
	s.mu.Unlock()
}

// Snapshot returns the current catalog view, possibly nil before the first
// refresh.
func (s *ResolverService) Snapshot() *catalog.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Identify runs one filename through the full pipeline and applies the catalog
// corrections on top: episode numbers past the end of a season move onto the
// sequel, and numbers on single-episode formats collapse to 1.
func (s *ResolverService) Identify(filename string) recognize.Result {
	cfg := s.MatchConfig()

	s.mu.RLock()
	candidates := s.candidates
	snap := s.snapshot
	s.mu.RUnlock()

	res := recognize.Resolve(filename, candidates, cfg)
	if res.MatchedID == nil || res.Episode == nil {
		return res
	}

	id, start := snap.AdjustSequel(*res.MatchedID, res.Episode.Start)
	if id != *res.MatchedID {
		shift := res.Episode.Start - start
		res.Episode = &recognize.EpisodeRange{Start: start, End: res.Episode.End - shift}
		adjusted := id
		res.MatchedID = &adjusted
		if e := snap.Get(id); e != nil && len(e.Titles) > 0 {
			res.MatchedTitle = e.Titles[0]
		}
	}
	res.Episode = snap.FixEpisode(*res.MatchedID, res.Episode)
	return res
}

// RunCorpus loads the labeled filename corpus and resolves every case against
// the current snapshot.
func (s *ResolverService) RunCorpus(path string) ([]recognize.TestResult, error) {
	cases, err := recognize.LoadTestCases(path)
	if err != nil {
		return nil, err
	}

	workers := 4
	if c := config.AppConfig; c != nil && c.Recognition.Workers > 0 {
		workers = c.Recognition.Workers
	}

	s.mu.RLock()
	candidates := s.candidates
	s.mu.RUnlock()

	return recognize.RunTests(cases, candidates, s.MatchConfig(), workers), nil
}
