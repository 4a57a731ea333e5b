package service

import (
	"log"
	"time"

	"github.com/harukimoto/anitrack/internal/config"
	"github.com/harukimoto/anitrack/internal/db"
	"github.com/harukimoto/anitrack/internal/event"
	"github.com/harukimoto/anitrack/internal/model"
	"github.com/harukimoto/anitrack/pkg/rss"
	"gorm.io/gorm/clause"
)

// FeedsService 抓取 nyaa 搜索源，识别每个种子标题并入库
type FeedsService struct {
	resolver *ResolverService
}

func NewFeedsService(resolver *ResolverService) *FeedsService {
	return &FeedsService{resolver: resolver}
}

func (s *FeedsService) baseURL() string {
	if c := config.AppConfig; c != nil && c.Feeds.BaseURL != "" {
		return c.Feeds.BaseURL
	}
	return ""
}

// Search fetches one search feed, runs every release title through the
// resolver and stores the rows. Known links stay untouched.
func (s *FeedsService) Search(query string) ([]model.FeedItem, error) {
	parsed, err := rss.FetchSearch(s.baseURL(), query)
	if err != nil {
		return nil, err
	}

	items := make([]model.FeedItem, 0, len(parsed))
	for _, p := range parsed {
		items = append(items, s.derive(p, query))
	}

	if len(items) > 0 {
		// 同一个种子可能被不同搜索词抓到，按 link 去重
		if err := db.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "link"}},
			DoNothing: true,
		}).Create(&items).Error; err != nil {
			log.Printf("Feeds: Insert failed for %q: %v", query, err)
		}
	}
	return items, nil
}

// derive attaches recognition output to a raw feed item so the UI can filter
// releases by episode and resolution without re-parsing titles.
func (s *FeedsService) derive(p rss.ParsedItem, query string) model.FeedItem {
	res := s.resolver.Identify(p.Title)

	item := model.FeedItem{
		Title:      p.Title,
		Link:       p.Link,
		GUID:       p.GUID,
		InfoHash:   p.InfoHash,
		Size:       p.Size,
		Downloads:  p.Downloads,
		Query:      query,
		Resolution: res.Resolution,
		SubGroup:   res.SubGroup,
	}
	if !p.Date.IsZero() {
		item.PubDate = p.Date.Format(time.RFC3339)
	}
	if res.MatchedID != nil {
		item.MediaID = *res.MatchedID
	}
	if res.Episode != nil {
		item.Episode = res.Episode.Start
	}
	return item
}

// RefreshAll searches once per currently-watched entry. The custom title wins
// when set, release groups usually name files after it.
func (s *FeedsService) RefreshAll() error {
	var entries []model.WatchEntry
	if err := db.DB.Where("status = ?", "CURRENT").Find(&entries).Error; err != nil {
		return err
	}

	updated := 0
	for _, e := range entries {
		query := e.Title
		if e.CustomTitle != "" {
			query = e.CustomTitle
		}
		if query == "" {
			continue
		}
		items, err := s.Search(query)
		if err != nil {
			log.Printf("Feeds: Search failed for %q: %v", query, err)
			continue
		}
		updated += len(items)
	}

	log.Printf("Feeds: Refresh complete, %d entries searched, %d items seen", len(entries), updated)
	event.GlobalBus.Publish(event.EventFeedUpdated, map[string]interface{}{
		"entries": len(entries),
		"items":   updated,
	})
	return nil
}

// Items returns stored feed rows, optionally filtered to one media id.
func (s *FeedsService) Items(mediaID int, limit int) ([]model.FeedItem, error) {
	if limit <= 0 {
		limit = 100
	}
	q := db.DB.Order("pub_date DESC").Limit(limit)
	if mediaID != 0 {
		q = q.Where("media_id = ?", mediaID)
	}
	var items []model.FeedItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
