package service

import (
	"fmt"
	"log"

	"github.com/harukimoto/anitrack/internal/db"
	"github.com/harukimoto/anitrack/internal/model"
)

// updatableColumns 白名单：API 补丁只允许改这些列
var updatableColumns = map[string]bool{
	"status":       true,
	"score":        true,
	"progress":     true,
	"started_at":   true,
	"completed_at": true,
	"custom_title": true,
}

// ListService 管理本地追番列表
type ListService struct {
	resolver *ResolverService
}

func NewListService(resolver *ResolverService) *ListService {
	return &ListService{resolver: resolver}
}

// List returns the watch list, optionally filtered by status.
func (s *ListService) List(status string) ([]model.WatchEntry, error) {
	var entries []model.WatchEntry
	q := db.DB.Order("updated_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Get returns one entry by media id.
func (s *ListService) Get(mediaID int) (*model.WatchEntry, error) {
	var entry model.WatchEntry
	if err := db.DB.Where("media_id = ?", mediaID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Add puts a media id on the watch list and refreshes the catalog so the
// matcher sees it. Re-adding a soft-deleted entry revives the old record.
func (s *ListService) Add(mediaID int, title string) (*model.WatchEntry, error) {
	var existing model.WatchEntry
	if err := db.DB.Unscoped().Where("media_id = ?", mediaID).First(&existing).Error; err == nil {
		if existing.DeletedAt.Valid {
			log.Printf("List: Reviving soft-deleted entry for media %d", mediaID)
			existing.DeletedAt.Valid = false
			existing.Status = "PLANNING"
			if title != "" {
				existing.Title = title
			}
			if err := db.DB.Unscoped().Save(&existing).Error; err != nil {
				return nil, err
			}
			s.refreshCatalog()
			return &existing, nil
		}
		return &existing, nil
	}

	entry := model.WatchEntry{
		MediaID: mediaID,
		Title:   title,
		Status:  "PLANNING",
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		return nil, err
	}
	s.refreshCatalog()
	return &entry, nil
}

// Update applies a column patch to one entry. Unknown columns are rejected so
// API callers cannot touch ids or timestamps.
func (s *ListService) Update(mediaID int, patch map[string]interface{}) (*model.WatchEntry, error) {
	for col := range patch {
		if !updatableColumns[col] {
			return nil, fmt.Errorf("column %q is not updatable", col)
		}
	}

	var entry model.WatchEntry
	if err := db.DB.Where("media_id = ?", mediaID).First(&entry).Error; err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		if err := db.DB.Model(&entry).Updates(patch).Error; err != nil {
			return nil, err
		}
	}

	// 改了自定义标题要重建快照，其它列不用
	if _, ok := patch["custom_title"]; ok {
		s.refreshCatalog()
	}
	return &entry, nil
}

// Remove drops an entry from the list. Soft delete, so history survives.
func (s *ListService) Remove(mediaID int) error {
	res := db.DB.Where("media_id = ?", mediaID).Delete(&model.WatchEntry{})
	if res.Error != nil {
		return res.Error
	}
	s.refreshCatalog()
	return nil
}

func (s *ListService) refreshCatalog() {
	go func() {
		if err := s.resolver.RefreshCatalog(); err != nil {
			log.Printf("List: Catalog refresh failed: %v", err)
		}
	}()
}
