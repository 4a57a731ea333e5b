package service

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harukimoto/anitrack/internal/db"
	"github.com/harukimoto/anitrack/internal/event"
	"github.com/harukimoto/anitrack/internal/model"
	"github.com/harukimoto/anitrack/internal/recognize"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScannerService struct {
	resolver    *ResolverService
	WorkerCount int
	BatchSize   int
}

func NewScannerService(resolver *ResolverService) *ScannerService {
	return &ScannerService{
		resolver:    resolver,
		WorkerCount: 8,
		BatchSize:   100, // Batch database writes
	}
}

type ScanJob struct {
	Path        string
	DirectoryID uint
}

type scanHit struct {
	Job    ScanJob
	Result recognize.Result
}

// ScanStats 一次扫描的汇总
type ScanStats struct {
	Files      int `json:"files"`
	Matched    int `json:"matched"`
	Unmatched  int `json:"unmatched"`
	DurationMs int `json:"duration_ms"`
}

// ScanAll walks every configured directory, resolves each video filename and
// upserts the outcome. Producer/worker/aggregator split, same as the library
// scan it replaced: walking is IO bound, resolving is CPU bound, and the
// database writer stays single-threaded.
func (s *ScannerService) ScanAll() (*ScanStats, error) {
	var dirs []model.MediaDirectory
	if err := db.DB.Find(&dirs).Error; err != nil {
		return nil, err
	}
	return s.scan(dirs)
}

// ScanDirectory scans a single configured directory.
func (s *ScannerService) ScanDirectory(id uint) (*ScanStats, error) {
	var dir model.MediaDirectory
	if err := db.DB.First(&dir, id).Error; err != nil {
		return nil, err
	}
	return s.scan([]model.MediaDirectory{dir})
}

func (s *ScannerService) scan(dirs []model.MediaDirectory) (*ScanStats, error) {
	log.Printf("Scanner: Starting scan over %d directories", len(dirs))
	start := time.Now()

	jobs := make(chan ScanJob, 1000)
	results := make(chan scanHit, 1000)
	var wg sync.WaitGroup

	workers := s.WorkerCount
	if workers <= 0 {
		workers = 4
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(jobs, results)
		}()
	}

	stats := &ScanStats{}
	done := make(chan bool)
	go func() {
		s.aggregator(results, stats)
		done <- true
	}()

	go func() {
		for _, d := range dirs {
			s.walkDirectory(d.Path, d.ID, jobs)
		}
		close(jobs)
	}()

	wg.Wait()
	close(results)
	<-done

	s.pruneMissing()

	stats.DurationMs = int(time.Since(start).Milliseconds())
	log.Printf("Scanner: Scan complete. Files: %d, Matched: %d, Unmatched: %d (%v)",
		stats.Files, stats.Matched, stats.Unmatched, time.Since(start))

	event.GlobalBus.Publish(event.EventScanComplete, stats)
	return stats, nil
}

func (s *ScannerService) walkDirectory(root string, directoryID uint, jobs chan<- ScanJob) {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Printf("Scanner: Error accessing %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			// Skip hidden folders
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if recognize.IsVideoFile(d.Name()) {
			jobs <- ScanJob{Path: path, DirectoryID: directoryID}
		}
		return nil
	})
	if err != nil {
		log.Printf("Scanner: Walk failed for %s: %v", root, err)
	}
}

func (s *ScannerService) worker(jobs <-chan ScanJob, results chan<- scanHit) {
	for job := range jobs {
		// 只看文件名，目录结构不参与识别
		res := s.resolver.Identify(filepath.Base(job.Path))
		results <- scanHit{Job: job, Result: res}
	}
}

func (s *ScannerService) aggregator(results <-chan scanHit, stats *ScanStats) {
	var batch []model.RecognizedFile

	flush := func() {
		if len(batch) == 0 {
			return
		}
		// SQLite batch size limits apply, so 100 is safe.
		if err := db.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"directory_id", "media_id", "episode", "resolution", "sub_group", "confidence"}),
		}).Create(&batch).Error; err != nil {
			log.Printf("Scanner: Batch upsert failed: %v", err)
		}
		batch = make([]model.RecognizedFile, 0, s.BatchSize)
	}

	for hit := range results {
		stats.Files++

		file := model.RecognizedFile{
			Path:        hit.Job.Path,
			DirectoryID: hit.Job.DirectoryID,
			Resolution:  hit.Result.Resolution,
			SubGroup:    hit.Result.SubGroup,
			Confidence:  hit.Result.Confidence,
		}
		if hit.Result.MatchedID != nil {
			file.MediaID = *hit.Result.MatchedID
			stats.Matched++
		} else {
			// MediaID 0 标记未识别，UI 单独列出
			stats.Unmatched++
		}
		if hit.Result.Episode != nil {
			file.Episode = hit.Result.Episode.Start
		}

		batch = append(batch, file)
		if len(batch) >= s.BatchSize {
			flush()
		}

		if stats.Files%50 == 0 {
			event.GlobalBus.Publish(event.EventScanProgress, map[string]interface{}{
				"files":   stats.Files,
				"matched": stats.Matched,
			})
		}
	}

	flush()
}

// pruneMissing drops rows whose files are gone from disk.
func (s *ScannerService) pruneMissing() {
	var files []model.RecognizedFile
	if err := db.DB.Find(&files).Error; err != nil {
		return
	}
	for _, f := range files {
		if _, err := os.Stat(f.Path); os.IsNotExist(err) {
			db.DB.Unscoped().Delete(&model.RecognizedFile{}, f.ID)
		}
	}
}

// Library groups the recognized files of one media entry by episode, keeping
// the highest-confidence path when several releases of the same episode exist.
func (s *ScannerService) Library(mediaID int) ([]model.RecognizedFile, error) {
	var files []model.RecognizedFile
	if err := db.DB.Where("media_id = ?", mediaID).
		Order("episode ASC, confidence DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}

	out := make([]model.RecognizedFile, 0, len(files))
	seen := make(map[int]bool)
	for _, f := range files {
		if seen[f.Episode] {
			continue
		}
		seen[f.Episode] = true
		out = append(out, f)
	}
	return out, nil
}

// Unmatched returns files the resolver could not place.
func (s *ScannerService) Unmatched() ([]model.RecognizedFile, error) {
	var files []model.RecognizedFile
	if err := db.DB.Where("media_id = 0").Order("path ASC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Directories lists the configured scan roots.
func (s *ScannerService) Directories() ([]model.MediaDirectory, error) {
	var dirs []model.MediaDirectory
	if err := db.DB.Find(&dirs).Error; err != nil {
		return nil, err
	}
	return dirs, nil
}

// AddDirectory 添加一个新的根目录
func (s *ScannerService) AddDirectory(path string) error {
	// Check if exists (including soft-deleted)
	var existing model.MediaDirectory
	if err := db.DB.Unscoped().Where("path = ?", path).First(&existing).Error; err == nil {
		if existing.DeletedAt.Valid {
			log.Printf("Scanner: Removing stale soft-deleted directory to allow fresh add: %s", path)
			if err := db.DB.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
		} else {
			return nil
		}
	}

	dir := model.MediaDirectory{Path: path}
	return db.DB.Create(&dir).Error
}

// RemoveDirectory 删除目录及其扫描结果
func (s *ScannerService) RemoveDirectory(id uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("directory_id = ?", id).Delete(&model.RecognizedFile{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.MediaDirectory{}, id).Error
	})
}
