package db

import (
	"log"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/harukimoto/anitrack/internal/model"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(storagePath string) {
	var err error

	// 确保存储目录存在
	if storagePath != ":memory:" {
		dir := filepath.Dir(storagePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("failed to create storage directory: %v", err)
		}
	}

	DB, err = gorm.Open(sqlite.Open(storagePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// 自动迁移模式
	err = DB.AutoMigrate(
		&model.WatchEntry{},
		&model.MediaDirectory{},
		&model.RecognizedFile{},
		&model.FeedItem{},
		&model.GlobalConfig{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetConfigValue 读取 KV 配置，不存在时返回默认值
func GetConfigValue(key, fallback string) string {
	var cfg model.GlobalConfig
	if err := DB.First(&cfg, "key = ?", key).Error; err != nil {
		return fallback
	}
	return cfg.Value
}

// SetConfigValue 写入 KV 配置 (upsert)
func SetConfigValue(key, value string) error {
	cfg := model.GlobalConfig{Key: key, Value: value}
	return DB.Save(&cfg).Error
}
