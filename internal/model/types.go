package model

import (
	"gorm.io/gorm"
)

// WatchEntry 用户追番列表的一条记录，本地持久化
// MediaID 对应 AniList 的条目 ID
type WatchEntry struct {
	gorm.Model
	MediaID     int     `json:"media_id" gorm:"uniqueIndex"`
	Title       string  `json:"title"`
	Status      string  `json:"status"` // "CURRENT", "COMPLETED", "PLANNING", "DROPPED", "PAUSED"
	Score       float64 `json:"score"`
	Progress    int     `json:"progress"` // 看到第几集
	StartedAt   string  `json:"started_at"`
	CompletedAt string  `json:"completed_at"`
	CustomTitle string  `json:"custom_title"` // 用户自定义的文件名标题 (可选)
}

// MediaDirectory 扫描根目录
type MediaDirectory struct {
	gorm.Model
	Path string `json:"path" gorm:"uniqueIndex"`
}

// RecognizedFile 扫描结果：一个视频文件和它识别出的条目
// 同一 (MediaID, Episode) 只保留置信度最高的路径
type RecognizedFile struct {
	gorm.Model
	Path        string  `json:"path" gorm:"uniqueIndex"`
	DirectoryID uint    `json:"directory_id" gorm:"index"`
	MediaID     int     `json:"media_id" gorm:"index"`
	Episode     int     `json:"episode"`
	Resolution  int     `json:"resolution"`
	SubGroup    string  `json:"sub_group"`
	Confidence  float64 `json:"confidence"`
}

// FeedItem RSS 抓取到的种子记录，用于去重和展示
type FeedItem struct {
	gorm.Model
	Title      string `json:"title"`
	Link       string `json:"link" gorm:"uniqueIndex"`
	GUID       string `json:"guid"`
	InfoHash   string `json:"info_hash"`
	Size       string `json:"size"`
	Downloads  int    `json:"downloads"`
	PubDate    string `json:"pub_date"`
	Query      string `json:"query" gorm:"index"` // 抓取时用的搜索词
	MediaID    int    `json:"media_id"`
	Episode    int    `json:"episode"`
	Resolution int    `json:"resolution"`
	SubGroup   string `json:"sub_group"`
}

// GlobalConfig 存储全局配置 (虽是单用户，但也存在DB里方便迁移)
type GlobalConfig struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const (
	ConfigKeyAniListToken = "anilist_token"
	ConfigKeyUserName     = "anilist_username"
	ConfigKeyThreshold    = "acceptance_threshold"
	ConfigKeyTitleLang    = "title_language" // romaji / english / native
)
