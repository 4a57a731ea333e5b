package scheduler

import (
	"log"
	"time"

	"github.com/harukimoto/anitrack/internal/config"
	"github.com/harukimoto/anitrack/internal/service"
)

// Manager 定时任务：周期性刷新目录快照和种子源
type Manager struct {
	resolver *service.ResolverService
	feeds    *service.FeedsService

	ticker *time.Ticker
	quit   chan struct{}
}

func NewManager(resolver *service.ResolverService, feeds *service.FeedsService) *Manager {
	interval := 60 * time.Minute
	if c := config.AppConfig; c != nil && c.Feeds.RefreshMinutes > 0 {
		interval = time.Duration(c.Feeds.RefreshMinutes) * time.Minute
	}
	return &Manager{
		resolver: resolver,
		feeds:    feeds,
		ticker:   time.NewTicker(interval),
		quit:     make(chan struct{}),
	}
}

func (m *Manager) Start() {
	log.Println("Scheduler started...")
	go func() {
		for {
			select {
			case <-m.ticker.C:
				m.Tick()
			case <-m.quit:
				m.ticker.Stop()
				return
			}
		}
	}()
	// 启动先跑一轮
	go m.Tick()
}

func (m *Manager) Stop() {
	close(m.quit)
	log.Println("Scheduler stopped.")
}

// Tick refreshes the catalog first so feed recognition runs against current
// titles, then pulls the search feeds.
func (m *Manager) Tick() {
	if err := m.resolver.RefreshCatalog(); err != nil {
		log.Printf("Scheduler: Catalog refresh failed: %v", err)
	}
	if err := m.feeds.RefreshAll(); err != nil {
		log.Printf("Scheduler: Feed refresh failed: %v", err)
	}
}
