package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/harukimoto/anitrack/internal/api"
	"github.com/harukimoto/anitrack/internal/catalog"
	"github.com/harukimoto/anitrack/internal/config"
	"github.com/harukimoto/anitrack/internal/db"
	"github.com/harukimoto/anitrack/internal/model"
	"github.com/harukimoto/anitrack/internal/scheduler"
	"github.com/harukimoto/anitrack/internal/service"
)

func main() {
	// 1. Load Config
	if err := config.LoadConfig("."); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Gin Mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// 转换为绝对路径日志一下
	absPath, _ := filepath.Abs(config.AppConfig.Database.Path)
	log.Printf("Initializing database at: %s", absPath)

	db.InitDB(config.AppConfig.Database.Path)
	defer db.CloseDB()

	// 3. Wire services. Token 优先用数据库里的，没有再退回配置文件
	token := db.GetConfigValue(model.ConfigKeyAniListToken, config.AppConfig.AniList.Token)
	client := catalog.NewClient(token, config.AppConfig.AniList.Proxy)

	resolver := service.NewResolverService(client)
	scanner := service.NewScannerService(resolver)
	if w := config.AppConfig.Scanner.Workers; w > 0 {
		scanner.WorkerCount = w
	}
	services := &api.Services{
		Client:   client,
		Resolver: resolver,
		List:     service.NewListService(resolver),
		Scanner:  scanner,
		Feeds:    service.NewFeedsService(resolver),
	}

	r := gin.Default()
	api.InitRoutes(r, services)

	// Scheduler 负责首轮目录刷新
	sch := scheduler.NewManager(resolver, services.Feeds)
	sch.Start()
	defer sch.Stop()

	port := fmt.Sprintf("%d", config.AppConfig.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
