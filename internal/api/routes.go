package api

import (
	"github.com/gin-gonic/gin"
	"github.com/harukimoto/anitrack/internal/catalog"
	"github.com/harukimoto/anitrack/internal/service"
)

// Services 路由层用到的全部依赖，main 里组装一次
type Services struct {
	Client   *catalog.Client
	Resolver *service.ResolverService
	List     *service.ListService
	Scanner  *service.ScannerService
	Feeds    *service.FeedsService
}

var svc *Services

func InitRoutes(r *gin.Engine, s *Services) {
	svc = s

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	{
		// Catalog
		apiGroup.GET("/anime/:id", GetAnimeHandler)
		apiGroup.GET("/search", SearchAnimeHandler)
		apiGroup.GET("/browse", BrowseAnimeHandler)

		// Watch list
		apiGroup.GET("/list", GetListHandler)
		apiGroup.POST("/list", AddListEntryHandler)
		apiGroup.PUT("/list/:mediaId", UpdateListEntryHandler)
		apiGroup.DELETE("/list/:mediaId", DeleteListEntryHandler)

		// Recognition
		apiGroup.POST("/identify", IdentifyHandler)
		apiGroup.GET("/recognition/tests", RunRecognitionTestsHandler)

		// Scanner
		apiGroup.GET("/directories", GetDirectoriesHandler)
		apiGroup.POST("/directories", AddDirectoryHandler)
		apiGroup.DELETE("/directories/:id", DeleteDirectoryHandler)
		apiGroup.POST("/scan", ScanHandler)
		apiGroup.GET("/library/:mediaId", GetLibraryHandler)
		apiGroup.GET("/unmatched", GetUnmatchedHandler)

		// Feeds
		apiGroup.GET("/feeds/search", SearchFeedsHandler)
		apiGroup.GET("/feeds/items", GetFeedItemsHandler)
		apiGroup.POST("/feeds/refresh", RefreshFeedsHandler)

		// Settings
		apiGroup.GET("/settings", GetSettingsHandler)
		apiGroup.POST("/settings", UpdateSettingsHandler)

		// Events
		apiGroup.GET("/events", SSEHandler)
	}
}
