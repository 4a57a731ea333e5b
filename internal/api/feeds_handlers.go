package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SearchFeedsHandler 实时搜索种子源并返回识别后的条目
func SearchFeedsHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}
	items, err := svc.Feeds.Search(query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetFeedItemsHandler 已入库的种子记录
func GetFeedItemsHandler(c *gin.Context) {
	mediaID, _ := strconv.Atoi(c.Query("media_id"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	items, err := svc.Feeds.Items(mediaID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// RefreshFeedsHandler triggers a feed refresh for every watched entry. Runs in
// the background, completion comes through the feed_updated event.
func RefreshFeedsHandler(c *gin.Context) {
	go func() {
		if err := svc.Feeds.RefreshAll(); err != nil {
			log.Printf("API: Feed refresh failed: %v", err)
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"status": "refreshing"})
}
