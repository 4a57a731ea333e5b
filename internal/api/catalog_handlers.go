package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetAnimeHandler 查询单个条目详情
func GetAnimeHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	media, err := svc.Client.GetAnimeDetails(id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, media)
}

// SearchAnimeHandler 按关键字搜索目录
func SearchAnimeHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	media, err := svc.Client.SearchAnime(query, perPage)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, media)
}

// BrowseAnimeHandler 按季度浏览
func BrowseAnimeHandler(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	season := c.Query("season")
	format := c.Query("format")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	media, err := svc.Client.Browse(year, season, format, page)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, media)
}
