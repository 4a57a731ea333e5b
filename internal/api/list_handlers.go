package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetListHandler 追番列表，可按状态过滤
func GetListHandler(c *gin.Context) {
	entries, err := svc.List.List(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

type addListRequest struct {
	MediaID int    `json:"media_id" binding:"required"`
	Title   string `json:"title"`
}

// AddListEntryHandler adds one catalog id to the watch list. The title is
// optional; when missing it gets filled from the catalog.
func AddListEntryHandler(c *gin.Context) {
	var req addListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := req.Title
	if title == "" {
		if media, err := svc.Client.GetAnimeDetails(req.MediaID); err == nil {
			title = media.Title.Romaji
		}
	}

	entry, err := svc.List.Add(req.MediaID, title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateListEntryHandler applies a partial update to one entry.
func UpdateListEntryHandler(c *gin.Context) {
	mediaID, err := strconv.Atoi(c.Param("mediaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := svc.List.Update(mediaID, patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteListEntryHandler removes one entry.
func DeleteListEntryHandler(c *gin.Context) {
	mediaID, err := strconv.Atoi(c.Param("mediaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}
	if err := svc.List.Remove(mediaID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
