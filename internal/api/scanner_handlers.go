package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetDirectoriesHandler 已配置的扫描根目录
func GetDirectoriesHandler(c *gin.Context) {
	dirs, err := svc.Scanner.Directories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dirs)
}

type addDirectoryRequest struct {
	Path string `json:"path" binding:"required"`
}

func AddDirectoryHandler(c *gin.Context) {
	var req addDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := svc.Scanner.AddDirectory(req.Path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DeleteDirectoryHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := svc.Scanner.RemoveDirectory(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ScanHandler kicks off a scan in the background. Progress goes out over SSE,
// the final stats over the scan_complete event.
func ScanHandler(c *gin.Context) {
	dirID, _ := strconv.ParseUint(c.DefaultQuery("directory_id", "0"), 10, 32)

	go func() {
		var err error
		if dirID != 0 {
			_, err = svc.Scanner.ScanDirectory(uint(dirID))
		} else {
			_, err = svc.Scanner.ScanAll()
		}
		if err != nil {
			log.Printf("API: Scan failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "scanning"})
}

// GetLibraryHandler 某个条目的本地文件，按集去重
func GetLibraryHandler(c *gin.Context) {
	mediaID, err := strconv.Atoi(c.Param("mediaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}
	files, err := svc.Scanner.Library(mediaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, files)
}

// GetUnmatchedHandler 未识别的文件列表
func GetUnmatchedHandler(c *gin.Context) {
	files, err := svc.Scanner.Unmatched()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, files)
}
