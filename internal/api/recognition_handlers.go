package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harukimoto/anitrack/internal/config"
	"github.com/harukimoto/anitrack/internal/recognize"
)

type identifyRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// IdentifyHandler resolves one filename against the current catalog snapshot.
func IdentifyHandler(c *gin.Context) {
	var req identifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc.Resolver.Identify(req.Filename))
}

// RunRecognitionTestsHandler runs the labeled filename corpus and returns the
// per-case table plus a summary row the UI renders at the top.
func RunRecognitionTestsHandler(c *gin.Context) {
	path := ""
	if cfg := config.AppConfig; cfg != nil {
		path = cfg.Recognition.CorpusPath
	}
	if q := c.Query("corpus"); q != "" {
		path = q
	}

	results, err := svc.Resolver.RunCorpus(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	passed := 0
	for _, r := range results {
		if r.Passed() {
			passed++
		}
	}
	if results == nil {
		results = []recognize.TestResult{}
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   len(results),
		"passed":  passed,
		"failed":  len(results) - passed,
		"results": results,
	})
}
