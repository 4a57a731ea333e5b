package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harukimoto/anitrack/internal/db"
	"github.com/harukimoto/anitrack/internal/model"
)

// GetSettingsHandler 返回数据库里的用户设置，token 只报告是否已配置
func GetSettingsHandler(c *gin.Context) {
	token := db.GetConfigValue(model.ConfigKeyAniListToken, "")
	c.JSON(http.StatusOK, gin.H{
		"anilist_username":     db.GetConfigValue(model.ConfigKeyUserName, ""),
		"anilist_token_set":    token != "",
		"acceptance_threshold": db.GetConfigValue(model.ConfigKeyThreshold, ""),
		"title_language":       db.GetConfigValue(model.ConfigKeyTitleLang, "romaji"),
	})
}

type settingsRequest struct {
	AniListToken        *string `json:"anilist_token"`
	AniListUsername     *string `json:"anilist_username"`
	AcceptanceThreshold *string `json:"acceptance_threshold"`
	TitleLanguage       *string `json:"title_language"`
}

// UpdateSettingsHandler writes the provided fields to the config table. The
// threshold is validated here so a bad value never reaches the matcher.
func UpdateSettingsHandler(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.AcceptanceThreshold != nil && *req.AcceptanceThreshold != "" {
		t, err := strconv.ParseFloat(*req.AcceptanceThreshold, 64)
		if err != nil || t <= 0 || t > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "acceptance_threshold must be in (0, 1]"})
			return
		}
	}

	pairs := map[string]*string{
		model.ConfigKeyAniListToken: req.AniListToken,
		model.ConfigKeyUserName:     req.AniListUsername,
		model.ConfigKeyThreshold:    req.AcceptanceThreshold,
		model.ConfigKeyTitleLang:    req.TitleLanguage,
	}
	for key, val := range pairs {
		if val == nil {
			continue
		}
		if err := db.SetConfigValue(key, *val); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
