package handlers

import (
	"net/http"

	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetSiteSettings returns the feature toggles read on every page load
func GetSiteSettings(settings *catalog.SettingsManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := settings.Get(c.Request.Context())
		if err != nil {
			respondError(c, logger, "Failed to load settings", err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// UpdateSiteSettings changes the given toggles
func UpdateSiteSettings(settings *catalog.SettingsManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SiteSettingsUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		s, err := settings.Update(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Erro ao atualizar configuração", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Configuração atualizada!", "settings": s})
	}
}
