package handlers

import (
	"net/http"

	"github.com/drhenri-ux/octorlink/internal/whatsapp"
	"github.com/gin-gonic/gin"
)

// WhatsAppLink returns the chat link for ?topic= (general when unknown)
func WhatsAppLink(linker whatsapp.Linker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"url": linker.TopicLink(c.Query("topic"))})
	}
}
