package handlers

import (
	"net/http"

	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/drhenri-ux/octorlink/internal/whatsapp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReferralHandler struct {
	referrals *catalog.ReferralManager
	logger    *zap.Logger
}

func NewReferralHandler(referrals *catalog.ReferralManager, logger *zap.Logger) *ReferralHandler {
	return &ReferralHandler{referrals: referrals, logger: logger}
}

// referralView adds chat links for both phones
type referralView struct {
	models.Referral
	HolderWhatsApp string `json:"titular_whatsapp"`
	FriendWhatsApp string `json:"amigo_whatsapp"`
}

// Submit handles the public referral form
func (h *ReferralHandler) Submit(c *gin.Context) {
	var req models.ReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	ref, err := h.referrals.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Erro ao enviar indicação", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Indicação enviada com sucesso!",
		"id":      ref.ID,
	})
}

// List returns referrals, optionally filtered by ?status=, with per-status counts
func (h *ReferralHandler) List(c *gin.Context) {
	refs, err := h.referrals.Load(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, h.logger, "Erro ao carregar indicações", err)
		return
	}
	stats, err := h.referrals.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Erro ao carregar indicações", err)
		return
	}

	views := make([]referralView, 0, len(refs))
	for _, r := range refs {
		views = append(views, referralView{
			Referral:       r,
			HolderWhatsApp: whatsapp.ContactLink(r.HolderPhone),
			FriendWhatsApp: whatsapp.ContactLink(r.FriendPhone),
		})
	}
	c.JSON(http.StatusOK, gin.H{"referrals": views, "stats": stats})
}

func (h *ReferralHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.ReferralStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.referrals.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, h.logger, "Erro ao atualizar status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status atualizado!"})
}

func (h *ReferralHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.referrals.Delete(c.Request.Context(), id, confirmed(c)); err != nil {
		respondError(c, h.logger, "Erro ao excluir indicação", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Indicação excluída!"})
}
