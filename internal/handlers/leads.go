package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/drhenri-ux/octorlink/internal/crm"
	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BusinessPlanLabel is the plan recorded on business inquiry leads
const BusinessPlanLabel = "Internet Empresarial"

// LeadStore is the lead persistence used by the public form and the board
type LeadStore interface {
	crm.LeadStore
	InsertLead(ctx context.Context, lead *models.Lead) error
	GetLead(ctx context.Context, id uuid.UUID) (*models.Lead, error)
}

type LeadHandler struct {
	leads  LeadStore
	logger *zap.Logger
}

func NewLeadHandler(leads LeadStore, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, logger: logger}
}

// board is rebuilt per request so every view reflects the store
func (h *LeadHandler) board(c *gin.Context) (*crm.Board, bool) {
	b := crm.NewBoard(h.leads, h.logger)
	if err := b.Load(c.Request.Context()); err != nil {
		respondError(c, h.logger, "Erro ao carregar leads", err)
		return nil, false
	}
	return b, true
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// CreateBusinessLead stores an inquiry from the business page
func (h *LeadHandler) CreateBusinessLead(c *gin.Context) {
	var req models.BusinessLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Phone) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome e telefone são obrigatórios"})
		return
	}

	plan := BusinessPlanLabel
	leadType := models.LeadTypeBusiness
	lead := &models.Lead{
		Status:      models.LeadStatusInterested,
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       optionalText(req.Email),
		CompanyName: optionalText(req.CompanyName),
		DeviceCount: optionalText(req.DeviceCount),
		PlanName:    &plan,
		LeadType:    &leadType,
		Services:    []string{},
	}

	if err := h.leads.InsertLead(c.Request.Context(), lead); err != nil {
		respondError(c, h.logger, "Erro ao enviar solicitação. Tente novamente.", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Solicitação enviada! Nossa equipe entrará em contato.",
		"lead_id": lead.ID,
	})
}

// GetBoard returns the leads grouped into pipeline columns
func (h *LeadHandler) GetBoard(c *gin.Context) {
	b, ok := h.board(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"columns": b.Columns(),
		"total":   b.Total(),
	})
}

// GetLead returns the full record for the detail view
func (h *LeadHandler) GetLead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lead, err := h.leads.GetLead(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Lead not found", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// MoveLead drops a lead on another column
func (h *LeadHandler) MoveLead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.LeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	b, ok := h.board(c)
	if !ok {
		return
	}
	moved, err := b.Move(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, "Erro ao atualizar status", err)
		return
	}

	message := "Status atualizado!"
	if !moved {
		message = "Status inalterado"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"moved":   moved,
		"columns": b.Columns(),
	})
}

// DeleteLead removes a lead; requires ?confirm=true
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b := crm.NewBoard(h.leads, h.logger)
	if err := b.Remove(c.Request.Context(), id, confirmed(c)); err != nil {
		respondError(c, h.logger, "Erro ao excluir lead", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Lead excluído!",
		"columns": b.Columns(),
	})
}
