package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/wizard"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OpenWizardRequest is the request body for POST /api/wizard
type OpenWizardRequest struct {
	PlanName string `json:"plano"`
	Combo    bool   `json:"combo"`
}

type toggleServiceRequest struct {
	Name string `json:"name" binding:"required"`
}

type postalLookupRequest struct {
	PostalCode string `json:"cep"`
}

// WizardHandler serves the lead capture form
type WizardHandler struct {
	wizards *wizard.Service
	apps    *catalog.AppManager
	logger  *zap.Logger
}

func NewWizardHandler(wizards *wizard.Service, apps *catalog.AppManager, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{wizards: wizards, apps: apps, logger: logger}
}

// view renders the active step; step 3 lists the catalog apps
func (h *WizardHandler) view(ctx context.Context, w *wizard.Wizard) wizard.StepView {
	if w.Step != 3 {
		return w.View(nil)
	}
	apps, err := h.apps.Public(ctx)
	if err != nil {
		h.logger.Error("loading apps for wizard", zap.Error(err))
	}
	return w.View(apps)
}

func bindPatch(c *gin.Context) (*wizard.FieldPatch, bool) {
	if c.Request.ContentLength == 0 {
		return nil, true
	}
	var patch wizard.FieldPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return nil, false
	}
	return &patch, true
}

// Open starts a fresh session on step 1
func (h *WizardHandler) Open(c *gin.Context) {
	var req OpenWizardRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	}

	w, err := h.wizards.Open(c.Request.Context(), req.PlanName, req.Combo)
	if err != nil {
		respondError(c, h.logger, "Failed to open wizard", err)
		return
	}
	c.JSON(http.StatusCreated, h.view(c.Request.Context(), w))
}

func (h *WizardHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	w, err := h.wizards.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Failed to load wizard", err)
		return
	}
	c.JSON(http.StatusOK, h.view(c.Request.Context(), w))
}

// Update applies typed field values without changing the step
func (h *WizardHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	if patch == nil {
		patch = &wizard.FieldPatch{}
	}

	w, err := h.wizards.SetFields(c.Request.Context(), id, *patch)
	if err != nil {
		respondError(c, h.logger, "Failed to update wizard", err)
		return
	}
	c.JSON(http.StatusOK, h.view(c.Request.Context(), w))
}

func (h *WizardHandler) Next(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	w, err := h.wizards.Advance(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, "Preencha os campos obrigatórios", err)
		return
	}
	c.JSON(http.StatusOK, h.view(c.Request.Context(), w))
}

func (h *WizardHandler) Back(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	w, err := h.wizards.Retreat(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Failed to go back", err)
		return
	}
	c.JSON(http.StatusOK, h.view(c.Request.Context(), w))
}

func (h *WizardHandler) ToggleService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req toggleServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	w, err := h.wizards.ToggleService(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, h.logger, "Failed to toggle service", err)
		return
	}
	c.JSON(http.StatusOK, h.view(c.Request.Context(), w))
}

// LookupAddress stores the postal code and autofills the address when
// the lookup succeeds. A failed lookup is not an error.
func (h *WizardHandler) LookupAddress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req postalLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	w, found, err := h.wizards.LookupAddress(c.Request.Context(), id, req.PostalCode)
	if err != nil {
		respondError(c, h.logger, "Failed to update wizard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address_found": found,
		"wizard":        h.view(c.Request.Context(), w),
	})
}

func (h *WizardHandler) Submit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	w, lead, err := h.wizards.Submit(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, wizard.ErrStepInvalid) || errors.Is(err, wizard.ErrNotOnFinalStep) || errors.Is(err, wizard.ErrSessionNotFound) {
			respondError(c, h.logger, "Preencha os campos obrigatórios", err)
			return
		}
		respondError(c, h.logger, "Erro ao enviar cadastro. Tente novamente.", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cadastro enviado com sucesso! Em breve entraremos em contato.",
		"lead_id": lead.ID,
		"wizard":  h.view(c.Request.Context(), w),
	})
}

// Close discards the session
func (h *WizardHandler) Close(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.wizards.Close(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "Failed to close wizard", err)
		return
	}
	c.Status(http.StatusNoContent)
}
