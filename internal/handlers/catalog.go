package handlers

import (
	"net/http"

	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxIconSize bounds icon uploads
const maxIconSize = 2 << 20

type CatalogHandler struct {
	plans    *catalog.PlanManager
	apps     *catalog.AppManager
	services *catalog.ServiceManager
	logger   *zap.Logger
}

func NewCatalogHandler(plans *catalog.PlanManager, apps *catalog.AppManager, services *catalog.ServiceManager, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{plans: plans, apps: apps, services: services, logger: logger}
}

// PublicPlans lists plans by sort order with their apps
func (h *CatalogHandler) PublicPlans(c *gin.Context) {
	plans, err := h.plans.Public(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to load plans", err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *CatalogHandler) PublicApps(c *gin.Context) {
	apps, err := h.apps.Public(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to load apps", err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// PublicServices lists only active services
func (h *CatalogHandler) PublicServices(c *gin.Context) {
	services, err := h.services.LoadActive(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to load services", err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListPlans returns what the plan editor needs: plans, apps and links
func (h *CatalogHandler) ListPlans(c *gin.Context) {
	cat, err := h.plans.Load(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Erro ao carregar planos", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CatalogHandler) CreatePlan(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	plan, err := h.plans.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Erro ao salvar plano", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Plano criado com sucesso!", "plan": plan})
}

func (h *CatalogHandler) UpdatePlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	plan, err := h.plans.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "Erro ao salvar plano", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plano atualizado com sucesso!", "plan": plan})
}

func (h *CatalogHandler) DeletePlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.plans.Delete(c.Request.Context(), id, confirmed(c)); err != nil {
		respondError(c, h.logger, "Erro ao excluir plano", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plano excluído com sucesso!"})
}

func (h *CatalogHandler) ListApps(c *gin.Context) {
	apps, err := h.apps.Load(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Erro ao carregar apps", err)
		return
	}

	out := make([]gin.H, 0, len(apps))
	for _, app := range apps {
		out = append(out, gin.H{
			"id":           app.ID,
			"name":         app.Name,
			"icon_url":     app.IconURL,
			"resolved_url": h.apps.ResolveIcon(deref(app.IconURL)),
			"created_at":   app.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *CatalogHandler) CreateApp(c *gin.Context) {
	var req models.AppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	app, err := h.apps.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Erro ao salvar app", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "App criado com sucesso!", "app": app})
}

func (h *CatalogHandler) UpdateApp(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.AppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	app, err := h.apps.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "Erro ao salvar app", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "App atualizado com sucesso!", "app": app})
}

func (h *CatalogHandler) DeleteApp(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.apps.Delete(c.Request.Context(), id, confirmed(c)); err != nil {
		respondError(c, h.logger, "Erro ao excluir app", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "App excluído com sucesso!"})
}

// UploadIcon accepts a multipart "file" field and returns its public URL
func (h *CatalogHandler) UploadIcon(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required", "details": err.Error()})
		return
	}
	if header.Size > maxIconSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file", "details": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.apps.UploadIcon(c.Request.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, h.logger, "Erro ao enviar imagem", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Imagem enviada!", "url": url})
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.services.Load(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Erro ao carregar serviços", err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	service, err := h.services.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Erro ao criar serviço", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Serviço criado!", "service": service})
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	service, err := h.services.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "Erro ao atualizar serviço", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Serviço atualizado!", "service": service})
}

func (h *CatalogHandler) ToggleService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	active, err := h.services.ToggleActive(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Erro ao alterar status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status alterado!", "is_active": active})
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.services.Delete(c.Request.Context(), id, confirmed(c)); err != nil {
		respondError(c, h.logger, "Erro ao excluir serviço", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Serviço excluído!"})
}
