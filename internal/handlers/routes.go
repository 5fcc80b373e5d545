package handlers

import (
	"context"
	"net/http"

	"github.com/drhenri-ux/octorlink/internal/auth"
	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/middleware"
	"github.com/drhenri-ux/octorlink/internal/whatsapp"
	"github.com/drhenri-ux/octorlink/internal/wizard"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the routes need
type Deps struct {
	Logger    *zap.Logger
	JWT       *auth.JWTService
	Admins    AdminStore
	Leads     LeadStore
	Wizards   *wizard.Service
	Plans     *catalog.PlanManager
	Apps      *catalog.AppManager
	Services  *catalog.ServiceManager
	Referrals *catalog.ReferralManager
	Settings  *catalog.SettingsManager
	WhatsApp  whatsapp.Linker

	// Health reports store reachability for /health
	Health func(ctx context.Context) error

	Version      string
	SecureCookie bool
	StaticDir    string
}

// RegisterRoutes mounts the public API, the admin API and the front end
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "details": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": d.Version})
	})

	api := r.Group("/api")
	{
		api.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"version": d.Version, "service": "octorlink"})
		})

		catalogHandler := NewCatalogHandler(d.Plans, d.Apps, d.Services, d.Logger)
		api.GET("/plans", catalogHandler.PublicPlans)
		api.GET("/apps", catalogHandler.PublicApps)
		api.GET("/services", catalogHandler.PublicServices)
		api.GET("/site-settings", GetSiteSettings(d.Settings, d.Logger))
		api.GET("/whatsapp-link", WhatsAppLink(d.WhatsApp))

		referralHandler := NewReferralHandler(d.Referrals, d.Logger)
		api.POST("/referrals", referralHandler.Submit)

		leadHandler := NewLeadHandler(d.Leads, d.Logger)
		api.POST("/business-leads", leadHandler.CreateBusinessLead)

		wizardHandler := NewWizardHandler(d.Wizards, d.Apps, d.Logger)
		wz := api.Group("/wizard")
		wz.POST("", wizardHandler.Open)
		wz.GET("/:id", wizardHandler.Get)
		wz.PATCH("/:id", wizardHandler.Update)
		wz.POST("/:id/next", wizardHandler.Next)
		wz.POST("/:id/back", wizardHandler.Back)
		wz.POST("/:id/services/toggle", wizardHandler.ToggleService)
		wz.POST("/:id/cep", wizardHandler.LookupAddress)
		wz.POST("/:id/submit", wizardHandler.Submit)
		wz.DELETE("/:id", wizardHandler.Close)
	}

	r.POST("/admin/login", Login(d.Admins, d.JWT, d.SecureCookie, d.Logger))
	r.POST("/admin/logout", Logout(d.SecureCookie))
	r.GET("/admin", middleware.RedirectToLogin(d.JWT), Dashboard(d.Leads, d.Referrals, d.Logger))

	admin := r.Group("/admin/api", middleware.RequireAuth(d.JWT))
	{
		admin.GET("/dashboard", Dashboard(d.Leads, d.Referrals, d.Logger))

		leadHandler := NewLeadHandler(d.Leads, d.Logger)
		admin.GET("/leads/board", leadHandler.GetBoard)
		admin.GET("/leads/:id", leadHandler.GetLead)
		admin.POST("/leads/:id/move", leadHandler.MoveLead)
		admin.DELETE("/leads/:id", leadHandler.DeleteLead)

		catalogHandler := NewCatalogHandler(d.Plans, d.Apps, d.Services, d.Logger)
		admin.GET("/plans", catalogHandler.ListPlans)
		admin.POST("/plans", catalogHandler.CreatePlan)
		admin.PUT("/plans/:id", catalogHandler.UpdatePlan)
		admin.DELETE("/plans/:id", catalogHandler.DeletePlan)

		admin.GET("/apps", catalogHandler.ListApps)
		admin.POST("/apps", catalogHandler.CreateApp)
		admin.POST("/apps/icon", catalogHandler.UploadIcon)
		admin.PUT("/apps/:id", catalogHandler.UpdateApp)
		admin.DELETE("/apps/:id", catalogHandler.DeleteApp)

		admin.GET("/services", catalogHandler.ListServices)
		admin.POST("/services", catalogHandler.CreateService)
		admin.PUT("/services/:id", catalogHandler.UpdateService)
		admin.PATCH("/services/:id/active", catalogHandler.ToggleService)
		admin.DELETE("/services/:id", catalogHandler.DeleteService)

		referralHandler := NewReferralHandler(d.Referrals, d.Logger)
		admin.GET("/referrals", referralHandler.List)
		admin.PATCH("/referrals/:id/status", referralHandler.UpdateStatus)
		admin.DELETE("/referrals/:id", referralHandler.Delete)

		admin.GET("/site-settings", GetSiteSettings(d.Settings, d.Logger))
		admin.PATCH("/site-settings", UpdateSiteSettings(d.Settings, d.Logger))
	}

	if d.StaticDir != "" {
		r.NoRoute(SPAFallback(d.StaticDir))
	} else {
		r.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		})
	}
}
