package handlers

import (
	"context"
	"net/http"

	"github.com/drhenri-ux/octorlink/internal/auth"
	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/crm"
	"github.com/drhenri-ux/octorlink/internal/middleware"
	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminStore finds operators by email
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

// Login authenticates an operator, returns a JWT token and sets the
// session cookie used by admin page navigation
func Login(admins AdminStore, jwtService *auth.JWTService, secureCookie bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		admin, err := admins.GetAdminByEmail(c.Request.Context(), req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou senha inválidos"})
			return
		}
		if !auth.CheckPassword(admin.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou senha inválidos"})
			return
		}

		token, err := jwtService.GenerateToken(admin.ID, admin.Email)
		if err != nil {
			logger.Error("generating token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.AdminCookie, token, int(auth.TokenTTL.Seconds()), "/", "", secureCookie, true)

		logger.Info("admin login", zap.String("admin_id", admin.ID.String()))
		c.JSON(http.StatusOK, models.LoginResponse{
			Token:   token,
			AdminID: admin.ID,
			Email:   admin.Email,
		})
	}
}

// Logout clears the session cookie
func Logout(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.AdminCookie, "", -1, "/", "", secureCookie, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logout realizado"})
	}
}

// Dashboard summarises the back-office for a signed-in operator
func Dashboard(leads crm.LeadStore, referrals *catalog.ReferralManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		board := crm.NewBoard(leads, logger)
		if err := board.Load(c.Request.Context()); err != nil {
			respondError(c, logger, "Erro ao carregar leads", err)
			return
		}
		stats, err := referrals.Stats(c.Request.Context())
		if err != nil {
			respondError(c, logger, "Erro ao carregar indicações", err)
			return
		}

		counts := make([]gin.H, 0, len(crm.Columns))
		for _, col := range board.Columns() {
			counts = append(counts, gin.H{"status": col.Status, "label": col.Label, "count": col.Count})
		}

		email, _ := middleware.GetAdminEmail(c)
		c.JSON(http.StatusOK, gin.H{
			"admin":     email,
			"leads":     gin.H{"total": board.Total(), "columns": counts},
			"referrals": stats,
		})
	}
}
