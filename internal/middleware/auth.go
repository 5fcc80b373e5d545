package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/drhenri-ux/octorlink/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// AdminCookie carries the session token for browser navigation
	AdminCookie = "admin_token"

	// LoginPath is where unauthenticated admin page requests are sent
	LoginPath = "/admin/login"

	authAdminKey = "auth_admin_id"
	authEmailKey = "auth_email"
)

var errNoToken = errors.New("no token")

// tokenFromRequest reads a bearer token, falling back to the session cookie
func tokenFromRequest(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", auth.ErrInvalidToken
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(AdminCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errNoToken
}

func authenticate(c *gin.Context, jwtService *auth.JWTService) error {
	token, err := tokenFromRequest(c)
	if err != nil {
		return err
	}
	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		return err
	}

	c.Set(authAdminKey, claims.AdminID)
	c.Set(authEmailKey, claims.Email)
	return nil
}

// RequireAuth validates the admin token and sets the admin in context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := authenticate(c, jwtService)
		if err == nil {
			c.Next()
			return
		}

		switch {
		case errors.Is(err, errNoToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case errors.Is(err, auth.ErrExpiredToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		}
		c.Abort()
	}
}

// RedirectToLogin guards admin pages: visitors without a valid session
// are sent to the login page instead of getting a JSON error
func RedirectToLogin(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, jwtService); err != nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAdminID retrieves the authenticated admin ID from context
func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	id, exists := c.Get(authAdminKey)
	if !exists {
		return uuid.Nil, false
	}
	return id.(uuid.UUID), true
}

// GetAdminEmail retrieves the authenticated admin email from context
func GetAdminEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(authEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
