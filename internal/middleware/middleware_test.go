package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drhenri-ux/octorlink/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	r := gin.New()
	r.GET("/api", RequireAuth(jwtService), func(c *gin.Context) {
		email, _ := GetAdminEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	r.GET("/admin", RedirectToLogin(jwtService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	jwtService := auth.NewJWTService("secret", "octorlink")
	token, err := jwtService.GenerateToken(uuid.New(), "admin@octorlink.com.br")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	r := newAuthRouter(jwtService)

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"no credentials", "", "", http.StatusUnauthorized},
		{"bearer", "Bearer " + token, "", http.StatusOK},
		{"cookie", "", token, http.StatusOK},
		{"bad scheme", "Token " + token, "", http.StatusUnauthorized},
		{"garbage", "Bearer abc", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AdminCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d; want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRedirectToLogin(t *testing.T) {
	jwtService := auth.NewJWTService("secret", "octorlink")
	r := newAuthRouter(jwtService)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != LoginPath {
		t.Fatalf("status = %d, location = %q", w.Code, w.Header().Get("Location"))
	}

	token, _ := jwtService.GenerateToken(uuid.New(), "a@b.c")
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()), Recovery(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
}
