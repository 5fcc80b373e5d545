package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drhenri-ux/octorlink/internal/auth"
	"github.com/drhenri-ux/octorlink/internal/catalog"
	"github.com/drhenri-ux/octorlink/internal/config"
	"github.com/drhenri-ux/octorlink/internal/database"
	"github.com/drhenri-ux/octorlink/internal/handlers"
	"github.com/drhenri-ux/octorlink/internal/middleware"
	"github.com/drhenri-ux/octorlink/internal/postal"
	"github.com/drhenri-ux/octorlink/internal/repository"
	"github.com/drhenri-ux/octorlink/internal/storage"
	"github.com/drhenri-ux/octorlink/internal/whatsapp"
	"github.com/drhenri-ux/octorlink/internal/wizard"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Version = "dev"

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		cancel()
		logger.Fatal("database migration failed", zap.Error(err))
	}
	logger.Info("database ready", zap.Any("pool", db.PoolStats()))

	// Wizard sessions live in Redis when configured, in process otherwise
	var (
		redisClient *redis.Client
		sessions    wizard.Store
		stopSweep   = func() {}
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		defer redisClient.Close()
		sessions = wizard.NewRedisStore(redisClient, cfg.WizardSessionTTL)
		logger.Info("wizard sessions in redis", zap.String("addr", cfg.RedisAddr))
	} else {
		memory := wizard.NewMemoryStore(cfg.WizardSessionTTL)
		stopSweep = sweepSessions(memory, logger)
		sessions = memory
		logger.Info("wizard sessions in memory")
	}
	defer stopSweep()

	var objects catalog.ObjectStore
	if cfg.ObjectStoreEnabled() {
		store, err := storage.NewObjectStore(ctx, storage.Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			UseSSL:    cfg.S3UseSSL,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			cancel()
			logger.Fatal("object store init failed", zap.Error(err))
		}
		objects = store
	} else {
		logger.Warn("S3 not configured, icon uploads disabled")
	}
	cancel()

	leadRepo := repository.NewLeadRepository(db.Pool)
	appManager := catalog.NewAppManager(repository.NewAppRepository(db.Pool), objects, logger)
	wizards := wizard.NewService(
		sessions,
		postal.NewViaCEP(cfg.PostalLookupURL),
		wizard.NewSubmitter(leadRepo, logger),
		logger,
	)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger), middleware.CORS(cfg.CORSOrigins))

	handlers.RegisterRoutes(r, handlers.Deps{
		Logger:    logger,
		JWT:       auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer),
		Admins:    repository.NewAdminRepository(db.Pool),
		Leads:     leadRepo,
		Wizards:   wizards,
		Plans:     catalog.NewPlanManager(repository.NewPlanRepository(db.Pool), appManager, logger),
		Apps:      appManager,
		Services:  catalog.NewServiceManager(repository.NewServiceRepository(db.Pool)),
		Referrals: catalog.NewReferralManager(repository.NewReferralRepository(db.Pool), logger),
		Settings:  catalog.NewSettingsManager(repository.NewSettingsRepository(db.Pool), redisClient, logger),
		WhatsApp:  whatsapp.Linker{Number: cfg.WhatsAppNumber},
		Health:    db.Health,

		Version:      Version,
		SecureCookie: !cfg.IsDevelopment(),
		StaticDir:    cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// sweepSessions drops expired in-memory wizards every minute
func sweepSessions(store *wizard.MemoryStore, logger *zap.Logger) func() {
	ticker := time.NewTicker(time.Minute)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if n := store.Sweep(); n > 0 {
					logger.Debug("expired wizard sessions removed", zap.Int("count", n))
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
