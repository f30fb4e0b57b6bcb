package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campulse/internal/api"
	"campulse/internal/auth"
	"campulse/internal/config"
	"campulse/internal/httpmiddleware"
	"campulse/internal/session"
	"campulse/internal/web"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

// healthChecker is implemented by the redis and postgres session backends.
type healthChecker interface {
	Healthy(ctx context.Context) bool
}

func runHTTP(cfg config.App) error {
	var sessions session.Store
	switch cfg.SessionBackend {
	case "memory":
		log.Println("session store: memory (sessions will not survive restarts)")
		sessions = session.NewMemory()
	case "postgres":
		pg, err := session.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		sessions = pg
	default:
		sessions = session.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	client := api.New(cfg.APIBaseURL, cfg.APITimeout,
		api.WithTokenSource(auth.Tokens{Store: sessions}),
		api.WithUnauthorizedHook(auth.ClearCredentials(sessions)),
	)
	svc := auth.NewService(sessions, client)

	handler, err := web.New(client, svc, sessions)
	if err != nil {
		return err
	}

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Request logging
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics", "/static"},
	}))

	// Security headers
	r.Use(securityHeaders())

	// Rate limiting and request metrics
	r.Use(httpmiddleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitPerMin).Middleware())
	r.Use(httpmiddleware.Metrics())

	// Browser session cookie
	r.Use(auth.SessionCookie(cfg.CookieSecure))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		storeHealthy := true
		if hc, ok := sessions.(healthChecker); ok {
			storeHealthy = hc.Healthy(c.Request.Context())
		}
		status := http.StatusOK
		if !storeHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "session_store": storeHealthy})
	})

	handler.Register(r)

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s (backend %s)", cfg.HTTPPort, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
