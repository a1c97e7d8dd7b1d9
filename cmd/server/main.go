package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avatar-studio/internal/client"
	"avatar-studio/internal/config"
	"avatar-studio/internal/handler"
	"avatar-studio/internal/logger"
	"avatar-studio/internal/middleware"
	"avatar-studio/internal/service"
	"avatar-studio/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
		Service:  "avatar-studio",
	})
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)
	cfg.LogSummary(log)

	// --- Dependencies ---
	backend, err := client.NewBackendClient(cfg.BackendURL, cfg.ClientTimeout, log)
	if err != nil {
		log.Fatal("Failed to create backend client", zap.Error(err))
	}
	workflow := service.NewWorkflow(backend, log)

	renderer, err := web.NewTemplateRenderer(cfg.TemplatesDir, cfg.IsDevelopment(), log)
	if err != nil {
		log.Fatal("Failed to load templates", zap.Error(err))
	}

	// --- Router ---
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HTMLRender = renderer
	router.Use(gin.Recovery())
	router.Use(middleware.GinZapLogger(log))
	router.Use(handler.CustomErrorMiddleware(log, renderer))

	corsConfig := cors.DefaultConfig()
	if origins := cfg.GetAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
		log.Info("CORS_ALLOWED_ORIGINS not set, allowing all origins")
	}
	corsConfig.AllowMethods = []string{"GET", "HEAD", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type",
		"HX-Request", "HX-Trigger", "HX-Target", "HX-Current-URL"}
	corsConfig.ExposeHeaders = []string{"HX-Retarget", "HX-Reswap", middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Middleware метрик должно стоять до маршрутов, иначе gin не добавит его в их цепочки.
	p := ginprometheus.NewPrometheus("gin")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if route := c.FullPath(); route != "" {
			return route
		}
		return "unmatched"
	}
	p.Use(router)

	handler.NewHandler(workflow, cfg.DefaultModel, log).RegisterRoutes(router)

	// --- HTTP Server ---
	srv := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Создание контента ждет бэкенд, поэтому запись ограничена только таймаутом клиента.
		WriteTimeout: writeTimeout(cfg.ClientTimeout),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("port", cfg.ServerPort), zap.String("backendURL", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exiting")
}

// writeTimeout возвращает 0 (без ограничения), если у клиента бэкенда нет таймаута.
func writeTimeout(clientTimeout time.Duration) time.Duration {
	if clientTimeout <= 0 {
		return 0
	}
	return clientTimeout + 15*time.Second
}
