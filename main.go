package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selvacse6139/SK-Associate/config"
	"github.com/selvacse6139/SK-Associate/handler"
	"github.com/selvacse6139/SK-Associate/middleware"
	"github.com/selvacse6139/SK-Associate/pkg/logger"
	"github.com/selvacse6139/SK-Associate/service"
)

func main() {
	// Load configuration (optional YAML file plus environment overlay)
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully", "brand", cfg.Brand.Name)

	// Delivery providers in fixed priority order: a direct email is the most
	// immediate notification, a structured record the next best, the
	// spreadsheet the last resort.
	dispatcher := service.NewDispatcher(
		service.NewEmailProvider(&cfg.SMTP, cfg.Brand.Name),
		service.NewAirtableProvider(&cfg.Airtable),
		service.NewSheetsProvider(&cfg.Sheets),
	)

	leadHandler := handler.NewLeadHandler(dispatcher)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 8 << 20

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(30, time.Minute))

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/lead", leadHandler.Submit)
		api.GET("/emi", handler.EMIQuote)
	}

	// Serve the built single-page front-end when it is present
	indexFile := filepath.Join(cfg.Server.StaticDir, "index.html")
	if _, err := os.Stat(indexFile); err == nil {
		slog.Info("serving static files", "directory", cfg.Server.StaticDir)
		router.Static("/assets", filepath.Join(cfg.Server.StaticDir, "assets"))
		router.StaticFile("/", indexFile)
		router.NoRoute(func(c *gin.Context) {
			// Client-routed paths fall back to the SPA shell
			if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.File(indexFile)
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		})
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
