package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/handlers"
	"github.com/JonnyWalker81/energy/backend/internal/logger"
	"github.com/JonnyWalker81/energy/backend/internal/metrics"
	"github.com/JonnyWalker81/energy/backend/internal/middleware"
	"github.com/JonnyWalker81/energy/backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

const (
	idempotencyTTL  = 24 * time.Hour
	shutdownTimeout = 15 * time.Second
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	// Override port from flag if provided
	if port != "" {
		a.cfg.Server.Port = port
	}

	a.log.Info("starting energy API server",
		logger.String("env", a.cfg.Server.Env),
		logger.String("driver", a.cfg.Database.Driver),
		logger.String("timezone", a.engine.Location().String()),
	)

	limiter := middleware.NewRateLimiter(a.cfg.Server.RateLimitPerMinute, time.Minute, "api")
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           newRouter(a, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", logger.String("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newRouter(a *app, limiter *middleware.RateLimiter) *gin.Engine {
	// Set Gin mode based on environment
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID(a.log))
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(a.cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeaders(a.cfg.IsProduction()))

	router.GET("/health", func(c *gin.Context) {
		if err := a.store.Ping(c.Request.Context()); err != nil {
			logger.Ctx(c.Request.Context()).Error("health check failed", logger.Err(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"env":    a.cfg.Server.Env,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    a.cfg.Server.Env,
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	activityHandler := handlers.NewActivityHandler(a.activity, a.insights)
	insightsHandler := handlers.NewInsightsHandler(a.insights)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(middleware.AuthConfig{
		Secret: a.cfg.Auth.JWTSecret,
		Issuer: a.cfg.Auth.Issuer,
	}))
	v1.Use(middleware.RateLimit(limiter))

	handlers.RegisterRoutes(v1, activityHandler, insightsHandler,
		middleware.Idempotency(repository.NewMemoryIdempotencyStore(idempotencyTTL)))

	return router
}
