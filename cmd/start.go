package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uloggd/core/loader"
	"uloggd/core/logger"
	"uloggd/core/middleware/rayid"
	"uloggd/feature/games"
	"uloggd/feature/integrity"
	"uloggd/feature/library"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "uloggd/docs/swagger"
)

// @title uloggd API
// @version 1.0
// @description Game catalog cache and library service.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the uloggd server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		cfg := rt.cfg
		logg := rt.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			BodyLimit:             cfg.Server.BodyLimitBytes,
			ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout:          time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(games.NewFeature(cfg.Catalog, rt.catalog, rt.store, rt.backfill, logg))
		mgr.Register(library.NewFeature(rt.db, rt.codec, logg))
		mgr.Register(integrity.NewFeature(rt.db, schemaModels(), rt.storage, cfg.Storage, cfg.Cache.StoragePrefix, logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			l.Info("Request completed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
				zap.String("ip", c.IP()),
			)
			return err
		})

		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		if !cfg.Server.IsProduction() {
			app.Get("/swagger/*", swagger.HandlerDefault)
		}

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("environment", cfg.Server.Environment),
				zap.String("cache_backend", cfg.Cache.Backend))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		// Pending backfill writes drain in rt.Close.
		return nil
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
