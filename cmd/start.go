package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"game-importer/core/loader"
	"game-importer/core/logger"
	"game-importer/core/middleware/auth"
	"game-importer/core/middleware/rayid"
	"game-importer/core/storage"
	"game-importer/feature/importer"
	"game-importer/feature/integrity"
	"game-importer/feature/records"
	featureSettings "game-importer/feature/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "game-importer/docs/swagger"
)

// @title Game Importer API
// @version 1.0
// @description API for importing catalog items into local records.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the importer server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(true)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := storage.EnsureBucket(cmd.Context(), a.store, a.cfg.Storage.Bucket, a.cfg.Storage.Region); err != nil {
			logg.Warn("Media bucket is not ready", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(importer.NewFeature(a.settings, a.engine, logg))
		mgr.Register(records.NewFeature(a.records, a.terms, a.settings, a.media, logg))
		mgr.Register(featureSettings.NewFeature(a.settings, logg))
		mgr.Register(integrity.NewFeature(a.store, a.cfg.Storage, a.db, allModels(), logg))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
