package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreaudit "parts-finder/core/audit"
	"parts-finder/core/config"
	"parts-finder/core/database"
	"parts-finder/core/loader"
	"parts-finder/core/logger"
	"parts-finder/core/middleware/auth"
	"parts-finder/core/middleware/rayid"
	"parts-finder/core/middleware/synctoken"
	"parts-finder/core/storage"

	"parts-finder/feature/admin"
	"parts-finder/feature/catalog"
	catalogmodels "parts-finder/feature/catalog/models"
	"parts-finder/feature/images"
	imagemodels "parts-finder/feature/images/models"
	"parts-finder/feature/inventory"
	invmodels "parts-finder/feature/inventory/models"
	"parts-finder/feature/users"
	usermodels "parts-finder/feature/users/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the parts finder server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(db,
			&catalogmodels.Part{},
			&catalogmodels.CrossReference{},
			&invmodels.SnapshotRow{},
			&usermodels.User{},
			&imagemodels.PartImage{},
			&coreaudit.ActivityLog{},
		); err != nil {
			logg.Fatal("Failed to run migrations", zap.Error(err))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		if err := storage.EnsureBucket(context.Background(), store, cfg.Storage); err != nil {
			logg.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		})

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		if cfg.Server.AllowedOrigins != "" {
			app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.AllowedOrigins}))
		} else {
			app.Use(cors.New())
		}

		// Request logging with Zap + RayID
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

		api := app.Group("/api")
		api.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// Shared route guards
		session := auth.New(auth.Config{Secret: cfg.Server.JwtSecret})
		syncGate := synctoken.New(synctoken.Config{Token: cfg.Server.SyncToken})
		recorder := coreaudit.NewRecorder(db, logg)
		jwtTTL := time.Duration(cfg.Server.JwtExpiresHours) * time.Hour

		// 6. Register Features
		// Inventory goes first so its reader can feed catalog stock enrichment.
		inventoryFeature := inventory.NewFeature(db, logg, session, syncGate)

		mgr := loader.NewManager()
		mgr.Register(users.NewFeature(db, logg, cfg.Server.JwtSecret, jwtTTL, recorder, session))
		mgr.Register(inventoryFeature)
		mgr.Register(catalog.NewFeature(db, logg, inventoryFeature.Service().Reader(), recorder, session))
		mgr.Register(images.NewFeature(db, store, cfg.Storage.Bucket, logg, recorder, session))
		mgr.Register(admin.NewFeature(db, store, cfg.Storage.Bucket, logg, recorder, session))

		if err := mgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
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
