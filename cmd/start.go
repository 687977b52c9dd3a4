package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listsync/core/config"
	"listsync/core/database"
	"listsync/core/loader"
	"listsync/core/logger"
	"listsync/core/middleware/auth"
	"listsync/core/middleware/rayid"
	"listsync/core/storage"

	"listsync/feature/images"
	"listsync/feature/lists"
	"listsync/feature/sync"
	"listsync/feature/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "listsync/docs/swagger"
)

// @title List Sync API
// @version 1.0
// @description API for synchronizing shopping and to-do lists across devices.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the list sync server",
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
		store, err := lists.NewRepository(db, logg)
		if err != nil {
			logg.Fatal("Failed to initialize record store", zap.Error(err))
		}

		// 4. Initialize Blob Storage (Optional)
		// The engine runs fine without it: image records still sync and
		// import, only the payload bytes are skipped.
		var imageStore *images.Store
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional blob storage connection failed", zap.Error(err))
		} else {
			imageStore = images.NewStore(client, cfg.Storage.Bucket, logg)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := imageStore.EnsureBucket(ctx); err != nil {
				logg.Warn("Failed to ensure image bucket, running without blob storage", zap.Error(err))
				imageStore = nil
			}
			cancel()
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		// images.Store implements both the suggestion-copy and the
		// import/export blob interfaces; a nil store disables payloads only.
		var copier lists.ImageCopier
		var blobs transfer.ImageStore
		if imageStore != nil {
			copier, blobs = imageStore, imageStore
		}
		syncFeature := sync.NewFeature(store, cfg.Sync, logg)
		mgr.Register(lists.NewFeature(store, copier, logg))
		mgr.Register(syncFeature)
		mgr.Register(transfer.NewFeature(store, blobs, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("device", cfg.Server.DeviceName),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		syncFeature.Close()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
