package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goods-receiving/core/config"
	"goods-receiving/core/database"
	"goods-receiving/core/loader"
	"goods-receiving/core/logger"
	"goods-receiving/core/middleware/auth"
	"goods-receiving/core/middleware/rayid"
	"goods-receiving/core/storage"

	"goods-receiving/feature/catalog"
	"goods-receiving/feature/extraction"
	"goods-receiving/feature/orders"
	"goods-receiving/feature/receiving"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "goods-receiving/docs/swagger"
)

// catalogSnapshotTTL bounds how stale the matcher's catalog view may be.
const catalogSnapshotTTL = 30 * time.Second

// @title Goods Receiving API
// @version 1.0
// @description API for receiving supplier deliveries and reconciling them against invoices and orders.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the goods receiving server",
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

		// 3. Connect to the remote store (optional at startup). The device
		// must still come up in a walk-in fridge with no reception; reads
		// then come from the local mirror.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Remote store connection failed, starting offline", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to remote store")
		}

		mirror, err := database.OpenMirror(cfg.Database)
		if err != nil {
			logg.Warn("Local mirror unavailable", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Object storage for the invoice paper trail (optional).
		var archiver *extraction.Archiver
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Invoice archive disabled, storage client failed", zap.Error(err))
		} else {
			archiver = extraction.NewArchiver(store, cfg.Storage.Bucket, logg)
		}

		// 6. Wire the domain: catalog, orders, extraction, receiving.
		catalogRepo, err := catalog.NewRepository(db, mirror, cfg.Server.BusinessID, logg)
		if err != nil {
			logg.Fatal("Failed to initialize catalog repository", zap.Error(err))
		}
		snapshot := catalog.NewSnapshotCache(catalogRepo, catalogSnapshotTTL)
		catalogService := catalog.NewService(catalogRepo, snapshot, logg)

		orderRepo := orders.NewRepository(db, cfg.Server.BusinessID, logg)

		extractor := extraction.NewHTTPExtractor(cfg.Extraction, logg)

		commit := receiving.NewCommitService(catalogRepo, orderRepo, logg)
		manager := receiving.NewManager(snapshot, commit, logg)
		receivingHandler := receiving.NewHandler(manager, extractor, archiver, orderRepo, logg)

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(catalog.NewFeature(catalogService))
		mgr.Register(orders.NewFeature(orderRepo, logg))
		mgr.Register(receiving.NewFeature(receivingHandler))

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
		if cfg.Server.HasAuth() {
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		}

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
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
