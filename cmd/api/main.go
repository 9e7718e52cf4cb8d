package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/w1ncs/netcontrol/internal/badges"
	"github.com/w1ncs/netcontrol/internal/config"
	"github.com/w1ncs/netcontrol/internal/database"
	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/handlers"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/procedures"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.Profile{},
		&models.Net{},
		&models.NetSession{},
		&models.CheckIn{},
		&models.BadgeDefinition{},
		&models.AwardedBadge{},
		&models.RosterMember{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Load the badge catalog and mirror it into the database
	catalog, err := badges.Load(cfg.Badges.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load badge catalog: %v", err)
	}
	if err := catalog.Sync(db.DB); err != nil {
		log.Printf("⚠️ Badge catalog sync warning: %v", err)
	} else {
		log.Printf("✅ Badge catalog loaded (%d badges)", len(catalog.Definitions()))
	}

	// 5. Start the change-feed hub
	hub := feed.NewHub()
	go hub.Run()
	log.Println("📡 Change feed hub started")

	// 6. Procedures and HTTP router
	procs := procedures.NewService(db, hub, catalog, cfg.JWTSecret)
	router := handlers.NewRouter(db, hub, procs, cfg)

	// Optional badge backfill after catalog changes; best-effort housekeeping
	if cfg.Badges.BackfillOnStart {
		go func() {
			time.Sleep(5 * time.Second)
			procs.BackfillBadges()
		}()
	}

	// 7. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 NetControl server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
