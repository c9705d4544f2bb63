package main

import (
	"context"
	"log"
	"time"

	"storefront-assistant-be/internal/bootstrap"
	"storefront-assistant-be/internal/config"
	"storefront-assistant-be/internal/server"
	"storefront-assistant-be/internal/tracer"
	"storefront-assistant-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Insight Consumer...")
		if err := container.InsightService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	go func() {
		log.Println("Background: Starting Monitor Consumer...")
		if err := container.MonitorService.Consume(); err != nil {
			log.Printf("Background Monitor Error: %v", err)
		}
	}()

	// Inactivity sweep: auto-end conversations idle past the window
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			ended, err := container.DialogueService.EndInactiveConversations(context.Background())
			if err != nil {
				log.Printf("Background Sweep Error: %v", err)
				continue
			}
			if ended > 0 {
				log.Printf("Background: Ended %d inactive conversations", ended)
			}
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
