package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mortgage-connect-be/internal/bootstrap"
	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/server"
	"mortgage-connect-be/internal/tracer"
	"mortgage-connect-be/pkg/database"

	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional)
	var gormDB *gorm.DB
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsDevelopment())
	switch {
	case errors.Is(err, database.ErrNoDSN):
		log.Println("DB_CONNECTION_STRING not set, running without a database")
	case err != nil:
		log.Panicf("Unable to connect to GORM DB: %v", err)
	default:
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	go container.WebSocketHub.Run(ctx)
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}
	if err := container.NotificationService.Start(ctx); err != nil {
		log.Printf("Notification Service Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(shutdownTimeout); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
