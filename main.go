package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/routes"
	"github.com/Yassin6up/somoo-sub001/services"
)

func main() {
	// Load .env if present (do not overwrite already-set environment variables).
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	requiredEnvVars := []string{"DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "JWT_SECRET"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto-migrate only in development to avoid accidental production schema changes
	if strings.ToLower(os.Getenv("ENV")) == "development" {
		log.Println("Running in development mode - performing auto-migration")
		if err := db.AutoMigrate(
			&models.Admin{},
			&models.RefreshToken{},
			&models.RevokedToken{},
			&models.User{},
			&models.Wallet{},
			&models.WalletCredit{},
			&models.Group{},
			&models.GroupMember{},
			&models.Project{},
			&models.Campaign{},
			&models.Task{},
			&models.TaskReview{},
			&models.Withdrawal{},
			&models.Transaction{},
			&models.Notification{},
			&models.Conversation{},
			&models.Message{},
			&models.Setting{},
		); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		if _, err := models.GetSetting(db); err != nil {
			log.Fatalf("failed to seed settings: %v", err)
		}
		log.Println("Auto-migration completed successfully")
	} else {
		log.Println("Running in production mode - skipping auto-migration")
	}

	// In-process maturation sweep. The /cron/mature-credits endpoint covers
	// deployments that prefer an external scheduler.
	sweeper := cron.New()
	schedule := os.Getenv("MATURE_SWEEP_SCHEDULE")
	if schedule == "" {
		schedule = "@every 10m"
	}
	if _, err := sweeper.AddFunc(schedule, func() {
		matured, err := services.MatureDueCredits(database.DB, time.Now())
		if err != nil {
			log.Printf("[sweep] maturation failed: %v", err)
			return
		}
		if matured > 0 {
			log.Printf("[sweep] matured %d wallet credits", matured)
		}
	}); err != nil {
		log.Fatalf("invalid sweep schedule %q: %v", schedule, err)
	}
	sweeper.Start()

	router := routes.InitRouter()

	// Global middleware: Logging -> Security headers -> Request ID -> Max Body -> Timeout -> Recovery
	handler := middleware.RequestLogMiddleware(
		middleware.SecurityHeadersMiddleware(
			middleware.RequestIDMiddleware(
				middleware.MaxBodyMiddleware(
					middleware.TimeoutMiddleware(
						middleware.RecoveryMiddleware(router),
					),
				),
			),
		),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
