package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"techfix/internal/api"
	"techfix/internal/app/service"
	"techfix/internal/app/worker"
	"techfix/internal/common/security"
	"techfix/internal/domain/repository"
	"techfix/internal/platform/config"
	"techfix/internal/platform/database"
	"techfix/internal/platform/mail"
	"techfix/internal/platform/queue"
	"techfix/internal/platform/storage"
	"time"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Could not migrate database: %v", err)
	}
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	solutionRepo := repository.NewPgSolutionRepository(database.DB)
	voteRepo := repository.NewPgVoteRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	notificationService := service.NewNotificationService(queue.RDB)
	problemService := service.NewProblemService(problemRepo, solutionRepo)
	solutionService := service.NewSolutionService(solutionRepo, problemRepo, userRepo, voteRepo, notificationService, database.DB)
	imageStore := storage.NewLocalImageStore(config.AppConfig.UploadDir)
	userService := service.NewUserService(userRepo, problemRepo, solutionRepo, imageStore)

	// 7. Initialize Notification Worker (as a goroutine)
	mailer := mail.NewFromConfig()
	notificationWorker := worker.NewNotificationWorker(queue.RDB, userRepo, problemRepo, solutionRepo, mailer)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go notificationWorker.Start(workerCtx)
	fmt.Println("Notification worker started.")

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, problemService, solutionService, userService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal worker to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
