package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"warbler/config"
	"warbler/database"
	"warbler/handlers"
	"warbler/logger"
	"warbler/repositories"
	"warbler/routes"
)

func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.LogFile)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	sessions := handlers.NewSessionManager([]byte(cfg.SecretKey), cfg.SessionName, cfg.CurrUserKey)
	userHandler := handlers.NewUserHandler(userRepo, messageRepo, sessions)
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, sessions)

	router := routes.SetupRoutes(userHandler, messageHandler)

	logrus.Infof("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logrus.Fatal(err)
	}
}
