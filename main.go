package main

import (
	"net/http"
	"os"

	"artifactvault/config/database"
	"artifactvault/pkg/logger"
	"artifactvault/router"
	"artifactvault/socket"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	db := database.Connect()
	defer db.Close()

	hub := socket.NewHub()
	go hub.Run()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	logger.Sugar.Infof("Server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, router.Setup(db, hub)); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
