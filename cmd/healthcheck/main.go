package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/zemlex/estate-catalog/internal/config"
	"github.com/zemlex/estate-catalog/internal/database"
	"github.com/zemlex/estate-catalog/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	result := services.CheckHealth(db)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	if result.Status != "ok" {
		os.Exit(1)
	}
	os.Exit(0)
}
