package main

import (
	"log"

	"github.com/foodexpress/foodexpress-client/config"
	"github.com/foodexpress/foodexpress-client/internal/devstack"
)

// Seeds the devstack database with the demo restaurants, dishes and user
// without starting the services. Running it twice is safe.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := devstack.OpenDatabase(cfg.Devstack)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := devstack.Seed(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	log.Println("Seed completed")
}
