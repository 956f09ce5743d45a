package main

import (
	"context"
	"log"

	"cybertech/chat"
	"cybertech/config"
	"cybertech/database"
	"cybertech/middleware"
	"cybertech/routes"
	"cybertech/storage"
	"cybertech/store"
	"cybertech/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// State stores over the snapshot storage
	kv := storage.New(db)
	identity := store.NewIdentityStore(kv)
	catalog := store.NewCatalogStore(kv)

	// Startup invariants: reserved admin account and seed catalog
	if err := identity.EnsureAdmin(); err != nil {
		log.Fatalf("Error ensuring admin account: %v", err)
	}
	if err := catalog.EnsureCatalog(); err != nil {
		log.Fatalf("Error seeding catalog: %v", err)
	}

	// Chat assistant is optional; without an API key the endpoint answers 503
	var assistant *chat.Assistant
	if cfg.GeminiAPIKey != "" {
		assistant, err = chat.NewAssistant(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Error initializing chat assistant: %v", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set, chat assistant disabled")
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, identity, catalog, assistant, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
