package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nuxxor/Mevzubase/editor"
	"github.com/nuxxor/Mevzubase/handlers"
	"github.com/nuxxor/Mevzubase/service"
	"github.com/nuxxor/Mevzubase/storage"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	// Initialize storage
	store, err := storage.NewStoreFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	// Initialize document surface
	surface := editor.NewMarkupSurface()

	// Initialize services
	syncService := service.NewSyncService(
		service.WithStore(store),
		service.WithSurface(surface),
	)

	if err := syncService.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load persisted draft: %v", err)
	}
	log.Println("Draft state restored")

	endpoint := os.Getenv("GENERATE_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:9000/generate"
	}

	genService := service.NewGenerationService(
		service.GenerationWithSyncService(syncService),
		service.GenerationWithSurface(surface),
		service.GenerationWithEndpoint(endpoint),
	)

	// Initialize handlers
	draftHandler := handlers.NewDraftHandler(syncService, genService, surface)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/draft", draftHandler.GetDraft)
		api.PUT("/draft", draftHandler.ReplaceDraft)
		api.POST("/draft/fields", draftHandler.UpdateField)
		api.POST("/draft/:list/items", draftHandler.AppendListItem)
		api.PATCH("/draft/:list/items/:index", draftHandler.UpdateListItem)
		api.DELETE("/draft/:list/items/:index", draftHandler.RemoveListItem)
		api.POST("/draft/generate", draftHandler.Generate)
		api.POST("/draft/reset", draftHandler.Reset)
		api.GET("/draft/status", draftHandler.Status)
		api.GET("/draft/content", draftHandler.GetContent)
		api.PUT("/draft/content", draftHandler.SetContent)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := r.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Flush any pending draft state before exiting so the debounce timer
	// never fires against a torn-down store
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down, flushing draft state")
	syncService.Close()
	syncService.Flush(context.Background())
}
