package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nuxxor/Mevzubase/handlers"
	"github.com/nuxxor/Mevzubase/llm"
	"github.com/nuxxor/Mevzubase/petitions"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	// Initialize LLM client
	client, err := llm.NewClientFromEnv(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	log.Println("LLM client initialized")

	generator, err := petitions.NewGenerator(client)
	if err != nil {
		log.Fatalf("Failed to initialize generator: %v", err)
	}

	// Initialize handlers
	generateHandler := handlers.NewGenerateHandler(generator)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	r.POST("/generate", generateHandler.Generate)

	// Start server
	port := os.Getenv("GENERATE_PORT")
	if port == "" {
		port = "9000"
	}

	log.Printf("Generation server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
