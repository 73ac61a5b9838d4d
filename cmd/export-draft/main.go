package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/nuxxor/Mevzubase/export"
	"github.com/nuxxor/Mevzubase/llm"
	"github.com/nuxxor/Mevzubase/models"
	"github.com/nuxxor/Mevzubase/petitions"
	"github.com/nuxxor/Mevzubase/storage"
)

// export-draft renders the persisted draft offline (static LLM client, so
// the template fallback fills the sections from the user's own input) and
// writes text, Markdown, and HTML files.
func main() {
	outDir := flag.String("out", ".", "directory for exported files")
	name := flag.String("name", "dilekce", "base name for exported files")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables: %v", err)
	}

	store, err := storage.NewStoreFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	ctx := context.Background()

	value, ok, err := store.Get(ctx, storage.DraftKey)
	if err != nil {
		log.Fatalf("Failed to read persisted draft: %v", err)
	}
	if !ok {
		log.Fatal("No persisted draft found")
	}

	var draft models.PetitionDraft
	if err := json.Unmarshal([]byte(value), &draft); err != nil {
		log.Fatalf("Persisted draft did not parse: %v", err)
	}
	draft.Normalize()

	generator, err := petitions.NewGenerator(&llm.StaticClient{})
	if err != nil {
		log.Fatalf("Failed to initialize generator: %v", err)
	}

	payload := models.BuildGenerationPayload(draft)
	output, err := generator.Generate(ctx, payload)
	if err != nil {
		log.Fatalf("Failed to render draft: %v", err)
	}

	textPath := filepath.Join(*outDir, *name+".txt")
	if err := export.WriteText(textPath, output); err != nil {
		log.Fatalf("Failed to export text: %v", err)
	}

	mdPath := filepath.Join(*outDir, *name+".md")
	if err := export.WriteMarkdown(mdPath, payload, output); err != nil {
		log.Fatalf("Failed to export markdown: %v", err)
	}

	htmlPath := filepath.Join(*outDir, *name+".html")
	if err := export.WriteHTML(htmlPath, payload, output); err != nil {
		log.Fatalf("Failed to export html: %v", err)
	}

	log.Printf("Exported %s, %s, %s", textPath, mdPath, htmlPath)

	for _, warning := range output.QAWarnings {
		log.Printf("QA: %s", warning)
	}
}
