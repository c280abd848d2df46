package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/reelpick/reelpick/internal/agent"
	"github.com/reelpick/reelpick/internal/api"
	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/database"
	"github.com/reelpick/reelpick/internal/enrich"
	"github.com/reelpick/reelpick/internal/nlu"
	"github.com/reelpick/reelpick/internal/wiki"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	setupLogger(os.Getenv("LOG_LEVEL"))

	llmConfig := nlu.DefaultConfig()
	if v := os.Getenv("LLAMAFILE_BASE_URL"); v != "" {
		llmConfig.BaseURL = v
	}
	if v := os.Getenv("LLAMAFILE_MODEL"); v != "" {
		llmConfig.Model = v
	}
	if v := os.Getenv("LLAMAFILE_API_KEY"); v != "" {
		llmConfig.APIKey = v
	}
	if err := llmConfig.Validate(); err != nil {
		log.Fatal("Invalid LLM configuration:", err)
	}

	nluClient, err := nlu.NewClient(llmConfig)
	if err != nil {
		log.Fatal("Failed to initialize LLM client:", err)
	}

	country := os.Getenv("CATALOG_COUNTRY")
	if country == "" {
		country = "US"
	}

	cachePath := os.Getenv("CACHE_DB_PATH")
	if cachePath == "" {
		cachePath = "./reelpick.db"
	}

	var summaryCache enrich.Cache
	db, err := database.NewDB(cachePath)
	if err != nil {
		log.Printf("Warning: summary cache disabled: %v", err)
	} else {
		defer db.Close()
		summaryCache = database.NewSummaryRepository(db)
	}

	catalogClient := catalog.NewClient()
	wikiClient := wiki.NewClient()
	enricher := enrich.NewEnricher(wikiClient, summaryCache)

	sessions := agent.NewManager(func() *agent.Agent {
		session := agent.NewSession(catalogClient, enricher, agent.WithCountry(country))
		return agent.New(session, nluClient, nluClient)
	})

	app := &api.App{
		Sessions: sessions,
		Logger:   slog.Default().With("component", "api"),
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", port)
	log.Printf("LLM backend: %s (model %s)", llmConfig.BaseURL, llmConfig.Model)
	log.Printf("Catalog country: %s", country)
	if summaryCache != nil {
		log.Printf("Summary cache: %s", cachePath)
	}

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
