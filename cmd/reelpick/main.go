package main

import (
	"bufio"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/reelpick/reelpick/internal/agent"
	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/database"
	"github.com/reelpick/reelpick/internal/enrich"
	"github.com/reelpick/reelpick/internal/nlu"
	"github.com/reelpick/reelpick/internal/wiki"
)

func main() {
	app := &cli.App{
		Name:  "reelpick",
		Usage: "Conversational movie search assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "llm-host",
				Usage: "OpenAI-compatible LLM server base URL",
				Value: "http://localhost:8080/v1",
			},
			&cli.StringFlag{
				Name:  "llm-model",
				Usage: "Model name to request",
				Value: "llamafile",
			},
			&cli.StringFlag{
				Name:  "llm-api-key",
				Usage: "Bearer token for the LLM server",
				Value: "sk-local-123",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Catalog storefront country code",
				Value: "US",
			},
			&cli.StringFlag{
				Name:  "cache-db",
				Usage: "Path to the summary cache database, empty to disable",
				Value: "./reelpick.db",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Action: runChat,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runChat(c *cli.Context) error {
	config := nlu.NewConfig(
		nlu.WithBaseURL(c.String("llm-host")),
		nlu.WithModel(c.String("llm-model")),
		nlu.WithAPIKey(c.String("llm-api-key")),
	)
	if err := config.Validate(); err != nil {
		return err
	}

	nluClient, err := nlu.NewClient(config)
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	var cache enrich.Cache
	if path := c.String("cache-db"); path != "" {
		db, err := database.NewDB(path)
		if err != nil {
			slog.Warn("summary cache disabled", "err", err)
		} else {
			defer db.Close()
			cache = database.NewSummaryRepository(db)
		}
	}

	enricher := enrich.NewEnricher(wiki.NewClient(), cache)
	session := agent.NewSession(catalog.NewClient(), enricher,
		agent.WithCountry(c.String("country")))
	a := agent.New(session, nluClient, nluClient)

	fmt.Println("ReelPick. Tell me what you're in the mood for (type 'help' for commands, 'exit' to quit).")

	ctx := c.Context
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		lower := strings.ToLower(input)
		if lower == "exit" || lower == "quit" {
			break
		}

		resp, err := a.Message(ctx, input)
		if err != nil {
			if agent.IsUserError(err) {
				fmt.Println(err)
			} else {
				fmt.Println("Something went wrong:", err)
			}
			continue
		}

		printResponse(resp, strings.HasPrefix(lower, "details"))
	}
	return scanner.Err()
}

func printResponse(resp agent.Response, full bool) {
	fmt.Println(resp.Message)
	if len(resp.Results) == 0 {
		return
	}

	if full {
		fmt.Println(agent.RenderFull(resp.Results[0]))
		return
	}

	offset := resp.Page * agent.PageSize
	for i, m := range resp.Results {
		fmt.Println(agent.RenderBrief(offset+i+1, m))
	}
	if resp.HasMore {
		fmt.Println("(type 'more' for the next page)")
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}
