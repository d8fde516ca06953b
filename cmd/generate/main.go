package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/nguyentantai21042004/caption-remix/internal/app"
	"github.com/nguyentantai21042004/caption-remix/internal/config"
	"github.com/nguyentantai21042004/caption-remix/internal/generator"
	"github.com/nguyentantai21042004/caption-remix/internal/llm"
	"github.com/nguyentantai21042004/caption-remix/internal/logger"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate on-screen captions for ten categories into one CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Optional YAML config file",
				Value:   "config.yaml",
			},
			&cli.StringFlag{
				Name:    "examples",
				Aliases: []string{"e"},
				Usage:   "Reference captions, one per line (default paths.examples)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Folder for the CSV (default: next to the executable)",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	base := config.BaseDir()
	config.LoadDotEnv(base, ".")

	cfg, err := config.LoadOptional(cmd.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load config: %v", err), 1)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		key, err := app.PromptAPIKey(cfg.LLM.Provider)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		cfg.LLM.APIKey = key
	}

	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	examplesPath := cmd.String("examples")
	if examplesPath == "" {
		examplesPath = cfg.ExamplesPath(base)
	}
	examples, err := generator.LoadExamples(examplesPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	log.Info(ctx, "Loaded %d example captions from %s", len(examples), examplesPath)

	client, err := llm.New(ctx, llm.Options{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		MaxTokens: cfg.Generator.MaxTokens,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to create LLM client: %v", err), 1)
	}

	gen := generator.New(llm.WithMetrics(client), generator.Options{
		Quota:      cfg.Generator.Quota,
		BatchSize:  cfg.Generator.BatchSize,
		SampleSize: cfg.Generator.SampleSize,
	}, log)

	log.Info(ctx, "Generating %d captions per category (%d categories)",
		cfg.Generator.Quota, len(generator.Categories))
	batch := gen.Generate(ctx, examples)

	outDir := cmd.String("out")
	if outDir == "" {
		outDir = base
	}
	path, err := gen.WriteCSV(outDir, batch)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	total := 0
	for _, c := range generator.Categories {
		n := len(batch[c.ID])
		total += n
		log.Info(ctx, "  %s: %d", c.ID, n)
	}
	log.Info(ctx, "Saved %d captions to %s", total, path)
	return nil
}
