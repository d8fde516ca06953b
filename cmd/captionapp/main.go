package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"

	"github.com/nguyentantai21042004/caption-remix/internal/app"
	"github.com/nguyentantai21042004/caption-remix/internal/config"
	"github.com/nguyentantai21042004/caption-remix/internal/llm"
	"github.com/nguyentantai21042004/caption-remix/internal/logger"
	"github.com/nguyentantai21042004/caption-remix/internal/metrics"
	"github.com/nguyentantai21042004/caption-remix/internal/pipeline"
	"github.com/nguyentantai21042004/caption-remix/internal/processor"
	"github.com/nguyentantai21042004/caption-remix/internal/report"
	"github.com/nguyentantai21042004/caption-remix/pkg/executor"
)

func main() {
	cmd := &cli.Command{
		Name:  "captionapp",
		Usage: "Interactive caption extractor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Optional YAML config file",
				Value:   "config.yaml",
			},
			&cli.StringFlag{
				Name:  "videos",
				Usage: "Preselect the video folder",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Preselect the output folder",
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

	// Logs go to a file so they do not draw over the UI.
	logPath := cfg.Logging.File
	if logPath == "" {
		logPath = filepath.Join(base, "captionapp.log")
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to open log file: %v", err), 1)
	}
	defer logFile.Close()
	log := logger.NewWithWriter(cfg.Logging.Level, logFile)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Metrics.Addr != "" {
		metrics.StartServer(ctx, cfg.Metrics.Addr, log)
	}

	client, err := llm.New(ctx, llm.Options{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to create LLM client: %v", err), 1)
	}

	proc := processor.New(cfg, executor.New(), llm.WithMetrics(client), log)
	writer := report.New(cfg.Report.Docx)

	start := func(ctx context.Context, videoDir, outputDir string, sink pipeline.Sink) pipeline.Outcome {
		orch := pipeline.New(pipeline.Options{
			VideoDir:  videoDir,
			OutputDir: outputDir,
			Extension: cfg.Paths.VideoExtension,
		}, proc, writer, log)
		return orch.Run(ctx, sink)
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = cfg.Paths.Output
	}

	model := app.New(app.Options{
		VideoDir:  cmd.String("videos"),
		OutputDir: outputDir,
		Extension: cfg.Paths.VideoExtension,
		Start:     start,
		Logger:    log,
		Watch:     true,
	})

	log.Info(ctx, "Caption app started")
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
