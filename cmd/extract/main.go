package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	cli "github.com/urfave/cli/v3"

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
	app := &cli.Command{
		Name:      "extract",
		Usage:     "Screenshot every video in a folder, read its caption and rewrite it",
		ArgsUsage: "<video_folder>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Optional YAML config file",
				Value:   "config.yaml",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return cli.Exit("usage: extract <video_folder>", 1)
	}
	videoDir := cmd.Args().First()

	base := config.BaseDir()
	config.LoadDotEnv(base, ".")

	cfg, err := config.LoadOptional(cmd.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load config: %v", err), 1)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if info, err := os.Stat(videoDir); err != nil || !info.IsDir() {
		return cli.Exit(fmt.Sprintf("Error: %s is not a folder", videoDir), 1)
	}

	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		metrics.StartServer(ctx, cfg.Metrics.Addr, log)
	}

	exec := executor.New()
	if !exec.Available(cfg.FFmpeg.BinaryPath) {
		log.Warn(ctx, "%s not found in PATH, every video will be skipped", cfg.FFmpeg.BinaryPath)
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

	proc := processor.New(cfg, exec, llm.WithMetrics(client), log)
	orch := pipeline.New(pipeline.Options{
		VideoDir:  videoDir,
		OutputDir: cfg.OutputDir(base),
		Extension: cfg.Paths.VideoExtension,
	}, proc, report.New(cfg.Report.Docx), log)

	out := orch.Run(ctx, progressSink(ctx, log))

	if out.Err != nil {
		if errors.Is(out.Err, pipeline.ErrNoInputs) {
			return cli.Exit(fmt.Sprintf("No %s videos found in %s", cfg.Paths.VideoExtension, videoDir), 1)
		}
		return cli.Exit(fmt.Sprintf("Run failed: %v", out.Err), 1)
	}

	fmt.Printf("\nDone! %d captions (%d failed, %d videos skipped)\n",
		len(out.Records), out.FailedItems(), len(out.Extraction.Skipped))
	fmt.Printf("Results saved to: %s\n", out.RunFolder)
	return nil
}

// progressSink renders Progress events as a bar per stage and LogLines
// through the logger.
func progressSink(ctx context.Context, log logger.Logger) pipeline.Sink {
	var (
		bar   *progressbar.ProgressBar
		label string
	)
	return func(ev pipeline.Event) {
		switch ev := ev.(type) {
		case pipeline.Progress:
			if bar == nil || ev.Label != label {
				if bar != nil {
					bar.Finish()
				}
				label = ev.Label
				bar = newBar(ev.Total, ev.Label)
			}
			bar.Set(ev.Current)
		case pipeline.LogLine:
			if bar != nil {
				bar.Clear()
			}
			log.Info(ctx, "%s", ev.Text)
		case pipeline.RunFinished:
			if bar != nil {
				bar.Finish()
				fmt.Fprintln(os.Stderr)
			}
		}
	}
}

func newBar(total int, label string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
	)
}
