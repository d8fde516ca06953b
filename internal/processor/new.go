package processor

import (
	"github.com/nguyentantai21042004/caption-remix/internal/config"
	"github.com/nguyentantai21042004/caption-remix/internal/llm"
	"github.com/nguyentantai21042004/caption-remix/internal/logger"
	"github.com/nguyentantai21042004/caption-remix/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	executor executor.Executor
	llm      llm.Client
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, exec executor.Executor, client llm.Client, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		executor: exec,
		llm:      client,
		logger:   log,
	}
}
