package generator

import (
	"math/rand/v2"
	"time"

	"github.com/nguyentantai21042004/caption-remix/internal/llm"
	"github.com/nguyentantai21042004/caption-remix/internal/logger"
)

// Options tunes the fill loop. Zero values take the defaults.
type Options struct {
	Quota      int
	BatchSize  int
	SampleSize int
	// Rand picks reference samples. Tests pass a seeded source.
	Rand *rand.Rand
	Now  func() time.Time
}

type implGenerator struct {
	client llm.Client
	logger logger.Logger

	quota      int
	batchSize  int
	sampleSize int
	rng        *rand.Rand
	now        func() time.Time
}

// New creates a Generator that asks client for captions.
func New(client llm.Client, opts Options, log logger.Logger) Generator {
	g := &implGenerator{
		client:     client,
		logger:     log,
		quota:      opts.Quota,
		batchSize:  opts.BatchSize,
		sampleSize: opts.SampleSize,
		rng:        opts.Rand,
		now:        opts.Now,
	}
	if g.quota <= 0 {
		g.quota = 100
	}
	if g.batchSize <= 0 {
		g.batchSize = 50
	}
	if g.sampleSize <= 0 {
		g.sampleSize = 15
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}
