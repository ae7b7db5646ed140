// Command finsight answers questions about financial filings, grounded
// in a locally indexed corpus.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/finsight-labs/finsight-cli/internal/adapters/driven/ai"
	"github.com/finsight-labs/finsight-cli/internal/adapters/driven/storage/sqlite"
	"github.com/finsight-labs/finsight-cli/internal/adapters/driving/cli"
	"github.com/finsight-labs/finsight-cli/internal/chunking/title"
	"github.com/finsight-labs/finsight-cli/internal/config"
	"github.com/finsight-labs/finsight-cli/internal/core/services"
	"github.com/finsight-labs/finsight-cli/internal/parsers"
	"github.com/finsight-labs/finsight-cli/internal/parsers/pdf"
	"github.com/finsight-labs/finsight-cli/internal/parsers/text"
)

// version is overridden at build time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm, err := ai.CreateLLMService(cfg.LLM)
	if err != nil {
		return err
	}
	defer llm.Close()

	dataDir := cfg.DataDir
	if dataDir != "" {
		dataDir = filepath.Clean(dataDir)
	}
	store, err := sqlite.NewStore(dataDir, embedder)
	if err != nil {
		return err
	}
	defer store.Close()

	registry := parsers.NewRegistry(
		pdf.New(),
		text.New(),
	)
	chunker := title.New(
		title.WithMaxChars(cfg.Chunking.MaxChars),
		title.WithMinChars(cfg.Chunking.MinChars),
	)

	retriever := services.NewRetriever(store)
	synthesizer := services.NewSynthesizer(llm,
		services.WithMaxContextChars(cfg.Retrieval.MaxContextChars))

	cli.SetVersion(version)
	cli.SetIndexStore(store)
	cli.SetIngestService(services.NewIngestor(registry, chunker, embedder, store))
	cli.SetRetrieveService(retriever)
	cli.SetAnswerService(services.NewAnswerer(retriever, synthesizer,
		services.WithTopK(cfg.Retrieval.TopK)))

	return cli.Execute(ctx)
}
