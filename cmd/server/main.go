package main

import (
	"context"
	"flag"

	"github.com/charmbracelet/log"

	"github.com/piarosebelledelapaz/pro-botno/internal/api"
	"github.com/piarosebelledelapaz/pro-botno/internal/config"
	"github.com/piarosebelledelapaz/pro-botno/internal/embedding"
	"github.com/piarosebelledelapaz/pro-botno/internal/fedlex"
	"github.com/piarosebelledelapaz/pro-botno/internal/federation"
	"github.com/piarosebelledelapaz/pro-botno/internal/llm"
	"github.com/piarosebelledelapaz/pro-botno/internal/retriever"
)

func main() {
	cfg := config.Load()

	listenAddr := flag.String("listen", cfg.ListenAddr, "HTTP listen address")
	flag.Parse()

	ctx := context.Background()

	store, err := retriever.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}
	defer store.Close()

	embedder, err := embedding.NewOllamaEmbedder(cfg.OllamaHost, cfg.EmbeddingModel)
	if err != nil {
		log.Fatal("failed to create embedder", "err", err)
	}

	llmClient, err := llm.NewOllamaLLM(cfg.OllamaHost, cfg.Model)
	if err != nil {
		log.Fatal("failed to create LLM client", "err", err)
	}

	graph := fedlex.NewClient(cfg.FedlexEndpoint, cfg.QueryTimeout)
	fetcher := fedlex.NewFetcher(graph, cfg.FetchTimeout, 0)

	opts := federation.DefaultOptions()
	opts.RetrieveK = cfg.RetrieveK
	opts.Language = cfg.Language
	opts.MaxFetchDocs = cfg.MaxFetchDocs

	engine := federation.NewEngine(
		llmClient,
		retriever.NewSemantic(store, embedder),
		graph,
		fedlex.NewSynthesizer(llmClient),
		fetcher,
		opts,
	)

	router := api.NewRouter(engine)

	log.Info("starting server", "addr", *listenAddr)
	if err := router.Run(*listenAddr); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}
