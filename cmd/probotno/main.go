package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piarosebelledelapaz/pro-botno/internal/config"
	"github.com/piarosebelledelapaz/pro-botno/internal/embedding"
	"github.com/piarosebelledelapaz/pro-botno/internal/fedlex"
	"github.com/piarosebelledelapaz/pro-botno/internal/federation"
	"github.com/piarosebelledelapaz/pro-botno/internal/llm"
	"github.com/piarosebelledelapaz/pro-botno/internal/models"
	"github.com/piarosebelledelapaz/pro-botno/internal/retriever"
)

func main() {
	cfg := config.Load()

	pgConnString := flag.String("pg", cfg.DatabaseURL, "PostgreSQL connection string")
	ollamaHost := flag.String("ollama", cfg.OllamaHost, "Ollama host (default uses OLLAMA_HOST env var)")
	model := flag.String("model", cfg.Model, "Ollama model for routing and synthesis")
	embeddingModel := flag.String("embedding-model", cfg.EmbeddingModel, "Ollama model for embeddings")
	language := flag.String("lang", cfg.Language, "Legal text language (de, fr, it, rm)")
	retrieveK := flag.Int("k", cfg.RetrieveK, "Number of passages to retrieve")
	noFedlex := flag.Bool("no-fedlex", false, "Disable the Fedlex graph branch")
	noFetch := flag.Bool("no-fetch", false, "Skip full legal text fetching")
	interactive := flag.Bool("i", false, "Run in interactive mode")
	questionFlag := flag.String("q", "", "Question to answer (non-interactive mode)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx := context.Background()

	store, err := retriever.NewStore(ctx, *pgConnString)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}
	defer store.Close()

	embedder, err := embedding.NewOllamaEmbedder(*ollamaHost, *embeddingModel)
	if err != nil {
		log.Fatal("failed to create embedder", "err", err)
	}

	llmClient, err := llm.NewOllamaLLM(*ollamaHost, *model)
	if err != nil {
		log.Fatal("failed to create LLM client", "err", err)
	}

	graph := fedlex.NewClient(cfg.FedlexEndpoint, cfg.QueryTimeout)
	fetcher := fedlex.NewFetcher(graph, cfg.FetchTimeout, 0)
	synth := fedlex.NewSynthesizer(llmClient)

	opts := federation.DefaultOptions()
	opts.RetrieveK = *retrieveK
	opts.Language = *language
	opts.EnableFedlex = !*noFedlex
	opts.FetchText = !*noFetch
	opts.MaxFetchDocs = cfg.MaxFetchDocs

	engine := federation.NewEngine(
		llmClient,
		retriever.NewSemantic(store, embedder),
		graph,
		synth,
		fetcher,
		opts,
	)

	if *interactive {
		runInteractiveMode(ctx, engine)
		return
	}

	if *questionFlag == "" {
		log.Fatal("question is required in non-interactive mode, use -q 'your question'")
	}

	answer, err := engine.Answer(ctx, *questionFlag)
	if err != nil {
		log.Fatal("failed to answer question", "err", err)
	}

	fmt.Println(formatAnswer(answer))
}

func runInteractiveMode(ctx context.Context, engine *federation.Engine) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Pro-BOTno - ask legal questions (type 'exit' to quit)")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			break
		}
		if input == "" {
			continue
		}

		fmt.Print("Searching legal sources... ")
		start := time.Now()

		answer, err := engine.Answer(ctx, input)
		if err != nil {
			fmt.Printf("\rError: %v\n", err)
			continue
		}

		log.Debug("question answered", "elapsed", time.Since(start).Round(time.Millisecond))
		fmt.Println("\r" + formatAnswer(answer))
	}
}

func formatAnswer(answer *models.FederatedAnswer) string {
	var sb strings.Builder

	sb.WriteString(answer.Answer)
	sb.WriteString("\n")

	sb.WriteString("\n---\n")
	switch answer.Route {
	case models.RouteDocumentsOnly:
		sb.WriteString("Sources: general legal documents\n")
	default:
		sb.WriteString("Sources: general legal documents + Swiss federal legislation (Fedlex)\n")
		if !answer.FedlexResultsFound {
			sb.WriteString("Note: no applicable Swiss legislation matched this question\n")
		}
	}

	if len(answer.Passages) > 0 {
		sb.WriteString("\nReferenced documents:\n")
		for i, p := range answer.Passages {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p.Source))
		}
	}

	if answer.Bundle != nil && !answer.Bundle.Empty {
		sb.WriteString("\nSwiss legislation:\n")
		for i, entry := range answer.Bundle.Entries {
			sb.WriteString(fmt.Sprintf("  %d. %s (SR %s, %s)\n",
				i+1, entry.Norm.Title, entry.Norm.SRNumber, entry.Applicability.Status))
		}
	}

	return sb.String()
}
