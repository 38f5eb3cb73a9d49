package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"infralab/internal/advisor"
	"infralab/internal/gateway/config"
	"infralab/internal/gateway/handler"
	"infralab/internal/gateway/server"
	"infralab/internal/ledger"
	"infralab/internal/llm"
	llmclient "infralab/internal/llmClient"
	"infralab/internal/llmtool"
)

type App struct {
	server *server.Server
	client llmclient.ChatClient
	ledger ledger.Ledger
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg, log.Default())
}

// NewWithConfig wires every dependency from an already loaded config.
func NewWithConfig(cfg *config.Config, logger *log.Logger) (*App, error) {
	// Dependencies
	base, err := newChatClient(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to init llm client: %w", err)
	}
	logger.Printf("llm provider: %s", base.Name())

	store, err := initArchive(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init proposal archive: %w", err)
	}
	gens := initLedger(cfg, logger)

	client := llm.Wrap(base, llm.WithLogging(logger), llm.WithLedger(gens, logger))
	gen := llmtool.NewGenerator(client,
		llmtool.WithMaxRetries(cfg.LLM.MaxRetries),
		llmtool.WithBackoff(cfg.LLM.Backoff),
	)
	h := handler.New(advisor.New(gen), store, gens, logger).
		WithDebugRoutes(cfg.Env != config.EnvProduction)

	// Routing & Server
	mux := server.NewMux(h, cfg.AllowedOrigins)
	srv := server.New(cfg.Port, mux, logger)

	return &App{server: srv, client: client, ledger: gens}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

// Shutdown stops the server first, then releases the provider and ledger.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.client.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close llm client: %w", cerr))
	}
	if cerr := a.ledger.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close ledger: %w", cerr))
	}
	return err
}
