package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/handlers"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/services/chat"
	"github.com/ternarybob/lectio/internal/services/documents"
	"github.com/ternarybob/lectio/internal/services/ingest"
	"github.com/ternarybob/lectio/internal/services/llm"
	"github.com/ternarybob/lectio/internal/services/maintenance"
	"github.com/ternarybob/lectio/internal/services/pdf"
	"github.com/ternarybob/lectio/internal/services/vector"
	"github.com/ternarybob/lectio/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// LLM service (chat completions + embeddings)
	LLMService interfaces.LLMService

	// Vector index over per-document collections
	VectorIndex interfaces.VectorIndex

	// PDF text extraction
	Extractor interfaces.PDFExtractor

	// Pipeline services
	IngestService   interfaces.IngestService
	DocumentService *documents.Service
	ChatService     interfaces.ChatService

	// Orphaned-collection sweep
	Reconciler *maintenance.Reconciler

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	DocumentHandler *handlers.DocumentHandler
	ChatHandler     *handlers.ChatHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if cfg.Maintenance.ReconcileOnStartup {
		removed, err := app.Reconciler.Reconcile(context.Background())
		if err != nil {
			logger.Warn().Err(err).Msg("Startup collection sweep failed")
		} else if removed > 0 {
			logger.Info().Int("removed", removed).Msg("Startup collection sweep removed orphaned collections")
		}
	}

	if err := app.Reconciler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start reconciler: %w", err)
	}

	logger.Info().
		Str("provider", app.LLMService.ProviderName()).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices wires the ingestion, retrieval, and chat pipeline
func (a *App) initServices() error {
	llmService, err := llm.NewLLMService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM service: %w", err)
	}
	a.LLMService = llmService

	a.VectorIndex = vector.NewIndex(llmService, a.StorageManager.ChunkStorage(), a.Logger)
	a.Extractor = pdf.NewExtractor(a.Logger)

	a.IngestService = ingest.NewService(
		a.Extractor,
		a.StorageManager.DocumentStorage(),
		a.VectorIndex,
		&a.Config.RAG,
		a.Logger,
	)

	a.DocumentService = documents.NewService(
		a.StorageManager.DocumentStorage(),
		a.VectorIndex,
		a.Logger,
	)

	a.ChatService = chat.NewChatService(
		llmService,
		a.StorageManager.DocumentStorage(),
		a.VectorIndex,
		a.Config.RAG.TopK,
		a.Logger,
	)

	reconciler, err := maintenance.NewReconciler(
		a.StorageManager.DocumentStorage(),
		a.VectorIndex,
		&a.Config.Maintenance,
		a.Logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create reconciler: %w", err)
	}
	a.Reconciler = reconciler

	return nil
}

// initHandlers creates the HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.DocumentHandler = handlers.NewDocumentHandler(
		a.IngestService,
		a.DocumentService,
		a.Config.Server.MaxUploadSize,
		a.Logger,
	)
	a.ChatHandler = handlers.NewChatHandler(a.ChatService, a.Logger)
}

// Close gracefully shuts down all application components
func (a *App) Close() error {
	if a.Reconciler != nil {
		a.Reconciler.Stop()
		a.Logger.Info().Msg("Reconciler stopped")
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		} else {
			a.Logger.Info().Msg("LLM service closed")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage manager")
			return err
		}
		a.Logger.Info().Msg("Storage manager closed")
	}

	return nil
}
