package main

import (
	"fmt"

	"go.uber.org/zap"

	"soustackgw/internal/config"
	"soustackgw/internal/domain"
	"soustackgw/internal/logger"
	"soustackgw/internal/provider"
	"soustackgw/internal/service"
	"soustackgw/internal/tool"
)

const appName = "soustackgw"

// app holds the wired components shared by every command.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	dispatcher *tool.Dispatcher
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}
	return cfg, nil
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	aliases, err := provider.LoadAliases(cfg.Provider.AliasesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider aliases: %w", err)
	}

	// Initialize providers
	loader := provider.NewLoader(log.Named("provider"))
	refs := domain.ProviderRefs{
		Ingest:    cfg.Provider.IngestModule,
		Validator: cfg.Provider.ValidatorModule,
	}
	providers := provider.NewSource(loader, refs, aliases)

	// Initialize services
	ingestSvc := service.NewIngestService(providers, appName, version, log.Named("ingest"))
	documentSvc := service.NewDocumentService(providers, log.Named("document"))

	// Initialize tools
	registry := tool.NewCatalog(ingestSvc, documentSvc)
	dispatcher := tool.NewDispatcher(registry, log.Named("dispatch"))

	log.Debug("gateway wired",
		zap.String("ingest_module", refs.Ingest),
		zap.String("validator_module", refs.Validator),
		zap.Strings("tools", registry.Names()),
	)

	return &app{cfg: cfg, logger: log, dispatcher: dispatcher}, nil
}
