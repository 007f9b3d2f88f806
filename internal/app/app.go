package app

import (
	"log/slog"

	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/core/extraction"
	"github.com/hirescope/hirescope/internal/core/projection"
	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/services"
)

// App holds the wired components. Everything is constructed once from the
// config and shares nothing mutable except the extraction resolver's cache.
type App struct {
	Resolver *extraction.Resolver
	Server   *Server
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	client := recruitee.NewClient(cfg.BaseURL, cfg.APIToken, cfg.CompanyID, cfg.FetchTimeout, cfg.FetchRetries, logger)

	chain := extraction.NewChain(logger,
		extraction.NewPDFTextStrategy(),
		extraction.NewDocconvStrategy(),
		extraction.NewOCRStrategy(extraction.OCRConfig{
			PdftoppmBin:  cfg.PdftoppmBin,
			TesseractBin: cfg.TesseractBin,
			DPI:          cfg.OCRDPI,
			Lang:         cfg.OCRLang,
			MaxPages:     cfg.OCRMaxPages,
			PageTimeout:  cfg.OCRPageTimeout,
		}),
	)
	fetcher := extraction.NewFetcher(cfg.FetchTimeout, cfg.FetchRetries, logger)
	resolver := extraction.NewResolver(fetcher, chain, logger)

	projector := projection.NewProjector(resolver, logger)

	jobService := services.NewJobService(client, logger)
	candidateService := services.NewCandidateService(client, projector, logger)
	extractService := services.NewExtractService(resolver)

	server := NewServer(cfg, jobService, candidateService, extractService, logger)

	return &App{Resolver: resolver, Server: server}
}
