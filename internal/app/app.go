package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/riskibarqy/sport-search/external/scoreboard"
	"github.com/riskibarqy/sport-search/internal/config"
	"github.com/riskibarqy/sport-search/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/sport-search/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/sport-search/internal/platform/id"
	"github.com/riskibarqy/sport-search/internal/platform/logging"
	"github.com/riskibarqy/sport-search/internal/platform/resilience"
	"github.com/riskibarqy/sport-search/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	sportRepo := memory.NewSportRepository(memory.SeedSports())
	viewRepo := memory.NewViewRepository()

	scoreboardClient := scoreboard.NewClient(scoreboard.ClientConfig{
		BaseURL:    cfg.ScoreboardBaseURL,
		Timeout:    cfg.ScoreboardTimeout,
		MaxRetries: cfg.ScoreboardMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScoreboardCircuitEnabled,
			FailureThreshold: cfg.ScoreboardCircuitFailureCount,
			OpenTimeout:      cfg.ScoreboardCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScoreboardCircuitHalfOpenMaxReq,
		},
	})

	sportSvc := usecase.NewSportService(sportRepo)
	viewSvc := usecase.NewViewService(
		viewRepo,
		sportRepo,
		scoreboardClient,
		logging.Default(),
		cfg.SearchWorkers,
	)

	handler := httpapi.NewHandler(sportSvc, viewSvc, idgen.NewUUIDGenerator(), logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
