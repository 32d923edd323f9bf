package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/jhoicas/stock-distribution/internal/application/distribution"
	"github.com/jhoicas/stock-distribution/internal/application/report"
	"github.com/jhoicas/stock-distribution/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-distribution/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-distribution/internal/infrastructure/storage"
	"github.com/jhoicas/stock-distribution/pkg/config"
	"github.com/jhoicas/stock-distribution/pkg/logger"
)

// env reúne lo que necesitan los comandos que tocan el almacenamiento.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	backend *storage.Backend
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	return cfg, log, nil
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, backend: backend}, nil
}

func (e *env) close() { e.backend.Close() }

func (e *env) seedUseCase() *usecase.SeedUseCase {
	return usecase.NewSeedUseCase(
		usecase.NewProductUseCase(e.backend.Products),
		usecase.NewBranchUseCase(e.backend.Branches),
	)
}

func (e *env) distributionUseCase() *distribution.UseCase {
	return distribution.NewUseCase(e.backend.TxRunner, e.backend.Products, e.backend.Branches, e.log.Zerolog())
}

func (e *env) reportUseCase() *report.UseCase {
	return report.NewUseCase(e.backend.Products, e.backend.Branches, e.backend.Stocks,
		infrapdf.NewMarotoStockReportGenerator(e.cfg.App.Name+" - stock por sucursal"))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
