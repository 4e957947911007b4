package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sentinelops/internal/httpserver"
	"sentinelops/internal/incidents"
	"sentinelops/internal/inventory"
	"sentinelops/internal/llm"
	"sentinelops/internal/metrics"
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	snap, closeSnap, err := openSnapshotter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSnap()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	store := incidents.NewStore(ctx, snap, logger,
		incidents.WithMetrics(m),
		incidents.WithDiagnostics(incidents.NewDiagnostics(rand.New(rand.NewSource(rng.Int63())))),
	)

	catalog, err := inventory.LoadCatalog(cfg.InventoryPath)
	if err != nil {
		return err
	}

	gen := llm.FromConfig(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)

	handler := httpserver.NewRouter(httpserver.Deps{
		Logger:      logger,
		Metrics:     m,
		Gatherer:    reg,
		Store:       store,
		Explainer:   &incidents.Explainer{Store: store, Generator: gen, Logger: logger, Metrics: m},
		Catalog:     catalog,
		Oracle:      inventory.NewOracle(catalog, gen, rng, logger, m),
		AIEnabled:   gen != nil,
		FrontendDir: cfg.FrontendDir,
	})
	server := httpserver.New(cfg.HTTPAddr, handler, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			logger.Error("shutdown error", zap.Error(err))
			return err
		}
		return nil
	})
	return g.Wait()
}
