package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/RobRipley/curveLP/internal/api"
	"github.com/RobRipley/curveLP/internal/config"
	"github.com/RobRipley/curveLP/internal/domain"
	"github.com/RobRipley/curveLP/internal/export"
	"github.com/RobRipley/curveLP/internal/observability"
	"github.com/RobRipley/curveLP/internal/pool"
	"github.com/RobRipley/curveLP/internal/subgraph"
	"github.com/RobRipley/curveLP/internal/tracing"
)

const serviceName = "curvelp"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	setupLogger(cfg)

	var shutdownTracing tracing.ShutdownFunc

	app := &cli.App{
		Name:  serviceName,
		Usage: "Curve liquidity pool analytics",
		Before: func(c *cli.Context) error {
			var err error
			shutdownTracing, err = tracing.Init(c.Context, cfg.OTLPEndpoint, serviceName)
			return err
		},
		After: func(c *cli.Context) error {
			if shutdownTracing == nil {
				return nil
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				slog.Warn("tracing shutdown error", "error", err)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Action: func(c *cli.Context) error {
					return serve(c.Context, stop, cfg)
				},
			},
			{
				Name:  "pool",
				Usage: "print the summary of one pool as JSON",
				Flags: []cli.Flag{addressFlag()},
				Action: func(c *cli.Context) error {
					return printPool(c, cfg)
				},
			},
			{
				Name:  "export",
				Usage: "write the summary of one pool to an XLSX file or a Google spreadsheet",
				Flags: []cli.Flag{
					addressFlag(),
					&cli.StringFlag{
						Name:  "out",
						Usage: "XLSX output path (default pool-<address>.xlsx)",
					},
					&cli.StringFlag{
						Name:  "spreadsheet-id",
						Usage: "Google spreadsheet to write instead of a file",
						Value: cfg.ExportSpreadsheetID,
					},
				},
				Action: func(c *cli.Context) error {
					return exportPool(c, cfg)
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func addressFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "address",
		Aliases:  []string{"a"},
		Usage:    "pool contract address",
		Required: true,
	}
}

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func newPoolService(cfg config.Config) (*pool.Service, error) {
	endpoint := cfg.Endpoint()
	if endpoint == "" {
		return nil, errors.New("SUBGRAPH_URL or GRAPH_API_KEY is required")
	}
	client := subgraph.NewClient(endpoint, cfg.SubgraphRetryMax, cfg.SubgraphRetryBaseDelay, cfg.SubgraphTimeout)
	return pool.NewService(client), nil
}

func serve(ctx context.Context, stop context.CancelFunc, cfg config.Config) error {
	poolSvc, err := newPoolService(cfg)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics(serviceName)
	srv := api.NewServer(cfg.HTTPPort, poolSvc, metrics)

	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func printPool(c *cli.Context, cfg config.Config) error {
	poolID, err := domain.NormalizePoolAddress(c.String("address"))
	if err != nil {
		return err
	}
	poolSvc, err := newPoolService(cfg)
	if err != nil {
		return err
	}

	summary, err := poolSvc.GetPoolInfo(c.Context, poolID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func exportPool(c *cli.Context, cfg config.Config) error {
	poolID, err := domain.NormalizePoolAddress(c.String("address"))
	if err != nil {
		return err
	}
	poolSvc, err := newPoolService(cfg)
	if err != nil {
		return err
	}

	var writer export.SheetWriter
	if id := c.String("spreadsheet-id"); id != "" {
		if cfg.GoogleCredentialsJSON == "" {
			return errors.New("GOOGLE_CREDENTIALS_JSON is required for spreadsheet export")
		}
		writer, err = export.NewSheetsWriter(c.Context, id, cfg.GoogleCredentialsJSON)
		if err != nil {
			return err
		}
	} else {
		out := c.String("out")
		if out == "" {
			out = "pool-" + poolID + ".xlsx"
		}
		writer = export.NewXLSXWriter(out)
	}

	return export.NewService(poolSvc, writer).Export(c.Context, poolID)
}
