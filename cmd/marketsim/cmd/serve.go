package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rustyeddy/marketsim/blotter"
	"github.com/rustyeddy/marketsim/internal/api"
	"github.com/rustyeddy/marketsim/internal/logger"
	"github.com/rustyeddy/marketsim/internal/metrics"
	"github.com/rustyeddy/marketsim/internal/scheduler"
	"github.com/rustyeddy/marketsim/journal"
	"github.com/rustyeddy/marketsim/sim"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve series, live feeds and paper orders over HTTP",
	Long: `Start the HTTP and WebSocket service.

Feeds for the configured symbols are created at startup and ticked on the
server.tick_every schedule. Other symbols get a feed on first request.

Endpoints:
  GET  /api/v1/series/:symbol     generated series
  POST /api/v1/tick               next candle after a given one
  GET  /api/v1/feeds/:symbol      live feed window
  GET  /api/v1/quotes             watchlist
  GET  /api/v1/summary/:symbol    indicator summary
  POST /api/v1/orders             paper market order
  GET  /api/v1/positions/:symbol  position and fills
  GET  /ws/feeds/:symbol          live candle stream
  GET  /metrics, /healthz

Example:
  marketsim serve -c marketsim.yaml --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log, err := logger.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	m := metrics.New()
	reg := scheduler.NewRegistry(sim.FeedOptions{
		DailyVolPct: cfg.Generator.DailyVolPct,
		AllHours:    !cfg.Generator.MarketHoursOnly,
	})
	iv := cfg.FeedInterval()
	for _, sym := range cfg.Feeds.Symbols {
		if _, err := reg.Get(strings.ToUpper(sym), iv); err != nil {
			return fmt.Errorf("feed %s: %w", sym, err)
		}
	}

	sched, err := scheduler.New(reg, cfg.Server.TickEvery, m, log)
	if err != nil {
		return err
	}
	srv, err := api.New(api.Deps{
		Config:   cfg,
		Registry: reg,
		Blotter:  blotter.New(j),
		Journal:  j,
		Metrics:  m,
		Log:      log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched.Start()
	errc := srv.Start(cfg.Server.Addr)

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errc:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			_ = sched.Stop(context.Background())
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	return sched.Stop(shutdownCtx)
}
