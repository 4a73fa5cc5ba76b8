package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"coindeck/internal/config"
	"coindeck/internal/database"
	"coindeck/internal/database/repository"
	"coindeck/internal/logging"
	"coindeck/internal/market"
	"coindeck/internal/tui"
	"coindeck/internal/workspace"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level, cfg.Log.MaxSize)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := repository.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// repositories
	instrRepo := repository.NewInstrumentRepo(db)
	layoutRepo := repository.NewLayoutRepo(db)

	// instrument catalog, refreshed best-effort in the background so an
	// offline start never delays the UI
	instruments, err := instrRepo.List(ctx)
	if err != nil {
		log.Fatalf("load instruments: %v", err)
	}
	catalog := market.NewCatalog(instruments)
	if cfg.Market.Refresh {
		go refreshCatalog(ctx, catalog, instrRepo, logging.Component(logger, "catalog"))
	}

	ctrl := workspace.New(
		&layoutStore{ctx: ctx, repo: layoutRepo},
		catalog,
		logging.Component(logger, "workspace"),
		cfg.UI.LayoutName,
		cfg.UI.SnapToGrid,
	)
	ctrl.Load(cfg.Market.DefaultSymbol)

	var ticks <-chan market.Tick
	if cfg.Market.Stream {
		stream := market.NewStream(streamSymbols(catalog), logging.Component(logger, "stream"))
		go stream.Run(ctx)
		ticks = stream.Ticks()
	}

	app := tui.New(ctrl, catalog, ticks, logging.Component(logger, "tui"))
	app.OnPrefsChange(func(p tui.Prefs) {
		cfg.UI.SnapToGrid = p.SnapToGrid
		if p.Exchange != "" {
			cfg.Market.Exchange = string(p.Exchange)
		}
		if err := config.Save(cfg); err != nil {
			logger.WithError(err).Warn("save settings")
		}
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.WithError(err).Error("tui exited")
		os.Exit(1)
	}
}

// layoutStore adapts the context-based repository to the controller's
// synchronous store interface.
type layoutStore struct {
	ctx  context.Context
	repo *repository.LayoutRepo
}

func (s *layoutStore) SaveLayout(name, payload string) error {
	return s.repo.Save(s.ctx, name, payload)
}

func (s *layoutStore) LoadLayout(name string) (string, error) {
	return s.repo.Load(s.ctx, name)
}

// refreshCatalog pulls the live USDT symbol list, swaps it into the catalog
// and stores it in one transaction. Runs in the background; failure keeps
// the seeded catalog and the dashboard works offline.
func refreshCatalog(ctx context.Context, catalog *market.Catalog, repo *repository.InstrumentRepo, logger *logrus.Entry) {
	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	fetched, err := market.FetchBinanceInstruments(fetchCtx, "USDT")
	if err != nil {
		logger.WithError(err).Warn("catalog refresh failed, using stored instruments")
		return
	}
	catalog.Replace(fetched)
	if err := repo.UpsertAll(ctx, fetched); err != nil {
		logger.WithError(err).Warn("instrument upsert")
	}
	logger.WithField("count", len(fetched)).Info("catalog refreshed")
}

// streamSymbols picks the ticker subscriptions: the whole catalog, capped
// to keep the combined-stream URL within limits.
func streamSymbols(catalog *market.Catalog) []string {
	const maxStreams = 20
	all := catalog.All()
	if len(all) > maxStreams {
		all = all[:maxStreams]
	}
	symbols := make([]string, len(all))
	for i, in := range all {
		symbols[i] = in.Symbol
	}
	return symbols
}
