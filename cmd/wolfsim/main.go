package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wolfkin/internal/config"
	"github.com/udisondev/wolfkin/internal/data"
	"github.com/udisondev/wolfkin/internal/db"
	"github.com/udisondev/wolfkin/internal/game/moon"
	"github.com/udisondev/wolfkin/internal/journal"
	"github.com/udisondev/wolfkin/internal/random"
	"github.com/udisondev/wolfkin/internal/world"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.Path()
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))
	slog.Info("wolfsim starting", "config", cfgPath, "log_level", cfg.LogLevel)

	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	slog.Info("form catalog loaded", "forms", catalog.Len(), "digest", catalog.Digest())

	rng, err := random.New(cfg.Seed)
	if err != nil {
		return fmt.Errorf("seeding rng: %w", err)
	}
	slog.Info("rng seeded", "seed", rng.Seed())

	tally := journal.NewTally()
	sinks := journal.Fanout{journal.NewSlogSink(nil, false), tally}
	if cfg.Journal.Enabled {
		w := journal.NewWriter(cfg.Journal.Dir, cfg.Journal.Prefix)
		defer func() {
			if err := w.Close(); err != nil {
				slog.Error("closing journal", "error", err)
			}
			slog.Info("journal closed", "entries", w.Written())
		}()
		sinks = append(sinks, w)
	}

	var store *db.ProgressionRepository
	if cfg.Database.Enabled {
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		store = db.NewProgressionRepository(database.Pool(), catalog.Digest())
		slog.Info("progression store enabled")
	}

	clock := &world.Clock{}
	calendar := moon.NewCalendar(rng, sinks, cfg.Moon.Options())
	pack := world.NewPack(clock, calendar, cfg.Simulation.TickInterval)

	pop := &population{
		catalog: catalog,
		opts:    cfg.Transform.Options(),
		ids:     world.NewObjectIDGenerator(),
		pack:    pack,
		rng:     rng,
		events:  sinks,
	}
	pop.spawn(cfg.Simulation.Colonists, cfg.Simulation.Wild)

	if store != nil {
		restored := 0
		for _, ctl := range pack.Members() {
			ok, err := store.LoadInto(ctx, ctl)
			if err != nil {
				return fmt.Errorf("restoring progression: %w", err)
			}
			if ok {
				restored++
			}
		}
		slog.Info("progression restored", "entities", restored)
	}

	simCtx, stop := context.WithCancel(ctx)
	defer stop()

	pack.OnTick(func(now int64) {
		if cfg.Simulation.Ticks > 0 && now >= cfg.Simulation.Ticks {
			stop()
		}
		if store != nil && cfg.Simulation.SaveEvery > 0 && now%cfg.Simulation.SaveEvery == 0 {
			savePack(ctx, store, pack)
		}
	})

	g, gctx := errgroup.WithContext(simCtx)
	g.Go(func() error {
		if cfg.Simulation.TickInterval <= 0 {
			slog.Info("pack simulation started", "interval", "unthrottled", "members", pack.Count())
			for gctx.Err() == nil {
				pack.Tick()
			}
			return gctx.Err()
		}
		return pack.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("pack simulation: %w", err)
	}

	if store != nil {
		savePack(context.WithoutCancel(ctx), store, pack)
	}
	report(clock.CurrentTick(), pack, tally)
	return nil
}

func loadCatalog(path string) (*data.Catalog, error) {
	if path == "" {
		cat, err := data.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("loading embedded catalog: %w", err)
		}
		return cat, nil
	}
	cat, err := data.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return cat, nil
}

func savePack(ctx context.Context, store *db.ProgressionRepository, pack *world.Pack) {
	n, err := store.SavePack(ctx, pack.Members())
	if err != nil {
		slog.Error("saving progression", "error", err)
		return
	}
	slog.Info("progression saved", "entities", n, "tick", pack.Clock().CurrentTick())
}

func report(tick int64, pack *world.Pack, tally *journal.Tally) {
	slog.Info("simulation finished",
		"tick", tick,
		"days", tick/moon.TicksPerDay,
		"members", pack.Count(),
		"transformed", pack.TransformedCount(),
	)

	counts := tally.Snapshot()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		slog.Info("event tally", "kind", k, "count", counts[k])
	}

	for _, ctl := range pack.Members() {
		st := ctl.State()
		attrs := []any{
			"entity", ctl.Pawn().ObjectID(),
			"name", ctl.Pawn().Label(),
			"lineage", st.Lineage(),
			"blooded", st.Blooded(),
		}
		if best := ctl.HighestLevelForm(); best != nil {
			attrs = append(attrs, "best_form", best.Def().ID, "level", best.Level())
		}
		if fp, ok := st.ActiveForm(); ok {
			attrs = append(attrs, "active_form", fp.Def().ID)
		}
		slog.Info("werewolf", attrs...)
	}
}
