package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/portalgate/internal/config"
	"github.com/udisondev/portalgate/internal/data"
	"github.com/udisondev/portalgate/internal/db"
	"github.com/udisondev/portalgate/internal/game/doodad"
	"github.com/udisondev/portalgate/internal/game/portal"
	"github.com/udisondev/portalgate/internal/game/skill"
	"github.com/udisondev/portalgate/internal/gameserver"
	"github.com/udisondev/portalgate/internal/world"
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
	cfgPath := config.PortalServerPath()
	cfg, err := config.LoadPortalServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("portalgate starting", "config", cfgPath, "log_level", cfg.LogLevel)

	// Static data: any failure here is fatal.
	catalog, err := data.LoadPortalCatalog(cfg.Data.PortalCatalog, cfg.Data.PortalSchema)
	if err != nil {
		return fmt.Errorf("loading portal catalog: %w", err)
	}

	gameDB, err := data.OpenGameDB(cfg.Data.ReagentDB)
	if err != nil {
		return fmt.Errorf("opening game db: %w", err)
	}
	defer gameDB.Close()

	reagents, err := data.LoadReagentTable(ctx, gameDB)
	if err != nil {
		return fmt.Errorf("loading reagents: %w", err)
	}
	fakeUses, err := data.LoadFakeUseDefs(ctx, gameDB)
	if err != nil {
		return fmt.Errorf("loading fake uses: %w", err)
	}
	doodadFuncs, err := data.LoadDoodadFuncs(ctx, gameDB)
	if err != nil {
		return fmt.Errorf("loading doodad funcs: %w", err)
	}
	skillEffects, err := data.LoadSkillEffects(ctx, gameDB)
	if err != nil {
		return fmt.Errorf("loading skill effects: %w", err)
	}

	templates := data.LoadNpcTemplates()
	topology := data.LoadZoneTopology()

	// Booked portals live in Postgres.
	database, err := db.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	objects := world.New()
	ids := world.NewObjectIDGenerator()
	clients := gameserver.NewClientManager(objects, cfg.Portal.BroadcastRange)

	portals, err := portal.NewManager(portal.Deps{
		Catalog:   catalog,
		Reagents:  reagents,
		Topology:  topology,
		Templates: templates,
		World:     objects,
		IDs:       ids,
		Notifier:  clients,
		BookLimit: cfg.Portal.OwnerBookLimit,
	})
	if err != nil {
		return fmt.Errorf("creating portal manager: %w", err)
	}

	skills := skill.NewManager(skillEffects)
	for _, effectID := range reagents.EffectIDs() {
		skills.RegisterEffect(effectID, portals.OpenPortalEffect())
	}

	telescope := doodad.NewTelescope(clients, cfg.Portal.TelescopeMaxView)
	handler := gameserver.NewHandler(gameserver.HandlerDeps{
		Clients:   clients,
		World:     objects,
		Portals:   portals,
		Doodads:   doodad.NewRegistry(fakeUses, doodadFuncs),
		DoodadEnv: doodad.Env{Skills: skills, Telescope: telescope, Notifier: clients},
		Telescope: telescope,
		Books:     db.NewPortalBookRepository(database.Pool()),
	})
	gameServer := gameserver.NewServer(cfg.GameServer, handler, db.NewCharacterRepository(database.Pool(), ids))

	slog.Info("portal subsystem ready",
		"portals", catalog.Len(),
		"fake_uses", len(fakeUses),
		"book_limit", cfg.Portal.OwnerBookLimit)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.BindAddress != "" {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.Metrics.BindAddress)
		})
	}

	g.Go(func() error {
		if err := gameServer.Run(gctx); err != nil {
			return fmt.Errorf("game server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("portalgate stopped")
	return nil
}

// serveMetrics exposes the default prometheus registry until ctx is done.
func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("metrics server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}
