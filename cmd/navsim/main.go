package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/navcore/internal/ai"
	"github.com/udisondev/navcore/internal/config"
	"github.com/udisondev/navcore/internal/db"
	"github.com/udisondev/navcore/internal/nav"
	"github.com/udisondev/navcore/internal/world"
)

const NavSimConfigPath = "config/navsim.yaml"

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

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := NavSimConfigPath
	if p := os.Getenv("NAVCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadNavSim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("navsim starting",
		"log_level", cfg.LogLevel,
		"region_cells", cfg.RegionCells,
		"cell_size", cfg.CellSize,
		"agents", cfg.Agents)

	manager, err := world.NewManager(cfg.RegionCells, cfg.CellSize)
	if err != nil {
		return fmt.Errorf("creating region manager: %w", err)
	}

	for rx := range cfg.RegionsX {
		for rz := range cfg.RegionsZ {
			if _, err := manager.LoadRegion(world.RegionID{X: rx, Z: rz}); err != nil {
				return fmt.Errorf("loading region (%d,%d): %w", rx, rz, err)
			}
		}
	}
	slog.Info("regions loaded", "count", manager.Count())

	if cfg.UseDatabase {
		if err := loadObstaclesFromDB(ctx, cfg, manager); err != nil {
			return err
		}
	} else {
		applyDemoObstacles(manager, cfg)
	}

	tickManager := ai.NewTickManager(cfg.TickInterval())
	agents := spawnAgents(cfg, manager, tickManager)
	slog.Info("agents spawned", "count", len(agents))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tickManager.Start(ctx)
	})
	g.Go(func() error {
		return statsLoop(ctx, agents)
	})

	return g.Wait()
}

// loadObstaclesFromDB connects to the obstacle store, applies pending
// migrations, and stamps the stored map geometry onto the grids.
func loadObstaclesFromDB(ctx context.Context, cfg config.NavSim, manager *world.Manager) error {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	repo := db.NewObstacleRepository(database.Pool())
	obstacles, err := repo.LoadByMap(ctx, cfg.MapID)
	if err != nil {
		return fmt.Errorf("loading obstacles: %w", err)
	}

	applied := db.ApplyObstacles(manager, obstacles)
	slog.Info("obstacles applied", "map", cfg.MapID, "count", applied)
	return nil
}

// applyDemoObstacles blocks a few hand-placed structures so the agents
// have something to route around when no obstacle store is configured.
func applyDemoObstacles(manager *world.Manager, cfg config.NavSim) {
	span := float64(cfg.RegionCells) * cfg.CellSize

	manager.BlockRect(span*0.2, span*0.2, span*0.3, span*0.3)  // building
	manager.BlockRect(span*0.5, span*0.1, span*0.55, span*0.4) // wall
	manager.BlockCircle(span*0.7, span*0.7, span*0.05)         // tower

	slog.Info("demo obstacles applied")
}

// spawnAgents places agents on random walkable cells and registers them
// with the tick manager.
func spawnAgents(cfg config.NavSim, manager *world.Manager, tickManager *ai.TickManager) []*ai.Agent {
	spanX := float64(cfg.RegionsX*cfg.RegionCells) * cfg.CellSize
	spanZ := float64(cfg.RegionsZ*cfg.RegionCells) * cfg.CellSize

	agents := make([]*ai.Agent, 0, cfg.Agents)
	for i := range cfg.Agents {
		spawn, ok := randomWalkablePosition(manager, spanX, spanZ)
		if !ok {
			slog.Warn("no walkable spawn found for agent", "index", i)
			continue
		}

		agent := ai.NewAgent(
			uint32(i+1),
			fmt.Sprintf("agent-%d", i+1),
			spawn,
			cfg.AgentSpeed,
			cfg.WanderRange,
			manager,
		)
		agents = append(agents, agent)
		tickManager.Register(agent.ID(), agent)
	}
	return agents
}

func randomWalkablePosition(manager *world.Manager, spanX, spanZ float64) (nav.Vec3, bool) {
	for range 100 {
		pos := nav.Vec3{X: rand.Float64() * spanX, Z: rand.Float64() * spanZ}
		region, ok := manager.RegionAt(pos.X, pos.Z)
		if !ok {
			continue
		}
		ox, oz := region.Origin()
		gx, gz := region.Grid().WorldToGrid(pos.X-ox, pos.Z-oz)
		if region.Grid().IsWalkable(gx, gz) {
			return pos, true
		}
	}
	return nav.Vec3{}, false
}

// statsLoop periodically logs simulation progress.
func statsLoop(ctx context.Context, agents []*ai.Agent) error {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			moving := 0
			var moves int64
			for _, a := range agents {
				if a.IsMoving() {
					moving++
				}
				moves += a.MovesCompleted()
			}
			slog.Info("simulation stats",
				"agents", len(agents),
				"moving", moving,
				"moves_completed", moves)
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
