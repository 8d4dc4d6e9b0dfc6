// Command colonysim runs the commune settlement simulation.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Kieren92/ColonySim/internal/agents"
	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/engine"
	"github.com/Kieren92/ColonySim/internal/events"
	"github.com/Kieren92/ColonySim/internal/persistence"
	"github.com/Kieren92/ColonySim/internal/telemetry"
	"github.com/Kieren92/ColonySim/internal/world"
)

func main() {
	var (
		cfgPath    = flag.String("config", "", "path to a YAML config overriding the embedded defaults")
		dbPath     = flag.String("db", "data/colony.db", "journal database path (empty disables)")
		outDir     = flag.String("out", "data", "telemetry output directory (empty disables)")
		seed       = flag.Int64("seed", 42, "world seed")
		population = flag.Int("population", 12, "initial member count")
		speed      = flag.Float64("speed", 0, "sim-seconds per real second (0 = config value)")
		jsonLogs   = flag.Bool("json-logs", false, "emit JSON logs")
	)
	flag.Parse()

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// ── Journal ──────────────────────────────────────────────────────
	var db *persistence.DB
	if *dbPath != "" {
		os.MkdirAll(filepath.Dir(*dbPath), 0755)
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("journal opened", "path", *dbPath)
	}

	// ── World ────────────────────────────────────────────────────────
	genCfg := world.DefaultGenConfig()
	genCfg.Seed = *seed
	grid := world.Generate(genCfg)
	slog.Info("settlement grid generated", "width", grid.Width, "height", grid.Height, "seed", *seed)

	// ── Simulation ───────────────────────────────────────────────────
	bus := events.NewBus()
	sim := engine.NewSimulation(cfg, grid, bus, *seed)

	collector := telemetry.NewCollector()
	bus.Subscribe(collector.HandleEvent)
	if db != nil {
		bus.Subscribe(func(ev events.Event) {
			if err := db.AppendEvent(ev); err != nil {
				slog.Warn("journal write failed", "error", err)
			}
		})
	}
	bus.Subscribe(func(ev events.Event) {
		slog.Debug("event", "type", string(ev.Type), "member", ev.Member, "detail", ev.Detail)
	})

	out, err := telemetry.NewOutputManager(*outDir)
	if err != nil {
		slog.Error("failed to create telemetry output", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	// Seed the settlement: one building of each configured type, packed
	// around the clear center.
	cx, cy := grid.Width/2-8, grid.Height/2-6
	x := cx
	for _, def := range cfg.Buildings {
		b, err := sim.Registry.Place(def, x, cy)
		if err != nil {
			slog.Warn("could not place building", "building", def.Name, "error", err)
			continue
		}
		slog.Info("placed", "building", b.String(), "x", b.GX, "y", b.GY)
		x += def.Width + 2
		if x > grid.Width-8 {
			x = cx
			cy += 6
		}
	}

	spawner := agents.NewSpawner(cfg, *seed)
	for _, m := range spawner.SpawnPopulation(*population, grid, bus) {
		sim.Join(m)
	}
	sim.ScheduleWork()
	slog.Info("population spawned", "members", len(sim.Members))

	// ── Engine ───────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Speed = cfg.Tuning.SpeedFactor
	if *speed > 0 {
		eng.Speed = *speed
	}
	eng.OnTick = sim.Advance
	eng.OnHour = func(tick uint64) {
		slog.Info("hour", "sim_time", engine.SimTime(tick),
			"commune_stacks", len(sim.Commune.Stacks), "cooldowns", sim.Cooldowns.Len())
	}
	eng.OnDay = func(tick uint64) {
		day := collector.Sample(sim, tick)
		if err := out.WriteDay(day); err != nil {
			slog.Warn("telemetry write failed", "error", err)
		}
		if db != nil {
			if err := db.SaveDay(day); err != nil {
				slog.Warn("journal day write failed", "error", err)
			}
		}
		slog.Info("day summary", "sim_time", day.SimTime, "population", day.Population,
			"need_mean", day.NeedMean, "produced", day.Produced, "confiscations", day.Confiscations)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		slog.Info("shutting down")
		eng.Stop()
	}()

	eng.Run()
	slog.Info("final state", "sim_time", engine.SimTime(eng.Tick), "members", len(sim.Members))
}
