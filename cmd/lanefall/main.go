package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lanefall/engine/internal/config"
	"github.com/lanefall/engine/internal/core/event"
	"github.com/lanefall/engine/internal/data"
	"github.com/lanefall/engine/internal/scripting"
	"github.com/lanefall/engine/internal/sim"
	"github.com/lanefall/engine/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            LANEFALL  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      headless lane-defense harness        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Harness logic ──────────────────────────────────────────────────

func run() error {
	seconds := flag.Float64("seconds", 0, "stop after this much simulated time (0 = run until game over)")
	quiet := flag.Bool("quiet", false, "suppress per-event logging")
	flag.Parse()

	// 1. Load config
	cfgPath := "config/lanefall.toml"
	if p := os.Getenv("LANEFALL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging, *quiet)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load content tables
	printSection("content")

	weapons, err := data.LoadWeaponTable(cfg.Data.Weapons)
	if err != nil {
		return fmt.Errorf("load weapon table: %w", err)
	}
	printStat("weapons", weapons.Count())

	enemies, err := data.LoadEnemyTable(cfg.Data.Enemies)
	if err != nil {
		return fmt.Errorf("load enemy table: %w", err)
	}
	printStat("enemy archetypes", enemies.Count())

	upgrades, err := data.LoadUpgradeTable(cfg.Data.Upgrades)
	if err != nil {
		return fmt.Errorf("load upgrade table: %w", err)
	}
	printStat("upgrades", upgrades.Count())

	// 4. Balance scripts
	lua, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer lua.Close()
	printOK("balance scripts ready")

	// 5. Build the engine and subscribe the log sinks
	eng, err := sim.New(cfg, weapons, enemies, upgrades, lua, log)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if !*quiet {
		subscribeSinks(eng.Bus(), log)
	}
	fmt.Println()

	// 6. Drive the fixed-step loop with the autopilot
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Engine.TickRate)
	defer ticker.Stop()

	printSection("harness ready")
	printReady(fmt.Sprintf("tick rate %s, autopilot engaged", cfg.Engine.TickRate))
	fmt.Println()

	dt := cfg.Engine.TickRate.Seconds()
	simTime := 0.0
	eng.SetFireIntent(true)

	for {
		select {
		case <-ticker.C:
			steer(eng)
			events := eng.Tick(dt)
			simTime += dt

			for _, ev := range events {
				if _, ok := ev.(event.GameOver); ok {
					// Tick once more so subscribers see the final events.
					eng.Tick(dt)
					report(eng.Snapshot(), simTime)
					return nil
				}
			}
			if *seconds > 0 && simTime >= *seconds {
				report(eng.Snapshot(), simTime)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			report(eng.Snapshot(), simTime)
			return nil
		}
	}
}

// steer points the autopilot at the nearest enemy: hold the key toward its
// lateral position until roughly lined up. No enemies means no input.
func steer(eng *sim.Engine) {
	snap := eng.Snapshot()

	var target *world.EnemyView
	for i := range snap.Enemies {
		e := &snap.Enemies[i]
		if target == nil || e.Pos.Z > target.Pos.Z {
			target = e
		}
	}
	if target == nil {
		eng.SetMovementIntent(false, false)
		return
	}

	const deadzone = 0.5
	dx := target.Pos.X - snap.Player.Pos.X
	eng.SetMovementIntent(dx < -deadzone, dx > deadzone)
}

// subscribeSinks logs the interesting domain events as they dispatch.
func subscribeSinks(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.WaveChanged) {
		log.Info("wave",
			zap.Int("wave", ev.Wave),
			zap.Float64("health_mult", ev.HealthMult),
			zap.Float64("speed_mult", ev.SpeedMult),
			zap.Duration("spawn_interval", ev.SpawnInterval),
		)
	})
	event.Subscribe(bus, func(ev event.BossIncoming) {
		log.Info("boss incoming", zap.Int("wave", ev.Wave), zap.Duration("delay", ev.Delay))
	})
	event.Subscribe(bus, func(ev event.EnemyKilled) {
		log.Debug("kill", zap.Uint64("enemy", uint64(ev.ID)), zap.Bool("boss", ev.Boss), zap.Int("kills", ev.Kills))
	})
	event.Subscribe(bus, func(ev event.PlayerDamaged) {
		log.Info("player hit", zap.Float64("damage", ev.Damage), zap.Float64("health", ev.Health))
	})
	event.Subscribe(bus, func(ev event.UpgradeCollected) {
		log.Info("upgrade collected", zap.String("kind", ev.Kind), zap.String("weapon", ev.WeaponID))
	})
	event.Subscribe(bus, func(ev event.WeaponFallback) {
		log.Warn("weapon fallback", zap.String("requested", ev.Requested), zap.String("fallback", ev.Fallback))
	})
	event.Subscribe(bus, func(ev event.GameOver) {
		log.Info("game over",
			zap.String("session", ev.SessionID.String()),
			zap.Int("kills", ev.Kills),
			zap.Int("wave", ev.Wave),
			zap.Duration("elapsed", ev.Elapsed),
		)
	})
}

// report prints the end-of-run summary.
func report(snap *world.Snapshot, simTime float64) {
	fmt.Println()
	printSection("session report")
	printStat("wave reached", snap.Session.Wave)
	printStat("kills", snap.Session.Kills)
	fmt.Printf("  status \033[90m%s\033[0m \033[32m%s\033[0m\n",
		strings.Repeat("·", 42-7-len(snap.Session.Status.String())),
		snap.Session.Status)
	fmt.Printf("  simulated \033[90m%s\033[0m \033[32m%.1fs\033[0m\n",
		strings.Repeat("·", 42-10-len(fmt.Sprintf("%.1fs", simTime))),
		simTime)
	fmt.Println()
}

func newLogger(cfg config.LoggingConfig, quiet bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	if quiet && level < zapcore.WarnLevel {
		level = zapcore.WarnLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
