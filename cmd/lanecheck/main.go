// lanecheck validates the lanefall content tables and configuration against
// each other: every id the config references must exist in the tables, every
// weapon an upgrade grants must be loadable, and the balance scripts must
// parse. With -curve it also prints the per-wave difficulty curve those
// scripts produce.
//
// Usage:
//
//	go run ./cmd/lanecheck [-config path] [-curve]
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lanefall/engine/internal/config"
	"github.com/lanefall/engine/internal/data"
	"github.com/lanefall/engine/internal/scripting"
	"github.com/lanefall/engine/internal/system"
)

func main() {
	cfgPath := flag.String("config", defaultConfigPath(), "path to the TOML configuration")
	curve := flag.Bool("curve", false, "print the per-wave difficulty curve")
	flag.Parse()

	if err := run(*cfgPath, *curve); err != nil {
		fmt.Fprintf(os.Stderr, "lanecheck: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if p := os.Getenv("LANEFALL_CONFIG"); p != "" {
		return p
	}
	return "config/lanefall.toml"
}

func run(cfgPath string, curve bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	fmt.Printf("config   %s ok\n", cfgPath)

	// ---- Load the tables ----
	weapons, err := data.LoadWeaponTable(cfg.Data.Weapons)
	if err != nil {
		return err
	}
	fmt.Printf("weapons  %d entries, default %s\n", weapons.Count(), weapons.Default().ID)

	enemies, err := data.LoadEnemyTable(cfg.Data.Enemies)
	if err != nil {
		return err
	}
	fmt.Printf("enemies  %d archetypes\n", enemies.Count())

	upgrades, err := data.LoadUpgradeTable(cfg.Data.Upgrades)
	if err != nil {
		return err
	}
	fmt.Printf("upgrades %d templates, total weight %d\n", upgrades.Count(), upgrades.TotalWeight())

	// ---- Cross-reference ids ----
	var problems []string
	if weapons.Get(cfg.Player.StartWeapon) == nil {
		problems = append(problems, fmt.Sprintf("player.start_weapon %q not in the weapon table", cfg.Player.StartWeapon))
	}
	if len(cfg.Waves.BossWaves) > 0 && enemies.Get(cfg.Waves.BossArchetype) == nil {
		problems = append(problems, fmt.Sprintf("waves.boss_archetype %q not in the enemy table", cfg.Waves.BossArchetype))
	}
	for _, u := range upgrades.All() {
		if u.Kind == data.UpgradeWeapon && weapons.Get(u.WeaponID) == nil {
			problems = append(problems, fmt.Sprintf("upgrade %s grants unknown weapon %q", u.ID, u.WeaponID))
		}
	}

	// ---- Balance scripts ----
	lua, err := scripting.NewEngine(cfg.Scripts.Dir, zap.NewNop())
	if err != nil {
		problems = append(problems, err.Error())
	} else {
		defer lua.Close()
		fmt.Printf("scripts  %s ok\n", cfg.Scripts.Dir)
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "problem: %s\n", p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	}

	if curve {
		printCurve(cfg, lua)
	}
	fmt.Println("all checks passed")
	return nil
}

// printCurve evaluates the wave scaling for every wave up to the ceiling and
// prints the resulting curve, flagging boss waves.
func printCurve(cfg *config.Config, lua *scripting.Engine) {
	fmt.Printf("\n%-6s %-8s %-8s %-10s %-6s %s\n", "wave", "health", "speed", "interval", "batch", "boss")
	for wave := 1; wave <= cfg.Waves.Max; wave++ {
		s := lua.CalcWaveScaling(system.WaveContextFor(cfg, wave))
		boss := ""
		for _, w := range cfg.Waves.BossWaves {
			if w == wave {
				boss = "*"
			}
		}
		fmt.Printf("%-6d %-8.2f %-8.2f %-10s %-6d %s\n",
			wave, s.HealthMult, s.SpeedMult, s.SpawnInterval, s.BatchSize, boss)
	}
	fmt.Println()
}
