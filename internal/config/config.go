package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Logging  LoggingConfig  `toml:"logging"`
	Lane     LaneConfig     `toml:"lane"`
	Player   PlayerConfig   `toml:"player"`
	Combat   CombatConfig   `toml:"combat"`
	Waves    WavesConfig    `toml:"waves"`
	Spawn    SpawnConfig    `toml:"spawn"`
	Upgrades UpgradesConfig `toml:"upgrades"`
	Clones   ClonesConfig   `toml:"clones"`
	Data     DataConfig     `toml:"data"`
	Scripts  ScriptsConfig  `toml:"scripts"`
}

type EngineConfig struct {
	Seed            int64         `toml:"seed"`             // 0 = seed from wall clock
	SpeedMultiplier float64       `toml:"speed_multiplier"` // global time scale on enemy/projectile motion
	TickRate        time.Duration `toml:"tick_rate"`        // headless runner frame interval
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// LaneConfig fixes the playfield geometry. The lane is a strip: the player
// strafes along X near Z = reach_z, enemies and upgrades spawn at spawn_z and
// advance toward positive Z, projectiles fly toward negative Z and expire
// past far_z.
type LaneConfig struct {
	HalfWidth float64 `toml:"half_width"`
	Margin    float64 `toml:"margin"` // keeps the player off the lane walls
	SpawnZ    float64 `toml:"spawn_z"`
	FarZ      float64 `toml:"far_z"`
	ReachZ    float64 `toml:"reach_z"` // the player's line
}

// Boundary is the player's lateral clamp limit: half-width minus margin.
func (l LaneConfig) Boundary() float64 {
	return l.HalfWidth - l.Margin
}

type PlayerConfig struct {
	Speed       float64 `toml:"speed"` // lateral units per second
	MaxHealth   float64 `toml:"max_health"`
	StartWeapon string  `toml:"start_weapon"`
}

type CombatConfig struct {
	AdvanceScale    float64 `toml:"advance_scale"` // nominal enemy speed → forward units/s
	ExplosionRadius float64 `toml:"explosion_radius"`
	AreaFalloff     float64 `toml:"area_falloff"` // damage lost at the blast edge (0.3 = 70% at edge)
	Knockback       float64 `toml:"knockback"`    // blast impulse at the center, in lane units
}

type WavesConfig struct {
	Duration      time.Duration `toml:"duration"`
	Max           int           `toml:"max"`
	BossWaves     []int         `toml:"boss_waves"`
	BossArchetype string        `toml:"boss_archetype"`
	BossDelay     time.Duration `toml:"boss_delay"`
	BatchWindow   time.Duration `toml:"batch_window"` // wave-change batch stagger window
}

type SpawnConfig struct {
	BaseInterval time.Duration `toml:"base_interval"`
	Step         time.Duration `toml:"step"`  // interval shrink per wave
	Floor        time.Duration `toml:"floor"` // interval never drops below this
	BurstChance  float64       `toml:"burst_chance"`
	BurstMin     int           `toml:"burst_min"`
	BurstMax     int           `toml:"burst_max"`
	BurstWindow  time.Duration `toml:"burst_window"`
}

type UpgradesConfig struct {
	Interval     time.Duration `toml:"interval"`
	Chance       float64       `toml:"chance"`
	PickupRadius float64       `toml:"pickup_radius"`
	Speed        float64       `toml:"speed"` // forward units/s; must outrun enemies
}

type ClonesConfig struct {
	Max         int           `toml:"max"`
	Spacing     float64       `toml:"spacing"` // lateral gap between follow slots
	DamageScale float64       `toml:"damage_scale"`
	FireStagger time.Duration `toml:"fire_stagger"` // per-slot delay on mirrored shots
}

type DataConfig struct {
	Weapons  string `toml:"weapons"`
	Enemies  string `toml:"enemies"`
	Upgrades string `toml:"upgrades"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir"` // empty disables the balance scripts
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the canonical configuration. It always validates.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Seed:            0,
			SpeedMultiplier: 1.0,
			TickRate:        16 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Lane: LaneConfig{
			HalfWidth: 12.0,
			Margin:    1.0,
			SpawnZ:    -50.0,
			FarZ:      -60.0,
			ReachZ:    0.0,
		},
		Player: PlayerConfig{
			Speed:       9.0,
			MaxHealth:   100.0,
			StartWeapon: "blaster",
		},
		Combat: CombatConfig{
			AdvanceScale:    2.2,
			ExplosionRadius: 6.0,
			AreaFalloff:     0.3,
			Knockback:       3.0,
		},
		Waves: WavesConfig{
			Duration:      20 * time.Second,
			Max:           10,
			BossWaves:     []int{3, 6, 9},
			BossArchetype: "brute",
			BossDelay:     1200 * time.Millisecond,
			BatchWindow:   1500 * time.Millisecond,
		},
		Spawn: SpawnConfig{
			BaseInterval: 2 * time.Second,
			Step:         150 * time.Millisecond,
			Floor:        600 * time.Millisecond,
			BurstChance:  0.3,
			BurstMin:     3,
			BurstMax:     5,
			BurstWindow:  450 * time.Millisecond,
		},
		Upgrades: UpgradesConfig{
			Interval:     9 * time.Second,
			Chance:       0.65,
			PickupRadius: 2.5,
			Speed:        4.0,
		},
		Clones: ClonesConfig{
			Max:         4,
			Spacing:     1.8,
			DamageScale: 0.5,
			FireStagger: 45 * time.Millisecond,
		},
		Data: DataConfig{
			Weapons:  "data/yaml/weapon_list.yaml",
			Enemies:  "data/yaml/enemy_list.yaml",
			Upgrades: "data/yaml/upgrade_list.yaml",
		},
		Scripts: ScriptsConfig{
			Dir: "scripts/balance",
		},
	}
}

// Validate rejects configurations that would break simulation invariants.
// Construction fails fast on these; nothing is silently defaulted.
func (c *Config) Validate() error {
	if c.Engine.SpeedMultiplier <= 0 {
		return fmt.Errorf("engine: speed_multiplier %.2f must be positive", c.Engine.SpeedMultiplier)
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine: tick_rate %s must be positive", c.Engine.TickRate)
	}
	if c.Lane.HalfWidth <= 0 {
		return fmt.Errorf("lane: half_width %.1f must be positive", c.Lane.HalfWidth)
	}
	if c.Lane.Margin < 0 || c.Lane.Margin >= c.Lane.HalfWidth {
		return fmt.Errorf("lane: margin %.1f must be in [0, half_width %.1f)", c.Lane.Margin, c.Lane.HalfWidth)
	}
	if c.Lane.SpawnZ >= c.Lane.ReachZ {
		return fmt.Errorf("lane: spawn_z %.1f must lie before reach_z %.1f", c.Lane.SpawnZ, c.Lane.ReachZ)
	}
	if c.Lane.FarZ >= c.Lane.SpawnZ {
		return fmt.Errorf("lane: far_z %.1f must lie beyond spawn_z %.1f", c.Lane.FarZ, c.Lane.SpawnZ)
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("player: speed %.1f must be positive", c.Player.Speed)
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player: max_health %.1f must be positive", c.Player.MaxHealth)
	}
	if c.Player.StartWeapon == "" {
		return fmt.Errorf("player: start_weapon must be set")
	}
	if c.Combat.AdvanceScale <= 0 {
		return fmt.Errorf("combat: advance_scale %.2f must be positive", c.Combat.AdvanceScale)
	}
	if c.Combat.ExplosionRadius <= 0 {
		return fmt.Errorf("combat: explosion_radius %.1f must be positive", c.Combat.ExplosionRadius)
	}
	if c.Combat.AreaFalloff < 0 || c.Combat.AreaFalloff > 1 {
		return fmt.Errorf("combat: area_falloff %.2f must be in [0, 1]", c.Combat.AreaFalloff)
	}
	if c.Combat.Knockback < 0 {
		return fmt.Errorf("combat: knockback %.1f must not be negative", c.Combat.Knockback)
	}
	if c.Waves.Duration <= 0 {
		return fmt.Errorf("waves: duration %s must be positive", c.Waves.Duration)
	}
	if c.Waves.Max < 1 {
		return fmt.Errorf("waves: max %d must be at least 1", c.Waves.Max)
	}
	if len(c.Waves.BossWaves) > 0 && c.Waves.BossArchetype == "" {
		return fmt.Errorf("waves: boss_archetype must be set when boss_waves is not empty")
	}
	if c.Waves.BossDelay < 0 || c.Waves.BatchWindow < 0 {
		return fmt.Errorf("waves: boss_delay and batch_window must not be negative")
	}
	if c.Spawn.BaseInterval <= 0 {
		return fmt.Errorf("spawn: base_interval %s must be positive", c.Spawn.BaseInterval)
	}
	if c.Spawn.Floor <= 0 || c.Spawn.Floor > c.Spawn.BaseInterval {
		return fmt.Errorf("spawn: floor %s must be in (0, base_interval %s]", c.Spawn.Floor, c.Spawn.BaseInterval)
	}
	if c.Spawn.Step < 0 {
		return fmt.Errorf("spawn: step %s must not be negative", c.Spawn.Step)
	}
	if c.Spawn.BurstChance < 0 || c.Spawn.BurstChance > 1 {
		return fmt.Errorf("spawn: burst_chance %.2f must be in [0, 1]", c.Spawn.BurstChance)
	}
	if c.Spawn.BurstMin < 1 || c.Spawn.BurstMin > c.Spawn.BurstMax {
		return fmt.Errorf("spawn: burst_min %d must be in [1, burst_max %d]", c.Spawn.BurstMin, c.Spawn.BurstMax)
	}
	if c.Spawn.BurstWindow < 0 {
		return fmt.Errorf("spawn: burst_window %s must not be negative", c.Spawn.BurstWindow)
	}
	if c.Upgrades.Interval <= 0 {
		return fmt.Errorf("upgrades: interval %s must be positive", c.Upgrades.Interval)
	}
	if c.Upgrades.Chance < 0 || c.Upgrades.Chance > 1 {
		return fmt.Errorf("upgrades: chance %.2f must be in [0, 1]", c.Upgrades.Chance)
	}
	if c.Upgrades.PickupRadius <= 0 {
		return fmt.Errorf("upgrades: pickup_radius %.1f must be positive", c.Upgrades.PickupRadius)
	}
	if c.Upgrades.Speed <= 0 {
		return fmt.Errorf("upgrades: speed %.1f must be positive", c.Upgrades.Speed)
	}
	if c.Clones.Max < 0 {
		return fmt.Errorf("clones: max %d must not be negative", c.Clones.Max)
	}
	if c.Clones.Spacing <= 0 {
		return fmt.Errorf("clones: spacing %.1f must be positive", c.Clones.Spacing)
	}
	if c.Clones.DamageScale <= 0 || c.Clones.DamageScale > 1 {
		return fmt.Errorf("clones: damage_scale %.2f must be in (0, 1]", c.Clones.DamageScale)
	}
	if c.Clones.FireStagger < 0 {
		return fmt.Errorf("clones: fire_stagger %s must not be negative", c.Clones.FireStagger)
	}
	if c.Data.Weapons == "" || c.Data.Enemies == "" || c.Data.Upgrades == "" {
		return fmt.Errorf("data: weapons, enemies and upgrades table paths must all be set")
	}
	return nil
}
