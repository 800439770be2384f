package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WeaponInfo holds a single weapon template. Pierce and Area are explicit
// capability flags: pierce projectiles survive hits and may damage several
// enemies in one tick, area projectiles detonate on first contact and damage
// everything inside the blast radius.
type WeaponInfo struct {
	ID              string
	Name            string
	Damage          float64
	FireInterval    time.Duration
	ProjectileSpeed float64 // forward units per second, toward the far bound
	Lifetime        time.Duration
	HitRadius       float64
	Pierce          bool
	Area            bool
	Default         bool // fallback when an unknown weapon id is requested
}

// WeaponTable holds all weapons indexed by id.
type WeaponTable struct {
	weapons map[string]*WeaponInfo
	order   []*WeaponInfo
	def     *WeaponInfo
}

// Get returns a weapon by id, or nil if not found.
func (t *WeaponTable) Get(id string) *WeaponInfo {
	return t.weapons[id]
}

// Default returns the designated fallback weapon.
func (t *WeaponTable) Default() *WeaponInfo {
	return t.def
}

// Count returns total loaded weapons.
func (t *WeaponTable) Count() int {
	return len(t.order)
}

// All returns all weapons in definition order.
func (t *WeaponTable) All() []*WeaponInfo {
	return t.order
}

// NewWeaponTable builds and validates a table. The loader and tests share it.
func NewWeaponTable(weapons []*WeaponInfo) (*WeaponTable, error) {
	if len(weapons) == 0 {
		return nil, fmt.Errorf("weapon table is empty")
	}
	t := &WeaponTable{
		weapons: make(map[string]*WeaponInfo, len(weapons)),
		order:   make([]*WeaponInfo, 0, len(weapons)),
	}
	for _, w := range weapons {
		if w.ID == "" {
			return nil, fmt.Errorf("weapon with empty id")
		}
		if _, dup := t.weapons[w.ID]; dup {
			return nil, fmt.Errorf("weapon %s: duplicate id", w.ID)
		}
		if w.Damage <= 0 {
			return nil, fmt.Errorf("weapon %s: damage %.1f must be positive", w.ID, w.Damage)
		}
		if w.FireInterval <= 0 {
			return nil, fmt.Errorf("weapon %s: fire_interval_ms must be positive", w.ID)
		}
		if w.ProjectileSpeed <= 0 {
			return nil, fmt.Errorf("weapon %s: projectile_speed %.1f must be positive", w.ID, w.ProjectileSpeed)
		}
		if w.Lifetime <= 0 {
			return nil, fmt.Errorf("weapon %s: lifetime_ms must be positive", w.ID)
		}
		if w.HitRadius <= 0 {
			return nil, fmt.Errorf("weapon %s: hit_radius %.1f must be positive", w.ID, w.HitRadius)
		}
		if w.Pierce && w.Area {
			return nil, fmt.Errorf("weapon %s: pierce and area are mutually exclusive", w.ID)
		}
		if w.Default {
			if t.def != nil {
				return nil, fmt.Errorf("weapon %s: default already set by %s", w.ID, t.def.ID)
			}
			t.def = w
		}
		t.weapons[w.ID] = w
		t.order = append(t.order, w)
	}
	if t.def == nil {
		return nil, fmt.Errorf("weapon table has no default weapon")
	}
	return t, nil
}

// --- YAML loading ---

type weaponEntry struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	Damage          float64 `yaml:"damage"`
	FireIntervalMs  int     `yaml:"fire_interval_ms"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	LifetimeMs      int     `yaml:"lifetime_ms"`
	HitRadius       float64 `yaml:"hit_radius"`
	Pierce          bool    `yaml:"pierce"`
	Area            bool    `yaml:"area"`
	Default         bool    `yaml:"default"`
}

type weaponListFile struct {
	Weapons []weaponEntry `yaml:"weapons"`
}

// LoadWeaponTable loads weapon definitions from YAML.
func LoadWeaponTable(path string) (*WeaponTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapons: %w", err)
	}
	var f weaponListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse weapons: %w", err)
	}
	weapons := make([]*WeaponInfo, 0, len(f.Weapons))
	for i := range f.Weapons {
		e := &f.Weapons[i]
		weapons = append(weapons, &WeaponInfo{
			ID:              e.ID,
			Name:            e.Name,
			Damage:          e.Damage,
			FireInterval:    time.Duration(e.FireIntervalMs) * time.Millisecond,
			ProjectileSpeed: e.ProjectileSpeed,
			Lifetime:        time.Duration(e.LifetimeMs) * time.Millisecond,
			HitRadius:       e.HitRadius,
			Pierce:          e.Pierce,
			Area:            e.Area,
			Default:         e.Default,
		})
	}
	t, err := NewWeaponTable(weapons)
	if err != nil {
		return nil, fmt.Errorf("weapons %s: %w", path, err)
	}
	return t, nil
}
