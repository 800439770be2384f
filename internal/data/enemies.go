package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyInfo holds a single enemy archetype template. Health and speed are
// base values; the spawner multiplies them by the current wave scaling when
// it stamps out an instance.
type EnemyInfo struct {
	ID            string
	Name          string
	Health        float64
	Speed         float64 // nominal forward speed, scaled by combat.advance_scale
	ContactDamage float64 // dealt to the player on reaching the line
	HitRadius     float64
	Weight        int // spawn weight; 0 = never rolled (boss-only archetypes)
	MinWave       int // first wave this archetype may appear in
}

// EnemyTable holds all enemy archetypes indexed by id.
type EnemyTable struct {
	enemies map[string]*EnemyInfo
	order   []*EnemyInfo
}

// Get returns an archetype by id, or nil if not found.
func (t *EnemyTable) Get(id string) *EnemyInfo {
	return t.enemies[id]
}

// Count returns total loaded archetypes.
func (t *EnemyTable) Count() int {
	return len(t.order)
}

// All returns all archetypes in definition order.
func (t *EnemyTable) All() []*EnemyInfo {
	return t.order
}

// NewEnemyTable builds and validates a table. The loader and tests share it.
func NewEnemyTable(enemies []*EnemyInfo) (*EnemyTable, error) {
	if len(enemies) == 0 {
		return nil, fmt.Errorf("enemy table is empty")
	}
	t := &EnemyTable{
		enemies: make(map[string]*EnemyInfo, len(enemies)),
		order:   make([]*EnemyInfo, 0, len(enemies)),
	}
	rollable := false
	for _, e := range enemies {
		if e.ID == "" {
			return nil, fmt.Errorf("enemy with empty id")
		}
		if _, dup := t.enemies[e.ID]; dup {
			return nil, fmt.Errorf("enemy %s: duplicate id", e.ID)
		}
		if e.Health <= 0 {
			return nil, fmt.Errorf("enemy %s: health %.1f must be positive", e.ID, e.Health)
		}
		if e.Speed <= 0 {
			return nil, fmt.Errorf("enemy %s: speed %.2f must be positive", e.ID, e.Speed)
		}
		if e.ContactDamage < 0 {
			return nil, fmt.Errorf("enemy %s: contact_damage %.1f must not be negative", e.ID, e.ContactDamage)
		}
		if e.HitRadius <= 0 {
			return nil, fmt.Errorf("enemy %s: hit_radius %.1f must be positive", e.ID, e.HitRadius)
		}
		if e.Weight < 0 {
			return nil, fmt.Errorf("enemy %s: weight %d must not be negative", e.ID, e.Weight)
		}
		if e.MinWave < 1 {
			return nil, fmt.Errorf("enemy %s: min_wave %d must be at least 1", e.ID, e.MinWave)
		}
		if e.Weight > 0 && e.MinWave == 1 {
			rollable = true
		}
		t.enemies[e.ID] = e
		t.order = append(t.order, e)
	}
	if !rollable {
		return nil, fmt.Errorf("enemy table has no wave-1 archetype with positive weight")
	}
	return t, nil
}

// --- YAML loading ---

type enemyEntry struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Health        float64 `yaml:"health"`
	Speed         float64 `yaml:"speed"`
	ContactDamage float64 `yaml:"contact_damage"`
	HitRadius     float64 `yaml:"hit_radius"`
	Weight        int     `yaml:"weight"`
	MinWave       int     `yaml:"min_wave"`
}

type enemyListFile struct {
	Enemies []enemyEntry `yaml:"enemies"`
}

// LoadEnemyTable loads enemy archetype definitions from YAML.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemies: %w", err)
	}
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemies: %w", err)
	}
	enemies := make([]*EnemyInfo, 0, len(f.Enemies))
	for i := range f.Enemies {
		e := &f.Enemies[i]
		enemies = append(enemies, &EnemyInfo{
			ID:            e.ID,
			Name:          e.Name,
			Health:        e.Health,
			Speed:         e.Speed,
			ContactDamage: e.ContactDamage,
			HitRadius:     e.HitRadius,
			Weight:        e.Weight,
			MinWave:       e.MinWave,
		})
	}
	t, err := NewEnemyTable(enemies)
	if err != nil {
		return nil, fmt.Errorf("enemies %s: %w", path, err)
	}
	return t, nil
}
