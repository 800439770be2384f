package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UpgradeKind discriminates what picking an upgrade up does.
type UpgradeKind string

const (
	UpgradeWeapon UpgradeKind = "weapon" // switch the player's current weapon
	UpgradeHeal   UpgradeKind = "heal"   // restore health up to the cap
	UpgradeClone  UpgradeKind = "clone"  // grant a follower clone, bounded by clones.max
)

// UpgradeInfo holds a single upgrade template.
type UpgradeInfo struct {
	ID         string
	Kind       UpgradeKind
	WeaponID   string  // weapon kind only
	HealAmount float64 // heal kind only
	Weight     int     // spawn weight for the random kind draw
}

// UpgradeTable holds all upgrade templates indexed by id.
type UpgradeTable struct {
	upgrades    map[string]*UpgradeInfo
	order       []*UpgradeInfo
	totalWeight int
}

// Get returns an upgrade template by id, or nil if not found.
func (t *UpgradeTable) Get(id string) *UpgradeInfo {
	return t.upgrades[id]
}

// Count returns total loaded upgrade templates.
func (t *UpgradeTable) Count() int {
	return len(t.order)
}

// All returns all upgrade templates in definition order.
func (t *UpgradeTable) All() []*UpgradeInfo {
	return t.order
}

// TotalWeight is the sum of all spawn weights, the denominator of the
// spawner's weighted draw.
func (t *UpgradeTable) TotalWeight() int {
	return t.totalWeight
}

// NewUpgradeTable builds and validates a table. The loader and tests share it.
func NewUpgradeTable(upgrades []*UpgradeInfo) (*UpgradeTable, error) {
	if len(upgrades) == 0 {
		return nil, fmt.Errorf("upgrade table is empty")
	}
	t := &UpgradeTable{
		upgrades: make(map[string]*UpgradeInfo, len(upgrades)),
		order:    make([]*UpgradeInfo, 0, len(upgrades)),
	}
	for _, u := range upgrades {
		if u.ID == "" {
			return nil, fmt.Errorf("upgrade with empty id")
		}
		if _, dup := t.upgrades[u.ID]; dup {
			return nil, fmt.Errorf("upgrade %s: duplicate id", u.ID)
		}
		switch u.Kind {
		case UpgradeWeapon:
			if u.WeaponID == "" {
				return nil, fmt.Errorf("upgrade %s: weapon kind needs weapon_id", u.ID)
			}
		case UpgradeHeal:
			if u.HealAmount <= 0 {
				return nil, fmt.Errorf("upgrade %s: heal_amount %.1f must be positive", u.ID, u.HealAmount)
			}
		case UpgradeClone:
			// nothing extra
		default:
			return nil, fmt.Errorf("upgrade %s: unknown kind %q", u.ID, u.Kind)
		}
		if u.Weight < 0 {
			return nil, fmt.Errorf("upgrade %s: weight %d must not be negative", u.ID, u.Weight)
		}
		t.totalWeight += u.Weight
		t.upgrades[u.ID] = u
		t.order = append(t.order, u)
	}
	if t.totalWeight == 0 {
		return nil, fmt.Errorf("upgrade table has no entry with positive weight")
	}
	return t, nil
}

// --- YAML loading ---

type upgradeEntry struct {
	ID         string  `yaml:"id"`
	Kind       string  `yaml:"kind"`
	WeaponID   string  `yaml:"weapon_id"`
	HealAmount float64 `yaml:"heal_amount"`
	Weight     int     `yaml:"weight"`
}

type upgradeListFile struct {
	Upgrades []upgradeEntry `yaml:"upgrades"`
}

// LoadUpgradeTable loads upgrade definitions from YAML.
func LoadUpgradeTable(path string) (*UpgradeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read upgrades: %w", err)
	}
	var f upgradeListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse upgrades: %w", err)
	}
	upgrades := make([]*UpgradeInfo, 0, len(f.Upgrades))
	for i := range f.Upgrades {
		e := &f.Upgrades[i]
		upgrades = append(upgrades, &UpgradeInfo{
			ID:         e.ID,
			Kind:       UpgradeKind(e.Kind),
			WeaponID:   e.WeaponID,
			HealAmount: e.HealAmount,
			Weight:     e.Weight,
		})
	}
	t, err := NewUpgradeTable(upgrades)
	if err != nil {
		return nil, fmt.Errorf("upgrades %s: %w", path, err)
	}
	return t, nil
}
