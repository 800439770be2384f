package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWeaponTable(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "weapons.yaml", `
weapons:
  - id: blaster
    name: Blaster
    damage: 1.0
    fire_interval_ms: 300
    projectile_speed: 40.0
    lifetime_ms: 2000
    hit_radius: 1.0
    default: true
  - id: laser
    name: Laser
    damage: 2.0
    fire_interval_ms: 650
    projectile_speed: 55.0
    lifetime_ms: 1600
    hit_radius: 1.0
    pierce: true
`)
	table, err := LoadWeaponTable(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Count())

	b := table.Get("blaster")
	require.NotNil(t, b)
	require.Equal(t, 300*time.Millisecond, b.FireInterval)
	require.Equal(t, 2*time.Second, b.Lifetime)
	require.True(t, b.Default)
	require.False(t, b.Pierce)

	l := table.Get("laser")
	require.NotNil(t, l)
	require.True(t, l.Pierce)
	require.False(t, l.Area)

	require.Nil(t, table.Get("railgun"))
	require.Equal(t, "blaster", table.Default().ID)

	// All preserves definition order.
	all := table.All()
	require.Equal(t, "blaster", all[0].ID)
	require.Equal(t, "laser", all[1].ID)
}

func TestWeaponTableValidation(t *testing.T) {
	t.Parallel()

	base := func() []*WeaponInfo {
		return []*WeaponInfo{{
			ID:              "blaster",
			Name:            "Blaster",
			Damage:          1,
			FireInterval:    300 * time.Millisecond,
			ProjectileSpeed: 40,
			Lifetime:        2 * time.Second,
			HitRadius:       1,
			Default:         true,
		}}
	}

	t.Run("valid", func(t *testing.T) {
		_, err := NewWeaponTable(base())
		require.NoError(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := NewWeaponTable(nil)
		require.ErrorContains(t, err, "empty")
	})

	t.Run("duplicate id", func(t *testing.T) {
		ws := append(base(), base()...)
		_, err := NewWeaponTable(ws)
		require.ErrorContains(t, err, "duplicate")
	})

	t.Run("no default", func(t *testing.T) {
		ws := base()
		ws[0].Default = false
		_, err := NewWeaponTable(ws)
		require.Error(t, err)
	})

	t.Run("two defaults", func(t *testing.T) {
		ws := append(base(), base()...)
		ws[1].ID = "other"
		_, err := NewWeaponTable(ws)
		require.Error(t, err)
	})

	t.Run("pierce and area together", func(t *testing.T) {
		ws := base()
		ws[0].Pierce = true
		ws[0].Area = true
		_, err := NewWeaponTable(ws)
		require.Error(t, err)
	})

	t.Run("zero damage", func(t *testing.T) {
		ws := base()
		ws[0].Damage = 0
		_, err := NewWeaponTable(ws)
		require.Error(t, err)
	})

	t.Run("zero fire interval", func(t *testing.T) {
		ws := base()
		ws[0].FireInterval = 0
		_, err := NewWeaponTable(ws)
		require.Error(t, err)
	})
}

func TestLoadWeaponTableMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadWeaponTable(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
