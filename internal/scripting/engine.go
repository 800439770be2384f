package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for balance formulas.
// Single-goroutine access only (tick loop).
//
// Every bridge call has a built-in Go fallback implementing the stock
// formula; a missing script, a missing function, a runtime error or a
// malformed result never breaks a tick. A nil *Engine is valid and always
// falls back, so the simulation can run without Lua at all.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all .lua files from the given
// directory. A missing directory is not an error: the engine simply has no
// functions and every call falls back.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load balance scripts: %w", err)
	}
	return e, nil
}

// Close releases the VM. Safe on a nil engine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Info("balance scripts not found, using built-in formulas", zap.String("dir", dir))
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// WaveContext carries everything calc_wave_scaling may consider.
type WaveContext struct {
	Wave         int
	BaseInterval time.Duration
	Step         time.Duration
	Floor        time.Duration
}

// WaveScaling is the per-wave difficulty snapshot the director caches on
// every transition.
type WaveScaling struct {
	HealthMult    float64
	SpeedMult     float64
	SpawnInterval time.Duration
	BatchSize     int
}

// FallbackWaveScaling implements the stock difficulty curve: health
// multiplier ramps 0.3 per wave capped at 3.0, speed 0.1 per wave capped at
// 1.5, and the spawn interval shrinks by one step per wave down to the floor.
func FallbackWaveScaling(ctx WaveContext) WaveScaling {
	n := float64(ctx.Wave)
	interval := ctx.BaseInterval - time.Duration(ctx.Wave-1)*ctx.Step
	if interval < ctx.Floor {
		interval = ctx.Floor
	}
	batch := ctx.Wave + 2
	if batch > 8 {
		batch = 8
	}
	return WaveScaling{
		HealthMult:    math.Min(1+(n-1)*0.3, 3.0),
		SpeedMult:     math.Min(1+(n-1)*0.1, 1.5),
		SpawnInterval: interval,
		BatchSize:     batch,
	}
}

// CalcWaveScaling calls the Lua calc_wave_scaling function.
func (e *Engine) CalcWaveScaling(ctx WaveContext) WaveScaling {
	fb := FallbackWaveScaling(ctx)
	if e == nil {
		return fb
	}
	fn := e.vm.GetGlobal("calc_wave_scaling")
	if fn == lua.LNil {
		return fb
	}

	t := e.vm.NewTable()
	t.RawSetString("wave", lua.LNumber(ctx.Wave))
	t.RawSetString("base_interval_ms", lua.LNumber(ctx.BaseInterval.Milliseconds()))
	t.RawSetString("step_ms", lua.LNumber(ctx.Step.Milliseconds()))
	t.RawSetString("floor_ms", lua.LNumber(ctx.Floor.Milliseconds()))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_wave_scaling error", zap.Error(err))
		return fb
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_wave_scaling returned non-table")
		return fb
	}

	interval := time.Duration(posNum(rt, "spawn_interval_ms", float64(fb.SpawnInterval.Milliseconds()))) * time.Millisecond
	if interval < ctx.Floor {
		interval = ctx.Floor
	}
	return WaveScaling{
		HealthMult:    posNum(rt, "health_mult", fb.HealthMult),
		SpeedMult:     posNum(rt, "speed_mult", fb.SpeedMult),
		SpawnInterval: interval,
		BatchSize:     int(posNum(rt, "batch_size", float64(fb.BatchSize))),
	}
}

// BossStats are the extra multipliers a boss gets on top of wave scaling.
type BossStats struct {
	HealthMult  float64
	ContactMult float64
	RadiusMult  float64
}

// FallbackBossStats implements the stock boss boost: triple health, double
// contact damage, sixty percent larger hit radius.
func FallbackBossStats(wave int) BossStats {
	return BossStats{HealthMult: 3.0, ContactMult: 2.0, RadiusMult: 1.6}
}

// CalcBossStats calls the Lua calc_boss_stats function.
func (e *Engine) CalcBossStats(wave int) BossStats {
	fb := FallbackBossStats(wave)
	if e == nil {
		return fb
	}
	fn := e.vm.GetGlobal("calc_boss_stats")
	if fn == lua.LNil {
		return fb
	}

	t := e.vm.NewTable()
	t.RawSetString("wave", lua.LNumber(wave))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_boss_stats error", zap.Error(err))
		return fb
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_boss_stats returned non-table")
		return fb
	}

	return BossStats{
		HealthMult:  posNum(rt, "health_mult", fb.HealthMult),
		ContactMult: posNum(rt, "contact_mult", fb.ContactMult),
		RadiusMult:  posNum(rt, "radius_mult", fb.RadiusMult),
	}
}

// posNum reads a numeric field that must be positive to be trusted; anything
// else (missing, wrong type, zero, negative) yields the fallback so a bad
// script cannot break simulation invariants.
func posNum(t *lua.LTable, key string, def float64) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok && float64(n) > 0 {
		return float64(n)
	}
	return def
}
