// stagedemo runs the frame pipeline headless: perlin-generated tile
// terrain, a chased player, patrolling hazards, contact-driven damage,
// and viewport culling, with a recorder standing in for the rendering
// surface and an AABB stub for the physics engine
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aquilax/go-perlin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/config"
	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/engine"
	"github.com/lixenwraith/framecore/logging"
	"github.com/lixenwraith/framecore/metrics"
	"github.com/lixenwraith/framecore/physics"
	"github.com/lixenwraith/framecore/pool"
	"github.com/lixenwraith/framecore/scene"
	"github.com/lixenwraith/framecore/systems"
	"github.com/lixenwraith/framecore/tile"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		ticks      = flag.Int("ticks", 600, "ticks to simulate")
		seed       = flag.Int64("seed", 42, "terrain and variant seed")
	)
	flag.Parse()

	if err := run(*configPath, *ticks, *seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bodyInfo is the demo-side record of one physics body
type bodyInfo struct {
	owner core.Entity
	size  core.Vec2
}

func run(configPath string, ticks int, seed int64) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	registry := physics.NewCategoryRegistry()
	names := cfg.Categories
	if len(names) == 0 {
		names = []string{"unit", "hazard", "wall"}
	}
	cats := make(map[string]physics.Category, len(names))
	for _, n := range names {
		c, err := registry.Register(n)
		if err != nil {
			return err
		}
		cats[n] = c
	}
	unitCat, hazardCat := cats["unit"], cats["hazard"]

	mapper, err := buildTerrain(cfg.Tile, seed)
	if err != nil {
		return err
	}

	world := engine.NewWorld()
	surface := scene.NewRecorder()
	stub := physics.NewStubEngine()
	filter := physics.NewFilter[*engine.World](log)
	world.BindBoundary(surface, stub)

	visuals, err := pool.New(pool.Config[scene.VisualHandle]{
		New:             scene.NewVisualHandle,
		InitialCapacity: 32,
	})
	if err != nil {
		return err
	}

	bodies := make(map[physics.BodyHandle]bodyInfo)
	stub.StepFn = overlapDetector(world, filter, bodies)

	// Unit touching a hazard takes damage; the health system stages the
	// destruction when hit points run out
	filter.Register(unitCat, hazardCat, physics.ContactHandlerFunc[*engine.World](
		func(w *engine.World, ev physics.ContactEvent) {
			if ev.Phase != physics.ContactBegin {
				return
			}
			target := ev.A
			if ev.DefB.Category.Has(unitCat) {
				target = ev.B
			}
			info, ok := bodies[target]
			if !ok {
				return
			}
			if hp, ok := w.Stores.Healths.Get(info.owner); ok {
				hp.Current -= 10
				w.Stores.Healths.Set(info.owner, hp)
			}
		}))

	reg := prometheus.NewRegistry()
	sched := engine.NewFrameScheduler(world, engine.SchedulerConfig{
		Physics: stub,
		Filter:  filter,
		Metrics: metrics.NewFrameMetrics(reg),
		Logger:  log,
	})
	sched.Register(engine.PhaseLogic, systems.NewChaseSystem(world))
	sched.Register(engine.PhaseLogic, systems.NewMovementSystem(world))
	sched.Register(engine.PhaseLogic, systems.NewHealthSystem(world))
	sched.Register(engine.PhaseLogic, systems.NewCullSystem(world))
	sched.Register(engine.PhaseActions, systems.NewActionSystem(world))
	sched.Register(engine.PhaseConstraints, systems.NewCameraClampSystem(world))

	worldW := float64(cfg.Tile.Columns) * cfg.Tile.TileSize
	worldH := float64(cfg.Tile.Rows) * cfg.Tile.TileSize

	spawn := func(pos core.Vec2, size core.Vec2, def physics.BodyDef) core.Entity {
		e := world.Create()
		vh, err := visuals.Acquire()
		if err != nil {
			// Uncapped pool in this demo, so only a programming error
			panic(err)
		}
		bh := physics.NewBodyHandle()
		world.Attach(e, component.MovementComponent{Pos: pos})
		world.Attach(e, component.VisualComponent{Handle: vh, Size: size})
		world.Attach(e, component.PhysicsLinkComponent{Body: bh, Owner: e})
		world.Attach(e, component.HealthComponent{Current: 100, Max: 100})
		filter.Track(bh, def)
		bodies[bh] = bodyInfo{owner: e, size: size}
		return e
	}

	unitDef := physics.BodyDef{
		Category:  physics.MaskOf(unitCat),
		Collision: physics.MaskAll,
		Contact:   physics.MaskAll,
		Shape:     physics.ShapeCircle,
		Dynamic:   true,
	}
	hazardDef := physics.BodyDef{
		Category:  physics.MaskOf(hazardCat),
		Collision: physics.MaskAll,
		Contact:   physics.MaskAll,
		Shape:     physics.ShapeRectangle,
	}

	player := spawn(core.Vec2{X: worldW / 2, Y: worldH / 2}, core.Vec2{X: 12, Y: 12}, unitDef)

	// Hazards patrol a square via a timed step loop
	for i := 0; i < 4; i++ {
		pos := core.Vec2{
			X: worldW * float64(i+1) / 5,
			Y: worldH * float64(4-i) / 5,
		}
		h := spawn(pos, core.Vec2{X: 10, Y: 10}, hazardDef)
		world.Attach(h, component.ActionComponent{Steps: patrolSteps(20)})
	}

	// A chaser hunts the player across the map
	c := spawn(core.Vec2{X: 8, Y: 8}, core.Vec2{X: 8, Y: 8}, unitDef)
	world.Attach(c, component.ChaseComponent{Target: player, Speed: 30})

	cam := world.Resources.Camera
	cam.View = core.Rect{W: worldW / 2, H: worldH / 2}
	cam.Bounds = core.Rect{W: worldW, H: worldH}
	cam.Follow = player
	cam.Padding = cfg.Culling.Padding

	// A background worker hands late spawns back to the tick thread
	// through the completion queue
	completions := sched.Completions()
	core.Go(func() {
		completions.Push(func(w *engine.World) {
			straggler := spawn(core.Vec2{X: worldW - 8, Y: worldH - 8}, core.Vec2{X: 8, Y: 8}, unitDef)
			w.Attach(straggler, component.ChaseComponent{Target: player, Speed: 45})
		})
	})

	interval := cfg.TickInterval.Seconds()
	for i := 0; i < ticks; i++ {
		sched.Tick(float64(i) * interval)
	}

	log.Info("simulation finished",
		zap.Int64("frames", sched.Frame()),
		zap.Int("entities", world.LiveCount()),
		zap.Int("tiles", mapper.FilledCount()),
		zap.Int("scene_nodes", surface.LiveCount()),
		zap.Int("pool_high_water", visuals.HighWater()))

	return dumpMetrics(reg)
}

// buildTerrain fills the grid from perlin noise: solid cells become
// rule-resolved walls, the rest stays open
func buildTerrain(tc config.TileConfig, seed int64) (*tile.Mapper, error) {
	mapper, err := tile.NewMapper(tile.Config{
		Columns:     tc.Columns,
		Rows:        tc.Rows,
		TileSize:    tc.TileSize,
		Automapping: tc.Automapping,
		Seed:        uint64(seed),
	})
	if err != nil {
		return nil, err
	}

	walls, err := tile.NewRuleGroup([]tile.Rule{
		{
			Pattern: tile.PatternSurrounded,
			Care:    tile.PatternSurrounded,
			Candidates: []tile.Candidate{
				{Def: tile.Definition{Name: "wall_core"}, Weight: 1},
			},
		},
		{
			Pattern: 0,
			Care:    tile.NeighborN,
			Candidates: []tile.Candidate{
				{Def: tile.Definition{Name: "wall_top"}, Weight: 3},
				{Def: tile.Definition{Name: "wall_top_cracked"}, Weight: 1},
			},
		},
		{
			Candidates: []tile.Candidate{
				{Def: tile.Definition{Name: "wall"}, Weight: 1},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	noise := perlin.NewPerlin(2, 2, 3, seed)
	for row := 0; row < tc.Rows; row++ {
		for col := 0; col < tc.Columns; col++ {
			v := noise.Noise2D(float64(col)/10, float64(row)/10)
			if v > 0.25 {
				if err := mapper.SetTile(col, row, walls); err != nil {
					return nil, err
				}
			}
		}
	}
	return mapper, nil
}

// patrolSteps builds a repeated square walk
func patrolSteps(speed float64) []component.ActionStep {
	leg := func(vx, vy float64) component.ActionStep {
		return component.ActionStep{
			Duration: 2,
			Kind:     component.StepSetVelocity,
			Vel:      core.Vec2{X: vx * speed, Y: vy * speed},
		}
	}
	var steps []component.ActionStep
	for i := 0; i < 8; i++ {
		steps = append(steps, leg(1, 0), leg(0, 1), leg(-1, 0), leg(0, -1))
	}
	return append(steps, component.ActionStep{Kind: component.StepSetVelocity})
}

// overlapDetector gives the stub engine AABB contact semantics: each
// step diffs the overlapping pair set against the previous step and
// feeds begin/end transitions to the filter
func overlapDetector(world *engine.World, filter *physics.Filter[*engine.World], bodies map[physics.BodyHandle]bodyInfo) func(dt float64) {
	type liveBody struct {
		h physics.BodyHandle
		r core.Rect
	}
	prev := make(map[string][2]physics.BodyHandle)

	pairKey := func(a, b physics.BodyHandle) string {
		as, bs := a.String(), b.String()
		if bs < as {
			as, bs = bs, as
		}
		return as + bs
	}

	return func(dt float64) {
		var list []liveBody
		for h, info := range bodies {
			if !world.Alive(info.owner) {
				delete(bodies, h)
				filter.Untrack(h)
				continue
			}
			m, ok := world.Stores.Movements.Get(info.owner)
			if !ok {
				continue
			}
			list = append(list, liveBody{h: h, r: core.RectAround(m.Pos, info.size)})
		}

		current := make(map[string][2]physics.BodyHandle)
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				if !list[i].r.Intersects(list[j].r) {
					continue
				}
				k := pairKey(list[i].h, list[j].h)
				current[k] = [2]physics.BodyHandle{list[i].h, list[j].h}
				if _, was := prev[k]; !was {
					filter.OnContactBegin(list[i].h, list[j].h)
				}
			}
		}
		for k, pair := range prev {
			if _, still := current[k]; !still {
				filter.OnContactEnd(pair[0], pair[1])
			}
		}
		prev = current
	}
}

// dumpMetrics prints the gathered Prometheus families to stdout
func dumpMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s %v\n", mf.GetName(), m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Printf("%s %v\n", mf.GetName(), m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Printf("%s count=%d sum=%.4fs\n", mf.GetName(), h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
