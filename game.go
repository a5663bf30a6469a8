package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/overhead/common"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/entity"
	"github.com/milk9111/overhead/ecs/system"
	"github.com/milk9111/overhead/levels"
	"github.com/milk9111/overhead/prefabs"
)

// GameConfig is what main collects from flags.
type GameConfig struct {
	Level  string
	Prefab string
	Debug  bool
	Watch  bool
}

type Game struct {
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	clock     *common.StepClock
	events    *system.EventLogSystem
	render    *system.RenderSystem
	rays      *system.DebugRaySystem

	player  ecs.Entity
	prefab  string
	watcher *prefabs.Watcher

	width  int
	height int
}

func NewGame(cfg GameConfig) (*Game, error) {
	lvl, err := levels.Load(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", cfg.Level, err)
	}
	pw, err := ecs.NewPhysicsWorld(lvl)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(pw)
	clock := common.NewStepClock(1.0 / float64(ebiten.DefaultTPS))

	player, err := entity.NewPlayer(w, cfg.Prefab, clock, cfg.Debug)
	if err != nil {
		return nil, err
	}

	events := system.NewEventLogSystem(cfg.Debug)
	render := system.NewRenderSystem(events)
	render.Debug = cfg.Debug
	rays := system.NewDebugRaySystem(cfg.Debug)

	g := &Game{
		world: w,
		scheduler: ecs.NewScheduler(
			rays,
			system.NewInputSystem(nil),
			system.NewCharacterMoveSystem(clock),
			system.NewTriggerSystem(),
			system.NewAnimationSystem(),
			events,
		),
		clock:  clock,
		events: events,
		render: render,
		rays:   rays,
		player: player,
		prefab: filepath.Base(cfg.Prefab),
		width:  int(lvl.WorldWidth()),
		height: int(lvl.WorldHeight()),
	}

	if cfg.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("Game: prefab hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.clock.Set(1.0 / float64(ebiten.TPS()))

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.Debug = !g.render.Debug
		g.rays.Enabled = g.render.Debug
	}
	g.reloadPrefabs()

	g.scheduler.Update(g.world)
	return nil
}

// reloadPrefabs applies on-disk edits of the player prefab. A spec that fails
// to load or validate is logged and the player keeps its current settings.
func (g *Game) reloadPrefabs() {
	for name, ok := g.watcher.Poll(); ok; name, ok = g.watcher.Poll() {
		if name != g.prefab {
			continue
		}
		spec, err := prefabs.LoadCharacterSpec(name)
		if err != nil {
			log.Printf("Game: reload %s: %v", name, err)
			continue
		}
		if err := entity.ApplyCharacterSpec(g.world, g.player, spec); err != nil {
			log.Printf("Game: apply %s: %v", name, err)
			continue
		}
		log.Printf("Game: reloaded %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) Close() error {
	return g.watcher.Close()
}
