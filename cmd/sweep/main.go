// Command sweep drives a character through a level without a window and
// prints what each move resolved to.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
	"github.com/milk9111/overhead/ecs/entity"
	"github.com/milk9111/overhead/levels"
)

var errBadStep = errors.New("step must be dx,dy")

func main() {
	levelName := flag.String("level", "courtyard", "level name in levels/")
	prefab := flag.String("prefab", "player.yaml", "character prefab in prefabs/")
	dt := flag.Float64("dt", 1.0/60, "step time in seconds")
	moves := flag.String("moves", "64,0;0,-64;-64,0;0,64", "semicolon separated dx,dy moves")
	probes := flag.String("probes", "", "semicolon separated dx,dy probes run after the moves")
	flag.Parse()

	if err := run(*levelName, *prefab, *dt, *moves, *probes); err != nil {
		log.Printf("sweep: %v", err)
		os.Exit(1)
	}
}

func run(levelName, prefab string, dt float64, moves, probes string) error {
	moveSteps, err := parseSteps(moves)
	if err != nil {
		return fmt.Errorf("moves: %w", err)
	}
	probeSteps, err := parseSteps(probes)
	if err != nil {
		return fmt.Errorf("probes: %w", err)
	}

	lvl, err := levels.Load(levelName)
	if err != nil {
		return err
	}
	pw, err := ecs.NewPhysicsWorld(lvl)
	if err != nil {
		return err
	}
	w := ecs.NewWorld()
	w.SetPhysicsWorld(pw)

	player, err := entity.NewPlayer(w, prefab, common.NewStepClock(dt), false)
	if err != nil {
		return err
	}
	cc, _ := ecs.Get(w, player, component.CharacterControllerComponent.Kind())
	ctrl := cc.Controller
	body := ecs.NewEntityBody(w, player)

	fmt.Printf("start %v\n", body.Bounds().Center())
	for _, step := range moveSteps {
		applied := ctrl.Move(step)
		fmt.Printf("move %v -> %v at %v %s velocity %v\n", step, applied, body.Bounds().Center(), ctrl.Collision(), ctrl.Velocity())
	}
	for _, step := range probeSteps {
		hit, ok := ctrl.ProbeHit(step)
		if !ok {
			fmt.Printf("probe %v clear\n", step)
			continue
		}
		layer, _ := pw.LayerOf(hit.Shape)
		fmt.Printf("probe %v hit layer %d at %v\n", step, layer, hit.Point)
	}
	return nil
}

func parseSteps(s string) ([]cp.Vector, error) {
	var out []cp.Vector
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xy := strings.Split(part, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("%q: %w", part, errBadStep)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, err)
		}
		out = append(out, cp.Vector{X: x, Y: y})
	}
	return out, nil
}
