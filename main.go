package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes, cast rays, and the controller HUD")
	levelName := flag.String("level", "courtyard", "level name in levels/ (basename, .json optional)")
	prefab := flag.String("prefab", "player.yaml", "character prefab in prefabs/")
	watch := flag.Bool("watch", false, "reload the prefab when it changes on disk")
	flag.Parse()

	game, err := NewGame(GameConfig{
		Level:  *levelName,
		Prefab: *prefab,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.width*2, game.height*2)
	ebiten.SetWindowTitle("overhead")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
