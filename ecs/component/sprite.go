package component

import "image/color"

type Sprite struct {
	Color color.Color
	FlipX bool
}

var SpriteComponent = NewComponent[Sprite]()
