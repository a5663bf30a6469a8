package component

import "github.com/milk9111/overhead/controller"

// CharacterController links an entity to the controller that moves it.
type CharacterController struct {
	Controller *controller.CharacterController2D
	Layer      int
}

var CharacterControllerComponent = NewComponent[CharacterController]()
