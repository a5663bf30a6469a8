package controller

import "fmt"

// CollisionState records which sides were blocked during the last Move.
type CollisionState struct {
	Right bool
	Left  bool
	Above bool
	Below bool
}

func (s CollisionState) HasCollision() bool {
	return s.Below || s.Right || s.Left || s.Above
}

func (s *CollisionState) Reset() {
	*s = CollisionState{}
}

func (s CollisionState) String() string {
	return fmt.Sprintf("[CollisionState] r: %t, l: %t, a: %t, b: %t", s.Right, s.Left, s.Above, s.Below)
}
