package system

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
)

// TriggerSystem diffs each character's overlapping sensors against the last
// step and reports exits, then enters and stays, through the controller.
type TriggerSystem struct{}

func NewTriggerSystem() *TriggerSystem {
	return &TriggerSystem{}
}

func (s *TriggerSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	ecs.ForEach2(w, component.CharacterControllerComponent.Kind(), component.TriggerContactsComponent.Kind(), func(e ecs.Entity, cc *component.CharacterController, contacts *component.TriggerContacts) {
		if cc.Controller == nil {
			return
		}
		bounds := ecs.NewEntityBody(w, e).Bounds()
		current := pw.OverlappingTriggers(bounds, cc.Layer)

		next := make(map[*cp.Shape]struct{}, len(current))
		for _, shape := range current {
			next[shape] = struct{}{}
		}

		var exited []*cp.Shape
		for shape := range contacts.Shapes {
			if _, ok := next[shape]; !ok {
				exited = append(exited, shape)
			}
		}
		sort.Slice(exited, func(i, j int) bool { return exited[i].HashId() < exited[j].HashId() })
		for _, shape := range exited {
			cc.Controller.TriggerExit(shape)
		}

		for _, shape := range current {
			if _, ok := contacts.Shapes[shape]; ok {
				cc.Controller.TriggerStay(shape)
			} else {
				cc.Controller.TriggerEnter(shape)
			}
		}
		contacts.Shapes = next
	})
}
