package component

import "github.com/jakecoffman/cp"

// TriggerContacts is the set of sensors the entity overlapped last step.
type TriggerContacts struct {
	Shapes map[*cp.Shape]struct{}
}

var TriggerContactsComponent = NewComponent[TriggerContacts]()
