package system

import (
	"fmt"
	"log"

	"github.com/milk9111/overhead/ecs"
)

const maxRecentEvents = 6

// EventLogSystem drains the world's events, logs them, and keeps the most
// recent lines for the HUD.
type EventLogSystem struct {
	Verbose bool
	recent  []string
}

func NewEventLogSystem(verbose bool) *EventLogSystem {
	return &EventLogSystem{Verbose: verbose}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		var line string
		switch data := evt.Data.(type) {
		case ecs.CollisionEvent:
			line = fmt.Sprintf("collision %s", data)
			if !s.Verbose {
				s.remember(line)
				continue
			}
		case ecs.TriggerEvent:
			line = fmt.Sprintf("trigger %s", data)
		default:
			line = fmt.Sprintf("%s %v", evt.Type, evt.Data)
		}
		log.Printf("Events: %s", line)
		s.remember(line)
	}
}

func (s *EventLogSystem) remember(line string) {
	s.recent = append(s.recent, line)
	if n := len(s.recent); n > maxRecentEvents {
		s.recent = append(s.recent[:0], s.recent[n-maxRecentEvents:]...)
	}
}

// Recent returns the last few event lines, oldest first.
func (s *EventLogSystem) Recent() []string {
	return append([]string(nil), s.recent...)
}
