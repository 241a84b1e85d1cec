package command

import (
	"log"

	"github.com/Ian-PB/small-world/fsm"
)

// Entity is anything whose state machine can receive events.
type Entity interface {
	HandleEvent(ev fsm.Event)
}

// events maps every command to the event its entity receives. All eight move
// commands collapse to EventMove; which way to move travels out of band,
// through Direction.
var events = [Count]fsm.Event{
	None:           fsm.EventNone,
	MoveUp:         fsm.EventMove,
	MoveDown:       fsm.EventMove,
	MoveLeft:       fsm.EventMove,
	MoveRight:      fsm.EventMove,
	MoveUpLeft:     fsm.EventMove,
	MoveUpRight:    fsm.EventMove,
	MoveDownLeft:   fsm.EventMove,
	MoveDownRight:  fsm.EventMove,
	Attack:         fsm.EventAttack,
	Defend:         fsm.EventDefend,
	CollisionStart: fsm.EventDie,
	CollisionEnd:   fsm.EventRespawn,
}

// Event returns the state machine event a command translates to.
func Event(c Command) fsm.Event {
	if c < 0 || c >= Count {
		return fsm.EventNone
	}
	return events[c]
}

// Mediator decouples input producers from the entity they drive. It holds a
// non-owning reference to at most one entity.
type Mediator struct {
	entity Entity
}

func NewMediator(e Entity) *Mediator {
	return &Mediator{entity: e}
}

// Bind replaces the driven entity. A nil entity unbinds.
func (m *Mediator) Bind(e Entity) {
	m.entity = e
}

// Execute translates c and forwards the event to the bound entity. With no
// entity bound it reports and does nothing.
func (m *Mediator) Execute(c Command) {
	if m.entity == nil {
		log.Printf("command: no entity bound, dropping %s", c)
		return
	}
	m.entity.HandleEvent(Event(c))
}
