package fsm

// State identifies one state in an entity's transition table. Each entity
// type wires a subset of these; the rest stay as inert zero descriptors.
type State int

const (
	StateIdle State = iota
	StateWalking
	StateAttacking
	StateShield
	StateDead
	StateRespawn
	StateCollision
	// StateCount sizes descriptor tables. Not a real state.
	StateCount
)

var stateNames = [StateCount]string{
	StateIdle:      "idle",
	StateWalking:   "walking",
	StateAttacking: "attacking",
	StateShield:    "shield",
	StateDead:      "dead",
	StateRespawn:   "respawn",
	StateCollision: "collision",
}

func (s State) String() string {
	if s < 0 || s >= StateCount {
		return "unknown"
	}
	return stateNames[s]
}

// Valid reports whether s can index a descriptor table.
func (s State) Valid() bool {
	return s >= 0 && s < StateCount
}

// ParseState resolves a state's wire name, as used in spec files.
func ParseState(name string) (State, bool) {
	for s := State(0); s < StateCount; s++ {
		if stateNames[s] == name {
			return s, true
		}
	}
	return StateCount, false
}

// Event is a domain-level trigger consumed by a state's event handler.
// Events are produced by the Mediator from Commands and consumed once.
type Event int

const (
	EventNone Event = iota
	EventMove
	EventAttack
	EventDefend
	EventDie
	EventRespawn
	EventCollisionStart
	EventCollisionEnd
	// EventCount is the number of event kinds. Not a real event.
	EventCount
)

var eventNames = [EventCount]string{
	EventNone:           "none",
	EventMove:           "move",
	EventAttack:         "attack",
	EventDefend:         "defend",
	EventDie:            "die",
	EventRespawn:        "respawn",
	EventCollisionStart: "collision_start",
	EventCollisionEnd:   "collision_end",
}

func (e Event) String() string {
	if e < 0 || e >= EventCount {
		return "unknown"
	}
	return eventNames[e]
}
