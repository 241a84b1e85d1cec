package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/Ian-PB/small-world/fsm"
	"github.com/Ian-PB/small-world/prefabs"
)

// NPC is the AI driven actor. It wires a smaller state set than the player:
// no shield, and death recovers in place at the recovery point instead of
// passing through a respawn state.
type NPC struct {
	Actor
	Aggression  float64
	FollowRange float64

	recovery     cp.Vector
	attackFrames int
	attackTimer  int
	machine      *fsm.Machine[*NPC]
}

func NewNPC(spec *prefabs.NPCSpec, sheet *ebiten.Image) *NPC {
	n := &NPC{
		Actor:        newActor(&spec.ActorSpec, sheet),
		Aggression:   spec.Aggression,
		FollowRange:  spec.FollowRange,
		recovery:     cp.Vector{X: spec.Recovery.X, Y: spec.Recovery.Y},
		attackFrames: 30,
	}
	n.machine = fsm.NewMachine(n, spec.Name, fsm.StateIdle)
	n.wire()
	n.SetClip(fsm.StateIdle)
	return n
}

func (n *NPC) wire() {
	m := n.machine

	idle := m.Configure(fsm.StateIdle, fsm.StateConfig[*NPC]{
		Name: "npc_idle",
		OnEvent: func(n *NPC, ev fsm.Event) {
			switch ev {
			case fsm.EventMove:
				m.ChangeState(fsm.StateWalking)
			case fsm.EventAttack:
				m.ChangeState(fsm.StateAttacking)
			case fsm.EventDie:
				m.ChangeState(fsm.StateDead)
			case fsm.EventNone:
				m.SyncPrevious()
			}
		},
		Entry: func(n *NPC) {
			if m.Previous() == m.Current() {
				return
			}
			n.SetClip(fsm.StateIdle)
		},
	})
	idle.Allow(fsm.StateWalking, fsm.StateAttacking, fsm.StateDead)

	walking := m.Configure(fsm.StateWalking, fsm.StateConfig[*NPC]{
		Name: "npc_walking",
		OnEvent: func(n *NPC, ev fsm.Event) {
			switch ev {
			case fsm.EventAttack:
				m.ChangeState(fsm.StateAttacking)
			case fsm.EventDie:
				m.ChangeState(fsm.StateDead)
			case fsm.EventMove:
				m.SyncPrevious()
			case fsm.EventNone:
				m.ChangeState(fsm.StateIdle)
			}
		},
		Entry: func(n *NPC) {
			if m.Previous() == m.Current() {
				return
			}
			n.SetClip(fsm.StateWalking)
		},
		Update: func(n *NPC) {
			n.Velocity = n.Heading.Mult(n.MoveSpeed)
			n.Position = n.Position.Add(n.Velocity)
		},
		Exit: func(n *NPC) {
			n.Velocity = cp.Vector{}
		},
	})
	walking.Allow(fsm.StateIdle, fsm.StateAttacking, fsm.StateDead)

	attacking := m.Configure(fsm.StateAttacking, fsm.StateConfig[*NPC]{
		Name: "npc_attacking",
		OnEvent: func(n *NPC, ev fsm.Event) {
			if ev == fsm.EventDie {
				m.ChangeState(fsm.StateDead)
			}
		},
		Entry: func(n *NPC) {
			n.attackTimer = n.attackFrames
			n.SetClip(fsm.StateAttacking)
		},
		Update: func(n *NPC) {
			n.attackTimer--
			if n.attackTimer <= 0 {
				m.ChangeState(fsm.StateIdle)
			}
		},
	})
	attacking.Allow(fsm.StateIdle, fsm.StateDead)

	dead := m.Configure(fsm.StateDead, fsm.StateConfig[*NPC]{
		Name: "npc_dead",
		Entry: func(n *NPC) {
			n.Health = 0
			n.Velocity = cp.Vector{}
			n.SetClip(fsm.StateDead)
		},
		Update: func(n *NPC) {
			if n.Clip().Finished() {
				n.Recover()
				m.ChangeState(fsm.StateIdle)
			}
		},
	})
	dead.Allow(fsm.StateIdle)
}

// Recover teleports the NPC to its recovery point at full health. The AI
// also calls this directly when it polls a downed body.
func (n *NPC) Recover() {
	n.Position = n.recovery
	n.Health = n.MaxHealth
}

// HandleEvent feeds one event to the NPC's machine.
func (n *NPC) HandleEvent(ev fsm.Event) { n.machine.HandleEvent(ev) }

// SetHeading points the NPC for the next walking tick.
func (n *NPC) SetHeading(dir cp.Vector) {
	if dir.LengthSq() == 0 {
		return
	}
	n.Heading = dir
}

// Update runs one tick of the machine plus the shared body bookkeeping.
func (n *NPC) Update() {
	n.machine.UpdateState()
	n.Tick()
}

// State returns the machine's current state.
func (n *NPC) State() fsm.State { return n.machine.Current() }

// CanEnter reports whether the NPC's machine may transition to target.
func (n *NPC) CanEnter(target fsm.State) bool { return n.machine.CanEnter(target) }

// Machine exposes the NPC's machine for the debug overlay.
func (n *NPC) Machine() *fsm.Machine[*NPC] { return n.machine }
