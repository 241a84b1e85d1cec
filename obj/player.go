package obj

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/Ian-PB/small-world/fsm"
	"github.com/Ian-PB/small-world/prefabs"
)

const (
	attackStaminaCost = 10
	shieldManaDrain   = 1
)

// Player is the keyboard/gamepad driven actor. Its machine wires the full
// state set; StateCollision is configured but given no transitions, so the
// contact reaction always routes through dead and respawn instead.
type Player struct {
	Actor
	Stamina int
	Mana    int

	spawn        cp.Vector
	maxStamina   int
	maxMana      int
	attackFrames int
	attackTimer  int
	machine      *fsm.Machine[*Player]
}

func NewPlayer(spec *prefabs.PlayerSpec, sheet *ebiten.Image) *Player {
	p := &Player{
		Actor:        newActor(&spec.ActorSpec, sheet),
		Stamina:      spec.MaxStamina,
		Mana:         spec.MaxMana,
		spawn:        cp.Vector{X: spec.Spawn.X, Y: spec.Spawn.Y},
		maxStamina:   spec.MaxStamina,
		maxMana:      spec.MaxMana,
		attackFrames: spec.AttackFrames,
	}
	if p.attackFrames <= 0 {
		p.attackFrames = 30
	}
	p.machine = fsm.NewMachine(p, spec.Name, fsm.StateIdle)
	p.wire()
	p.SetClip(fsm.StateIdle)
	return p
}

func (p *Player) wire() {
	m := p.machine

	idle := m.Configure(fsm.StateIdle, fsm.StateConfig[*Player]{
		Name: "player_idle",
		OnEvent: func(p *Player, ev fsm.Event) {
			switch ev {
			case fsm.EventMove:
				m.ChangeState(fsm.StateWalking)
			case fsm.EventAttack:
				if p.Stamina >= attackStaminaCost {
					m.ChangeState(fsm.StateAttacking)
				}
			case fsm.EventDefend:
				if p.Mana > 0 {
					m.ChangeState(fsm.StateShield)
				}
			case fsm.EventDie:
				m.ChangeState(fsm.StateDead)
			case fsm.EventNone:
				m.SyncPrevious()
			}
		},
		Entry: func(p *Player) {
			if m.Previous() == m.Current() {
				return
			}
			p.SetClip(fsm.StateIdle)
			// desync idle loops so side-by-side actors don't breathe in
			// lockstep
			if c := p.Clip(); c != nil && c.FrameCount > 1 {
				for i := rand.Intn(c.FrameCount); i > 0; i-- {
					c.Update()
				}
			}
		},
	})
	idle.Allow(fsm.StateWalking, fsm.StateAttacking, fsm.StateShield, fsm.StateDead)

	walking := m.Configure(fsm.StateWalking, fsm.StateConfig[*Player]{
		Name: "player_walking",
		OnEvent: func(p *Player, ev fsm.Event) {
			switch ev {
			case fsm.EventAttack:
				if p.Stamina >= attackStaminaCost {
					m.ChangeState(fsm.StateAttacking)
				}
			case fsm.EventDie:
				m.ChangeState(fsm.StateDead)
			case fsm.EventMove:
				m.SyncPrevious()
			case fsm.EventNone:
				m.ChangeState(fsm.StateIdle)
			}
		},
		Entry: func(p *Player) {
			if m.Previous() == m.Current() {
				return
			}
			p.SetClip(fsm.StateWalking)
		},
		Update: func(p *Player) {
			p.Velocity = p.Heading.Mult(p.MoveSpeed)
			p.Position = p.Position.Add(p.Velocity)
		},
		Exit: func(p *Player) {
			p.Velocity = cp.Vector{}
		},
	})
	walking.Allow(fsm.StateIdle, fsm.StateAttacking, fsm.StateDead)

	attacking := m.Configure(fsm.StateAttacking, fsm.StateConfig[*Player]{
		Name: "player_attacking",
		OnEvent: func(p *Player, ev fsm.Event) {
			if ev == fsm.EventDie {
				m.ChangeState(fsm.StateDead)
			}
		},
		Entry: func(p *Player) {
			p.Stamina -= attackStaminaCost
			if p.Stamina < 0 {
				p.Stamina = 0
			}
			p.attackTimer = p.attackFrames
			p.SetClip(fsm.StateAttacking)
		},
		Update: func(p *Player) {
			p.attackTimer--
			if p.attackTimer <= 0 {
				m.ChangeState(fsm.StateIdle)
			}
		},
	})
	attacking.Allow(fsm.StateIdle, fsm.StateDead)

	shield := m.Configure(fsm.StateShield, fsm.StateConfig[*Player]{
		Name: "player_shield",
		OnEvent: func(p *Player, ev fsm.Event) {
			switch ev {
			case fsm.EventNone:
				m.ChangeState(fsm.StateIdle)
			case fsm.EventDie:
				m.ChangeState(fsm.StateDead)
			case fsm.EventDefend:
				m.SyncPrevious()
			}
		},
		Entry: func(p *Player) {
			if m.Previous() == m.Current() {
				return
			}
			p.SetClip(fsm.StateShield)
		},
		Update: func(p *Player) {
			// holding the shield burns mana; an empty pool drops the guard
			p.Mana -= shieldManaDrain
			if p.Mana <= 0 {
				p.Mana = 0
				m.ChangeState(fsm.StateIdle)
			}
		},
	})
	shield.Allow(fsm.StateIdle, fsm.StateDead)

	dead := m.Configure(fsm.StateDead, fsm.StateConfig[*Player]{
		Name: "player_dead",
		Entry: func(p *Player) {
			p.Health = 0
			p.Velocity = cp.Vector{}
			p.SetClip(fsm.StateDead)
		},
		Update: func(p *Player) {
			if p.Clip().Finished() {
				m.ChangeState(fsm.StateRespawn)
			}
		},
	})
	dead.Allow(fsm.StateRespawn)

	respawn := m.Configure(fsm.StateRespawn, fsm.StateConfig[*Player]{
		Name: "player_respawn",
		Entry: func(p *Player) {
			p.Position = p.spawn
			p.Health = p.MaxHealth
			p.Stamina = p.maxStamina
			p.Mana = p.maxMana
			p.SetClip(fsm.StateRespawn)
		},
		Update: func(p *Player) {
			if p.Clip().Finished() {
				m.ChangeState(fsm.StateIdle)
			}
		},
	})
	respawn.Allow(fsm.StateIdle)

	// wired so the state shows up in the debug overlay, but with no
	// transitions in or out it can never activate
	m.Configure(fsm.StateCollision, fsm.StateConfig[*Player]{Name: "player_collision"})
}

// HandleEvent feeds one event to the player's machine.
func (p *Player) HandleEvent(ev fsm.Event) { p.machine.HandleEvent(ev) }

// SetHeading points the player for the next walking tick. Zero vectors are
// ignored so the last heading survives quiet frames.
func (p *Player) SetHeading(dir cp.Vector) {
	if dir.LengthSq() == 0 {
		return
	}
	p.Heading = dir
}

// Update runs one tick: the current state's Update hook, then the shared
// body bookkeeping.
func (p *Player) Update() {
	p.machine.UpdateState()
	p.Tick()
}

// State returns the machine's current state.
func (p *Player) State() fsm.State { return p.machine.Current() }

// CanEnter reports whether the player's machine may transition to target.
// The game layer uses it to gate contact events.
func (p *Player) CanEnter(target fsm.State) bool { return p.machine.CanEnter(target) }

// Machine exposes the player's machine for the debug overlay.
func (p *Player) Machine() *fsm.Machine[*Player] { return p.machine }
