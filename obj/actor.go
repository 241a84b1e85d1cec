// Package obj holds the game's actors: the player, the NPC, their state
// machine wiring, and the input and AI producers that drive them.
package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/Ian-PB/small-world/anim"
	"github.com/Ian-PB/small-world/fsm"
	"github.com/Ian-PB/small-world/prefabs"
)

const (
	// gap subtracted from the radius sum so actors must visibly overlap
	// before a contact counts
	CollisionBuffer = 2.0
	// distance each actor is pushed apart when a contact resolves
	CollisionPushBack = 2.0
	// health drained from each actor on every tick they stay overlapped
	CollisionDamage = 5

	flashFrames = 12
)

// Actor is the shared body of every entity: position, circle bounds, health,
// and the per-state animation clips. Player and NPC embed it.
type Actor struct {
	Name      string
	Position  cp.Vector
	Velocity  cp.Vector
	Heading   cp.Vector
	Radius    float64
	Health    int
	MaxHealth int
	MoveSpeed float64
	Color     color.Color

	flash  int
	sheet  *ebiten.Image
	clips  map[fsm.State]*anim.Clip
	active *anim.Clip
}

// newActor builds the shared body from a spec. sheet may be nil; actors then
// render as tinted circles.
func newActor(spec *prefabs.ActorSpec, sheet *ebiten.Image) Actor {
	tint := color.Color(colornames.White)
	if spec.Color != nil && spec.Color.Color != nil {
		tint = spec.Color.Color
	}

	a := Actor{
		Name:      spec.Name,
		Position:  cp.Vector{X: spec.Spawn.X, Y: spec.Spawn.Y},
		Heading:   cp.Vector{X: 1, Y: 0},
		Radius:    spec.Radius,
		Health:    spec.Health,
		MaxHealth: spec.Health,
		MoveSpeed: spec.MoveSpeed,
		Color:     tint,
		sheet:     sheet,
		clips:     map[fsm.State]*anim.Clip{},
	}

	for name, cs := range spec.Clips {
		state, ok := fsm.ParseState(name)
		if !ok {
			continue
		}
		a.clips[state] = anim.NewClip(sheet, spec.FrameW, spec.FrameH, cs.Row, cs.FrameCount, cs.FPS, cs.Loop)
	}
	return a
}

// SetClip makes the clip for s the active one and rewinds it. Entry hooks
// skip the call when the machine re-enters its current state, so a quiet
// tick never restarts an animation.
func (a *Actor) SetClip(s fsm.State) {
	c, ok := a.clips[s]
	if !ok {
		a.active = nil
		return
	}
	a.active = c
	c.Reset()
}

// Clip returns the active clip, which may be nil.
func (a *Actor) Clip() *anim.Clip { return a.active }

// Tick advances the active clip and decays the collision flash.
func (a *Actor) Tick() {
	a.active.Update()
	if a.flash > 0 {
		a.flash--
	}
}

// Flash tints the actor for a few frames after a contact.
func (a *Actor) StartFlash() { a.flash = flashFrames }

func (a *Actor) Flashing() bool { return a.flash > 0 }

// Alive reports whether the actor still has health.
func (a *Actor) Alive() bool { return a.Health > 0 }

// Damage subtracts n from health, clamping at zero.
func (a *Actor) Damage(n int) {
	a.Health -= n
	if a.Health < 0 {
		a.Health = 0
	}
}

// Draw renders the active clip centered on Position, or a tinted circle when
// no art is bound. Flashing actors render red.
func (a *Actor) Draw(screen *ebiten.Image) {
	tint := a.Color
	if a.flash > 0 {
		tint = colornames.Red
	}

	if a.active != nil && a.active.Sheet != nil {
		w, h := a.active.Size()
		op := &ebiten.DrawImageOptions{}
		if a.Heading.X < 0 {
			// sheets face right; mirror around the frame center
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(w), 0)
		}
		op.GeoM.Translate(a.Position.X-float64(w)/2, a.Position.Y-float64(h)/2)
		if a.flash > 0 {
			op.ColorScale.Scale(1, 0.4, 0.4, 1)
		}
		a.active.Draw(screen, op)
		return
	}

	vector.DrawFilledCircle(screen, float32(a.Position.X), float32(a.Position.Y), float32(a.Radius), tint, true)
}
