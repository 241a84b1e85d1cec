// Package command defines the input vocabulary shared by the keyboard,
// gamepad, and AI producers, and the mediator that translates commands into
// state machine events.
package command

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Command is a single frame's worth of intent from an input producer.
type Command int

const (
	None Command = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	MoveUpLeft
	MoveUpRight
	MoveDownLeft
	MoveDownRight
	Attack
	Defend
	CollisionStart
	CollisionEnd
	Count
)

var names = [Count]string{
	"none",
	"move_up",
	"move_down",
	"move_left",
	"move_right",
	"move_up_left",
	"move_up_right",
	"move_down_left",
	"move_down_right",
	"attack",
	"defend",
	"collision_start",
	"collision_end",
}

func (c Command) String() string {
	if c < 0 || c >= Count {
		return "unknown"
	}
	return names[c]
}

// diag is the per-axis component of a unit diagonal.
var diag = math.Sqrt2 / 2

// Direction returns the unit movement vector for a move command and whether
// c is a move at all. Screen coordinates: +y is down.
func Direction(c Command) (cp.Vector, bool) {
	switch c {
	case MoveUp:
		return cp.Vector{X: 0, Y: -1}, true
	case MoveDown:
		return cp.Vector{X: 0, Y: 1}, true
	case MoveLeft:
		return cp.Vector{X: -1, Y: 0}, true
	case MoveRight:
		return cp.Vector{X: 1, Y: 0}, true
	case MoveUpLeft:
		return cp.Vector{X: -diag, Y: -diag}, true
	case MoveUpRight:
		return cp.Vector{X: diag, Y: -diag}, true
	case MoveDownLeft:
		return cp.Vector{X: -diag, Y: diag}, true
	case MoveDownRight:
		return cp.Vector{X: diag, Y: diag}, true
	}
	return cp.Vector{}, false
}
