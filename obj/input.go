package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Ian-PB/small-world/command"
	"github.com/Ian-PB/small-world/prefabs"
)

const (
	defaultStickDeadzone    = 0.2
	defaultTriggerThreshold = 0.1
	defaultMoveThreshold    = 0.5
)

// Input polls the keyboard and the first connected gamepad and reduces them
// to one dominant command per tick. The gamepad wins when it says anything.
type Input struct {
	deadzone      float64
	triggerFloor  float64
	moveThreshold float64

	prevAttack bool

	// Defending is level-triggered: the shield drops the tick the button
	// does, which the producer reports as one None command.
	Defending bool
}

// NewInput builds a producer with the spec's thresholds, falling back to
// defaults for anything left zero.
func NewInput(spec prefabs.InputSpec) *Input {
	i := &Input{
		deadzone:      spec.StickDeadzone,
		triggerFloor:  spec.TriggerThreshold,
		moveThreshold: spec.MoveThreshold,
	}
	if i.deadzone <= 0 {
		i.deadzone = defaultStickDeadzone
	}
	if i.triggerFloor <= 0 {
		i.triggerFloor = defaultTriggerThreshold
	}
	if i.moveThreshold <= 0 {
		i.moveThreshold = defaultMoveThreshold
	}
	return i
}

// Poll returns this tick's command.
func (i *Input) Poll() command.Command {
	if cmd, ok := i.pollGamepad(); ok {
		return cmd
	}
	return i.pollKeyboard()
}

func (i *Input) pollGamepad() (command.Command, bool) {
	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return command.None, false
	}
	gid := ids[0]

	// triggers first so an attack mid-walk is not swallowed by the stick;
	// analog triggers report a pressure value, so compare against a floor
	// instead of the digital pressed state
	attackHeld := ebiten.StandardGamepadButtonValue(gid, ebiten.StandardGamepadButtonFrontBottomRight) > i.triggerFloor ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
	defendHeld := ebiten.StandardGamepadButtonValue(gid, ebiten.StandardGamepadButtonFrontBottomLeft) > i.triggerFloor

	if attackHeld && !i.prevAttack {
		i.prevAttack = true
		return command.Attack, true
	}
	i.prevAttack = attackHeld

	if defendHeld {
		i.Defending = true
		return command.Defend, true
	}
	if i.Defending {
		i.Defending = false
		return command.None, true
	}

	x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	if x > -i.deadzone && x < i.deadzone {
		x = 0
	}
	if y > -i.deadzone && y < i.deadzone {
		y = 0
	}

	left := x < -i.moveThreshold ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft)
	right := x > i.moveThreshold ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight)
	up := y < -i.moveThreshold ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftTop)
	down := y > i.moveThreshold ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftBottom)

	if cmd, ok := eightWay(up, down, left, right); ok {
		return cmd, true
	}
	if x != 0 || y != 0 {
		// stick moved but below the walk threshold; still claim the tick
		return command.None, true
	}
	return command.None, false
}

func (i *Input) pollKeyboard() command.Command {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return command.Attack
	}

	// manual contact injection for exercising the death and recovery paths
	// without lining the actors up
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		return command.CollisionStart
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		return command.CollisionEnd
	}

	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) {
		i.Defending = true
		return command.Defend
	}
	if i.Defending {
		i.Defending = false
		return command.None
	}

	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown)
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)

	if cmd, ok := eightWay(up, down, left, right); ok {
		return cmd
	}
	return command.None
}

// eightWay folds four direction flags into one of the eight move commands.
// Opposite directions cancel.
func eightWay(up, down, left, right bool) (command.Command, bool) {
	if up && down {
		up, down = false, false
	}
	if left && right {
		left, right = false, false
	}

	switch {
	case up && left:
		return command.MoveUpLeft, true
	case up && right:
		return command.MoveUpRight, true
	case down && left:
		return command.MoveDownLeft, true
	case down && right:
		return command.MoveDownRight, true
	case up:
		return command.MoveUp, true
	case down:
		return command.MoveDown, true
	case left:
		return command.MoveLeft, true
	case right:
		return command.MoveRight, true
	}
	return command.None, false
}
