package obj

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/Ian-PB/small-world/command"
	"github.com/Ian-PB/small-world/prefabs"
)

// BrainView is the slice of the world a brain script may see.
type BrainView struct {
	SelfX, SelfY     float64
	PlayerX, PlayerY float64
	Health           int
	FollowRange      float64
	Aggression       float64
}

// brainDispatch is appended to every brain script. The script declares
// think; one run evaluates it against the current view.
const brainDispatch = `
__out = think(__engine)
`

// Brain compiles a tengo script once and re-runs it per poll. The script's
// think function receives the view and returns a command name.
type Brain struct {
	name     string
	compiled *tengo.Compiled
}

// NewBrain loads and compiles the named script from the prefabs tree.
func NewBrain(name string) (*Brain, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("obj: load brain %s: %w", name, err)
	}
	return compileBrain(name, src)
}

func compileBrain(name string, src []byte) (*Brain, error) {
	script := tengo.NewScript(append(src, []byte(brainDispatch)...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__out", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("obj: compile brain %s: %w", name, err)
	}
	return &Brain{name: name, compiled: compiled}, nil
}

// Think evaluates the script against view and parses its answer.
func (b *Brain) Think(view BrainView) (command.Command, error) {
	engine := map[string]tengo.Object{
		"self_x":       &tengo.Float{Value: view.SelfX},
		"self_y":       &tengo.Float{Value: view.SelfY},
		"player_x":     &tengo.Float{Value: view.PlayerX},
		"player_y":     &tengo.Float{Value: view.PlayerY},
		"health":       &tengo.Int{Value: int64(view.Health)},
		"follow_range": &tengo.Float{Value: view.FollowRange},
		"aggression":   &tengo.Float{Value: view.Aggression},
	}

	if err := b.compiled.Set("__engine", &tengo.ImmutableMap{Value: engine}); err != nil {
		return command.None, err
	}
	if err := b.compiled.Run(); err != nil {
		return command.None, fmt.Errorf("obj: brain %s: %w", b.name, err)
	}

	out := strings.TrimSpace(b.compiled.Get("__out").String())
	cmd, ok := parseCommand(out)
	if !ok {
		return command.None, fmt.Errorf("obj: brain %s returned unknown command %q", b.name, out)
	}
	return cmd, nil
}

func parseCommand(name string) (command.Command, bool) {
	for c := command.None; c < command.Count; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return command.None, false
}
