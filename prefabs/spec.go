// Package prefabs loads actor definitions from embedded YAML, with a
// disk-first override so specs and scripts can be edited while the game
// runs.
package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClipSpec describes one spritesheet row used for a single actor state.
type ClipSpec struct {
	Row        int  `yaml:"row"`
	FrameCount int  `yaml:"frame_count"`
	FPS        int  `yaml:"fps"`
	Loop       bool `yaml:"loop"`
}

type SpawnSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ActorSpec is the shared shape of every actor definition. State names key
// the clips map; a state with no clip falls back to a tinted circle.
type ActorSpec struct {
	Name      string              `yaml:"name"`
	Spawn     SpawnSpec           `yaml:"spawn"`
	Health    int                 `yaml:"health"`
	Radius    float64             `yaml:"radius"`
	MoveSpeed float64             `yaml:"move_speed"`
	Color     *YAMLColor          `yaml:"color"`
	Sheet     string              `yaml:"sheet"`
	FrameW    int                 `yaml:"frame_w"`
	FrameH    int                 `yaml:"frame_h"`
	Clips     map[string]ClipSpec `yaml:"clips"`
}

// InputSpec tunes the player's input producer. Zero values fall back to
// the defaults in obj.
type InputSpec struct {
	StickDeadzone    float64 `yaml:"stick_deadzone"`
	TriggerThreshold float64 `yaml:"trigger_threshold"`
	MoveThreshold    float64 `yaml:"move_threshold"`
}

// PlayerSpec extends ActorSpec with the player-only tunables.
type PlayerSpec struct {
	ActorSpec    `yaml:",inline"`
	MaxStamina   int       `yaml:"max_stamina"`
	MaxMana      int       `yaml:"max_mana"`
	AttackFrames int       `yaml:"attack_frames"`
	Input        InputSpec `yaml:"input"`
}

// NPCSpec extends ActorSpec with the AI tunables.
type NPCSpec struct {
	ActorSpec   `yaml:",inline"`
	Aggression  float64   `yaml:"aggression"`
	FollowRange float64   `yaml:"follow_range"`
	PollSeconds float64   `yaml:"poll_seconds"`
	Recovery    SpawnSpec `yaml:"recovery"`
	BrainScript string    `yaml:"brain_script"`
}

// LoadSpec reads and unmarshals one spec file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("prefabs: player.yaml: %w", err)
	}
	return &spec, nil
}

func LoadNPCSpec() (*NPCSpec, error) {
	spec, err := LoadSpec[NPCSpec]("npc.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("prefabs: npc.yaml: %w", err)
	}
	return &spec, nil
}

func (s *ActorSpec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if s.Health <= 0 {
		return fmt.Errorf("%s: health must be positive, got %d", s.Name, s.Health)
	}
	if s.Radius <= 0 {
		return fmt.Errorf("%s: radius must be positive, got %v", s.Name, s.Radius)
	}
	if s.MoveSpeed < 0 {
		return fmt.Errorf("%s: negative move_speed %v", s.Name, s.MoveSpeed)
	}
	return nil
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa" scalars.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
