package obj

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/Ian-PB/small-world/command"
)

// AIController produces at most one command per poll interval for its NPC.
// Between polls it stays silent and the NPC's machine coasts on its Update
// hooks. Each controller carries its own poll clock, so several NPCs can
// run side by side without sharing timer state.
type AIController struct {
	npc      *NPC
	target   *Player
	interval time.Duration
	lastPoll time.Time
	brain    *Brain
}

// NewAIController drives npc toward target. brain may be nil; the built-in
// heuristic then decides every poll on its own.
func NewAIController(npc *NPC, target *Player, pollSeconds float64, brain *Brain) *AIController {
	if pollSeconds <= 0 {
		pollSeconds = 1
	}
	return &AIController{
		npc:      npc,
		target:   target,
		interval: time.Duration(pollSeconds * float64(time.Second)),
		brain:    brain,
	}
}

// Poll returns this tick's command. Outside the poll window it returns
// command.None without consulting the brain.
func (c *AIController) Poll(now time.Time) command.Command {
	if now.Sub(c.lastPoll) < c.interval {
		return command.None
	}
	c.lastPoll = now

	// a drained body recovers instead of acting, whatever state the
	// machine is in
	if !c.npc.Alive() {
		c.npc.Recover()
		return command.None
	}

	if c.brain != nil {
		cmd, err := c.brain.Think(c.view())
		if err == nil {
			return cmd
		}
		log.Printf("ai: %s brain error, using heuristic: %v", c.npc.Name, err)
	}
	return c.heuristic()
}

func (c *AIController) view() BrainView {
	return BrainView{
		SelfX:       c.npc.Position.X,
		SelfY:       c.npc.Position.Y,
		PlayerX:     c.target.Position.X,
		PlayerY:     c.target.Position.Y,
		Health:      c.npc.Health,
		FollowRange: c.npc.FollowRange,
		Aggression:  c.npc.Aggression,
	}
}

// heuristic mirrors the shipped brain script: chase along the dominant axis
// inside follow range, sometimes swing when close.
func (c *AIController) heuristic() command.Command {
	dx := c.target.Position.X - c.npc.Position.X
	dy := c.target.Position.Y - c.npc.Position.Y
	dist := math.Hypot(dx, dy)

	if dist > c.npc.FollowRange {
		return command.None
	}
	if dist < c.npc.FollowRange/4 && rand.Float64() < c.npc.Aggression {
		return command.Attack
	}

	if math.Abs(dx) > math.Abs(dy) {
		if dx < 0 {
			return command.MoveLeft
		}
		return command.MoveRight
	}
	if dy < 0 {
		return command.MoveUp
	}
	return command.MoveDown
}
