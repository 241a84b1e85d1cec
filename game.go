package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/Ian-PB/small-world/assets"
	"github.com/Ian-PB/small-world/command"
	"github.com/Ian-PB/small-world/common"
	"github.com/Ian-PB/small-world/fsm"
	"github.com/Ian-PB/small-world/obj"
	"github.com/Ian-PB/small-world/prefabs"
)

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool

	input     *obj.Input
	player    *obj.Player
	npc       *obj.NPC
	playerMed *command.Mediator
	npcMed    *command.Mediator
	ai        *obj.AIController

	contacts obj.ContactTracker

	// displayed health trails actual health for the bar animation
	playerBar float32
	npcBar    float32

	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
}

func NewGame(debug bool) *Game {
	g := &Game{debug: debug}

	if err := g.loadActors(); err != nil {
		log.Fatalf("game: %v", err)
	}
	g.playerBar = float32(g.player.Health)
	g.npcBar = float32(g.npc.Health)

	// hot reload is a debug convenience and best effort; without a prefabs
	// dir on disk the embedded specs are all there is
	if debug {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("game: spec watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g
}

// loadActors builds both actors and their mediators from the spec files.
func (g *Game) loadActors() error {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	npcSpec, err := prefabs.LoadNPCSpec()
	if err != nil {
		return err
	}

	g.input = obj.NewInput(playerSpec.Input)
	g.player = obj.NewPlayer(playerSpec, assets.LoadSheet(playerSpec.Sheet))
	g.npc = obj.NewNPC(npcSpec, assets.LoadSheet(npcSpec.Sheet))
	g.playerMed = command.NewMediator(g.player)
	g.npcMed = command.NewMediator(g.npc)

	var brain *obj.Brain
	if npcSpec.BrainScript != "" {
		brain, err = obj.NewBrain(npcSpec.BrainScript)
		if err != nil {
			log.Printf("game: %v, npc falls back to built-in behavior", err)
		}
	}
	g.ai = obj.NewAIController(g.npc, g.player, npcSpec.PollSeconds, brain)
	return nil
}

func (g *Game) Update() error {
	g.frames++

	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	g.drainWatcher()

	// producers first, one command each
	cmd := g.input.Poll()
	if dir, ok := command.Direction(cmd); ok {
		g.player.SetHeading(dir)
	}
	g.playerMed.Execute(cmd)

	aiCmd := g.ai.Poll(time.Now())
	if dir, ok := command.Direction(aiCmd); ok {
		g.npc.SetHeading(dir)
	}
	g.npcMed.Execute(aiCmd)

	// then one machine tick each
	g.player.Update()
	g.npc.Update()

	g.resolveContacts()
	g.animateBars()
	return nil
}

// resolveContacts runs the circle test for the one pair in the arena. The
// player is the struck side of the contact, so it alone takes the damage,
// the push and the episode events; the npc just flashes.
func (g *Game) resolveContacts() {
	g.contacts.Step(&g.player.Actor, &g.npc.Actor, func() bool {
		return g.player.CanEnter(fsm.StateDead)
	}, g.playerMed)
}

// drainWatcher rebuilds both actors when a spec or brain script changes on
// disk. Positions survive the reload; everything else comes from the new
// specs.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: spec changed: %s", path)
			reload = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: spec watcher: %v", err)
		default:
			if !reload {
				return
			}
			playerPos, npcPos := g.player.Position, g.npc.Position
			if err := g.loadActors(); err != nil {
				log.Printf("game: reload failed, keeping old actors: %v", err)
				return
			}
			g.player.Position = playerPos
			g.npc.Position = npcPos
			g.contacts = obj.ContactTracker{}
			return
		}
	}
}

// restart rebuilds the arena from the current specs, dropping all runtime
// state including positions.
func (g *Game) restart() {
	if err := g.loadActors(); err != nil {
		log.Printf("game: restart failed, keeping old actors: %v", err)
		return
	}
	g.contacts = obj.ContactTracker{}
	g.playerBar = float32(g.player.Health)
	g.npcBar = float32(g.npc.Health)
	g.paused = false
}

func (g *Game) animateBars() {
	g.playerBar = common.Lerp(g.playerBar, float32(g.player.Health), 0.2)
	g.npcBar = common.Lerp(g.npcBar, float32(g.npc.Health), 0.2)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	g.player.Draw(screen)
	g.npc.Draw(screen)

	g.drawHealthBar(screen, &g.player.Actor, g.playerBar)
	g.drawHealthBar(screen, &g.npc.Actor, g.npcBar)

	if g.debug {
		g.drawDebug(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawHealthBar(screen *ebiten.Image, a *obj.Actor, shown float32) {
	const barW, barH = 60, 6
	x := float32(a.Position.X) - barW/2
	y := float32(a.Position.Y-a.Radius) - 14

	vector.DrawFilledRect(screen, x, y, barW, barH, colornames.Black, false)
	frac := shown / float32(a.MaxHealth)
	if frac < 0 {
		frac = 0
	}
	vector.DrawFilledRect(screen, x, y, barW*frac, barH, colornames.Limegreen, false)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\nplayer: %s hp=%d\nnpc: %s hp=%d\ncontact: %v",
		ebiten.ActualFPS(),
		g.player.State(), g.player.Health,
		g.npc.State(), g.npc.Health,
		g.contacts.Active(),
	))
	ebitenutil.DebugPrintAt(screen, g.player.Machine().DumpConfig(), 8, 120)
	ebitenutil.DebugPrintAt(screen, g.npc.Machine().DumpConfig(), 8, 280)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
