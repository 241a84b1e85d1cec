package obj

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/Ian-PB/small-world/command"
	"github.com/Ian-PB/small-world/fsm"
)

type eventRecorder struct {
	events []fsm.Event
}

func (r *eventRecorder) HandleEvent(ev fsm.Event) {
	r.events = append(r.events, ev)
}

func alwaysCanDie() bool { return true }

func TestContactEpisodeEdges(t *testing.T) {
	struck := actorAt(0, 0, 10, 100)
	collider := actorAt(5, 0, 10, 100)
	rec := &eventRecorder{}
	med := command.NewMediator(rec)
	var tr ContactTracker

	// three overlapped ticks, positions pinned so the push cannot end
	// the episode early
	for i := 0; i < 3; i++ {
		struck.Position = cp.Vector{}
		collider.Position = cp.Vector{X: 5}
		tr.Step(struck, collider, alwaysCanDie, med)
		if !tr.Active() {
			t.Fatal("tracker lost the episode while overlapped")
		}
	}

	if len(rec.events) != 1 || rec.events[0] != fsm.EventDie {
		t.Fatalf("overlap events = %v, want one %s", rec.events, fsm.EventDie)
	}
	if struck.Health != 100-3*CollisionDamage {
		t.Fatalf("struck health = %d, want %d", struck.Health, 100-3*CollisionDamage)
	}
	if collider.Health != 100 {
		t.Fatalf("collider lost health: %d", collider.Health)
	}

	// separation ends the episode with exactly one quiet tick
	collider.Position = cp.Vector{X: 100}
	tr.Step(struck, collider, alwaysCanDie, med)
	if tr.Active() {
		t.Fatal("tracker still active after separation")
	}
	if len(rec.events) != 2 || rec.events[1] != fsm.EventNone {
		t.Fatalf("events after separation = %v, want [%s %s]", rec.events, fsm.EventDie, fsm.EventNone)
	}

	// further separated ticks stay silent
	tr.Step(struck, collider, alwaysCanDie, med)
	if len(rec.events) != 2 {
		t.Fatalf("separated tick emitted again: %v", rec.events)
	}
}

func TestContactStartGatedOnCanDie(t *testing.T) {
	struck := actorAt(0, 0, 10, 100)
	collider := actorAt(5, 0, 10, 100)
	rec := &eventRecorder{}
	med := command.NewMediator(rec)
	var tr ContactTracker

	tr.Step(struck, collider, func() bool { return false }, med)

	// the response still lands, only the event is dropped
	if len(rec.events) != 0 {
		t.Fatalf("gated start still emitted: %v", rec.events)
	}
	if struck.Health != 100-CollisionDamage {
		t.Fatalf("struck health = %d, want %d", struck.Health, 100-CollisionDamage)
	}

	// separation still closes the episode
	collider.Position = cp.Vector{X: 100}
	struck.Position = cp.Vector{}
	tr.Step(struck, collider, func() bool { return false }, med)
	if len(rec.events) != 1 || rec.events[0] != fsm.EventNone {
		t.Fatalf("separation events = %v, want [%s]", rec.events, fsm.EventNone)
	}
}

func TestContactDrivesPlayerDeath(t *testing.T) {
	p := newTestPlayer(t)
	med := command.NewMediator(p)
	collider := actorAt(p.Position.X+5, p.Position.Y, p.Radius, 100)
	var tr ContactTracker

	pos := p.Position
	for i := 0; i < 25; i++ {
		p.Position = pos
		collider.Position = cp.Vector{X: pos.X + 5, Y: pos.Y}
		tr.Step(&p.Actor, collider, func() bool { return p.CanEnter(fsm.StateDead) }, med)
	}

	if p.State() != fsm.StateDead {
		t.Fatalf("player state = %s after sustained contact, want %s", p.State(), fsm.StateDead)
	}
	if p.Health != 0 {
		t.Fatalf("dead player health = %d", p.Health)
	}
}
