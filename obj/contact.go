package obj

import "github.com/Ian-PB/small-world/command"

// ContactTracker turns per-tick circle overlap into episode-edged events.
// The ticks of an overlap each apply the contact response; the episode
// itself surfaces exactly twice, as a CollisionStart on the first
// overlapped tick and a None once separation is re-established.
type ContactTracker struct {
	colliding bool
}

// Step runs one tick of contact logic between the struck actor and the
// collider. Episode edges reach the struck entity's machine through med;
// the start edge is dropped when canDie reports false, so a corpse never
// re-dies.
func (t *ContactTracker) Step(struck, collider *Actor, canDie func() bool, med *command.Mediator) {
	if Collide(struck, collider) {
		ResolveCollision(struck, collider)
		if !t.colliding {
			t.colliding = true
			if canDie() {
				med.Execute(command.CollisionStart)
			}
		}
		return
	}

	if t.colliding {
		t.colliding = false
		// a quiet tick after separation; a survivor settles back to idle
		// and a corpse keeps playing out its death
		med.Execute(command.None)
	}
}

// Active reports whether an overlap episode is in progress.
func (t *ContactTracker) Active() bool {
	return t.colliding
}
