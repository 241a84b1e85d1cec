package anim

import "testing"

// handClip builds a clip with the internal counters set directly so timing
// can be tested without a spritesheet.
func handClip(frameCount, ticksPerFrame int, loop bool) *Clip {
	return &Clip{
		FrameW:      16,
		FrameH:      16,
		FrameCount:  frameCount,
		FPS:         12,
		Loop:        loop,
		cols:        frameCount,
		ticksPerFrm: ticksPerFrame,
	}
}

func tick(c *Clip, n int) {
	for i := 0; i < n; i++ {
		c.Update()
	}
}

func TestClipAdvanceAndLoop(t *testing.T) {
	c := handClip(3, 5, true)

	tick(c, 4)
	if c.Frame() != 0 {
		t.Fatalf("frame after 4 ticks = %d, want 0", c.Frame())
	}
	tick(c, 1)
	if c.Frame() != 1 {
		t.Fatalf("frame after 5 ticks = %d, want 1", c.Frame())
	}
	tick(c, 10)
	if c.Frame() != 0 {
		t.Fatalf("looping clip did not wrap: frame = %d", c.Frame())
	}
	if c.Finished() {
		t.Fatal("looping clip reported finished")
	}
}

func TestClipFinishLatchesAndResetClears(t *testing.T) {
	c := handClip(2, 1, false)

	if c.Finished() {
		t.Fatal("fresh clip reported finished")
	}
	tick(c, 2)
	if !c.Finished() {
		t.Fatal("clip not finished after playing through")
	}
	if c.Frame() != 1 {
		t.Fatalf("finished clip frame = %d, want last", c.Frame())
	}
	tick(c, 5)
	if c.Frame() != 1 || !c.Finished() {
		t.Fatal("finished clip did not hold last frame")
	}

	c.Reset()
	if c.Finished() || c.Frame() != 0 {
		t.Fatal("Reset did not rewind clip")
	}
}

func TestInertClip(t *testing.T) {
	var nilClip *Clip
	c := NewClip(nil, 16, 16, 0, 4, 12, true)

	// none of these may panic
	nilClip.Update()
	nilClip.Reset()
	c.Update()
	c.Reset()
	c.Draw(nil, nil)

	if !c.Finished() || !nilClip.Finished() {
		t.Fatal("inert clips must report finished")
	}
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Fatalf("inert clip size = %dx%d, want 0x0", w, h)
	}
}
