// Package anim animates rows of a rectangular spritesheet. Each actor state
// owns one Clip; swapping the active clip on a state change restarts it from
// frame zero.
package anim

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Clip plays one row of a spritesheet left to right. Frames are fixed-size
// cells; a clip that runs past the end of its row continues on the next one.
type Clip struct {
	Sheet      *ebiten.Image
	FrameW     int
	FrameH     int
	Row        int
	FrameCount int
	FPS        int
	Loop       bool

	cols        int
	current     int
	tick        int
	ticksPerFrm int
	done        bool
	frames      []*ebiten.Image
}

// NewClip slices the given row of sheet into frameCount frames. A nil sheet
// or non-positive cell size yields an inert clip that draws nothing, so
// actors stay playable while art is missing. fps defaults to 12.
func NewClip(sheet *ebiten.Image, frameW, frameH, row, frameCount, fps int, loop bool) *Clip {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return &Clip{}
	}
	if fps <= 0 {
		fps = 12
	}
	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	if cols <= 0 || rows <= 0 {
		return &Clip{}
	}
	if row < 0 {
		row = 0
	}
	maxFrames := cols*rows - row*cols
	if frameCount <= 0 || frameCount > maxFrames {
		frameCount = maxFrames
	}

	c := &Clip{
		Sheet:       sheet,
		FrameW:      frameW,
		FrameH:      frameH,
		Row:         row,
		FrameCount:  frameCount,
		FPS:         fps,
		Loop:        loop,
		cols:        cols,
		ticksPerFrm: int(math.Max(1, math.Round(60.0/float64(fps)))),
	}
	c.buildFrames()
	return c
}

func (c *Clip) buildFrames() {
	start := c.Row * c.cols
	c.frames = make([]*ebiten.Image, c.FrameCount)
	for i := 0; i < c.FrameCount; i++ {
		idx := start + i
		sx := (idx % c.cols) * c.FrameW
		sy := (idx / c.cols) * c.FrameH
		r := image.Rect(sx, sy, sx+c.FrameW, sy+c.FrameH)
		c.frames[i] = ebiten.NewImageFromImage(c.Sheet.SubImage(r))
	}
}

// Update advances the clip by one 60Hz tick. A finished non-looping clip
// holds its last frame.
func (c *Clip) Update() {
	if c == nil || c.FrameCount <= 1 {
		return
	}
	c.tick++
	if c.tick < c.ticksPerFrm {
		return
	}
	c.tick = 0
	c.current++
	if c.current >= c.FrameCount {
		if c.Loop {
			c.current = 0
		} else {
			c.current = c.FrameCount - 1
			c.done = true
		}
	}
}

// Reset rewinds to the first frame. Entry hooks call this when the state
// actually changed, and skip it on a re-entry of the same state.
func (c *Clip) Reset() {
	if c == nil {
		return
	}
	c.current = 0
	c.tick = 0
	c.done = false
}

// Frame returns the zero-based index of the frame being shown.
func (c *Clip) Frame() int {
	if c == nil {
		return 0
	}
	return c.current
}

// Finished reports whether a non-looping clip has played through its last
// frame. Looping clips never finish; inert clips are finished immediately.
func (c *Clip) Finished() bool {
	if c == nil || c.FrameCount == 0 {
		return true
	}
	if c.Loop {
		return false
	}
	return c.done
}

// Draw renders the current frame with op. Inert clips draw nothing.
func (c *Clip) Draw(screen *ebiten.Image, op *ebiten.DrawImageOptions) {
	if c == nil || c.Sheet == nil || len(c.frames) == 0 {
		return
	}
	fi := c.current
	if fi < 0 || fi >= len(c.frames) {
		fi = 0
	}
	var dop ebiten.DrawImageOptions
	if op != nil {
		dop = *op
	}
	dop.Filter = ebiten.FilterNearest
	screen.DrawImage(c.frames[fi], &dop)
}

// Size returns the frame width and height.
func (c *Clip) Size() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.FrameW, c.FrameH
}
