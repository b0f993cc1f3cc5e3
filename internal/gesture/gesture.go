package gesture

import "github.com/arcanaland/flashdeck/internal/deck"

// Drag tracks one press-move-release gesture in terminal cells.
type Drag struct {
	Threshold int

	active         bool
	startX, startY int
	dx, dy         int
}

// NewDrag creates a tracker that commits beyond threshold columns
func NewDrag(threshold int) *Drag {
	return &Drag{Threshold: threshold}
}

// Press starts a drag at (x, y)
func (d *Drag) Press(x, y int) {
	d.active = true
	d.startX, d.startY = x, y
	d.dx, d.dy = 0, 0
}

// Move updates the displacement; ignored when no drag is active
func (d *Drag) Move(x, y int) {
	if !d.active {
		return
	}
	d.dx, d.dy = x-d.startX, y-d.startY
}

// Release ends the drag. It returns the direction to advance, or 0 when the
// horizontal displacement stays within the threshold and the card snaps back.
// Dragging left moves to the next card, dragging right to the previous one.
func (d *Drag) Release(x, y int) deck.Direction {
	if !d.active {
		return 0
	}
	d.Move(x, y)
	dx := d.dx
	d.Cancel()

	switch {
	case dx < -d.Threshold:
		return deck.Next
	case dx > d.Threshold:
		return deck.Previous
	default:
		return 0
	}
}

// Cancel drops the drag and returns to neutral
func (d *Drag) Cancel() {
	d.active = false
	d.dx, d.dy = 0, 0
}

// Active reports whether a drag is in progress
func (d *Drag) Active() bool {
	return d.active
}

// Offset is the current displacement from the press point
func (d *Drag) Offset() (dx, dy int) {
	return d.dx, d.dy
}
