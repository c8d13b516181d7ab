package game

import "github.com/iburimskiy/ambient-field/internal/field"

// cursorTracker turns polled cursor samples into move/leave events the way
// a browser window reports them: a move only when the position changes,
// a leave when the cursor exits the window or the window loses focus.
type cursorTracker struct {
	x, y   float64
	inside bool
	seen   bool
}

func (c *cursorTracker) observe(x, y, width, height float64, focused bool) []field.Event {
	inside := focused && x >= 0 && y >= 0 && x < width && y < height
	defer func() {
		c.x, c.y, c.inside, c.seen = x, y, inside, true
	}()

	if !c.seen {
		return nil
	}
	switch {
	case inside && (x != c.x || y != c.y):
		return []field.Event{{Kind: field.EventPointerMove, X: x, Y: y}}
	case !inside && c.inside:
		return []field.Event{{Kind: field.EventPointerLeave}}
	}
	return nil
}
