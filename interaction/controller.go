package interaction

import (
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/viewport"
)

// Store is the part of the point store the controller edits.
type Store interface {
	Len() int
	Add(pos points.Position) int
	Remove(i int)
	MoveTo(i int, pos points.Position)
	SetRandomColor(i int)
	Nearest(pos points.Position) (int, bool)
}

// Result summarizes one drained batch.
type Result struct {
	Close   bool // a close request was seen
	Resized bool // at least one resize event was seen
	Width   int  // last reported size when Resized
	Height  int
	Changed bool // the store was mutated
}

// Controller holds the drag state and the tracked cursor and modifiers
// between frames. The zero value is ready to use.
type Controller struct {
	dragging int
	hasDrag  bool
	mods     Modifiers
	cursor   points.Position
	vp       viewport.Viewport // previous frame's viewport
}

// New returns a controller whose first frame maps the cursor through vp.
func New(vp viewport.Viewport) *Controller {
	return &Controller{vp: vp}
}

// Dragging returns the index of the point being dragged.
func (c *Controller) Dragging() (int, bool) {
	return c.dragging, c.hasDrag
}

// CancelDrag ends any drag in progress.
func (c *Controller) CancelDrag() {
	c.dragging, c.hasDrag = 0, false
}

// Cursor returns the cursor in logical coordinates.
func (c *Controller) Cursor() points.Position {
	return c.cursor
}

// Modifiers returns the modifiers currently tracked as held.
func (c *Controller) Modifiers() Modifiers {
	return c.mods
}

// EndFrame records the viewport used to map pointer moves in the next
// batch. Cursor positions therefore lag a resize by one frame.
func (c *Controller) EndFrame(vp viewport.Viewport) {
	c.vp = vp
}

// Apply drains one frame's events in order and edits store accordingly.
// When captured is true another input owner holds the pointer this frame:
// presses and the drag update are skipped, while cursor, modifiers,
// releases, resizes and close requests are still tracked.
func (c *Controller) Apply(store Store, events []Event, captured bool) Result {
	var res Result
	for _, ev := range events {
		switch ev.Kind {
		case ModifiersChange:
			c.mods = ev.Mods
		case PointerMove:
			c.cursor = c.vp.ScreenToPosition(ev.X, ev.Y)
		case PointerRelease:
			c.CancelDrag()
		case PointerPress:
			if captured {
				continue
			}
			if c.press(store, ev.Button) {
				res.Changed = true
			}
		case Resize:
			res.Resized = true
			res.Width, res.Height = ev.Width, ev.Height
		case Close:
			res.Close = true
		}
	}

	if c.hasDrag && !captured {
		if c.dragging >= store.Len() {
			c.CancelDrag()
		} else {
			store.MoveTo(c.dragging, c.cursor)
			res.Changed = true
		}
	}
	return res
}

// press applies the action bound to button under the held modifiers and
// reports whether the store changed.
func (c *Controller) press(store Store, b Button) bool {
	switch {
	case b == ButtonPrimary && c.mods == 0:
		c.dragging, c.hasDrag = store.Nearest(c.cursor)
		return false
	case b == ButtonPrimary && c.mods == ModShift:
		if i, ok := store.Nearest(c.cursor); ok {
			store.SetRandomColor(i)
			return true
		}
	case b == ButtonPrimary && c.mods == ModCtrl:
		c.dragging, c.hasDrag = store.Add(c.cursor), true
		return true
	case b == ButtonSecondary && c.mods == 0:
		c.CancelDrag()
		if i, ok := store.Nearest(c.cursor); ok {
			store.Remove(i)
			return true
		}
	}
	return false
}
