// Package designer owns the interactive state of one design session: the
// element list of the template being edited, the single selection, and the
// drag session that turns pointer gestures into geometry mutations.
package designer

import (
	"go.uber.org/zap"

	"github.com/druckwerk/belegdesigner/internal/element"
	"github.com/druckwerk/belegdesigner/internal/placeholder"
)

// DragState is the drag-session state machine: Idle to Dragging and back, re-entered
// per gesture.
type DragState string

const (
	DragIdle     DragState = "idle"
	DragDragging DragState = "dragging"
)

// Surface is the design surface controller. It is the sole owner of the
// element list; elements are addressed by their surface-local ID, never by
// pointer. All methods run on the interaction goroutine; the surface does
// no locking of its own.
type Surface struct {
	log *zap.Logger

	elements []element.Element
	nextID   int

	// selected is the ID of the selected element, 0 when nothing is selected.
	selected int

	drag dragSession
}

type dragSession struct {
	state  DragState
	target int
	lastX  float64
	lastY  float64
}

// NewSurface creates an empty design surface.
func NewSurface(log *zap.Logger) *Surface {
	if log == nil {
		log = zap.NewNop()
	}
	return &Surface{
		log:  log.Named("designer.surface"),
		drag: dragSession{state: DragIdle},
	}
}

// InsertKind creates a new element of the given kind at (x, y), appends it to
// the element list (last-added draws on top) and selects it.
func (s *Surface) InsertKind(kind element.Kind, x, y float64) element.Element {
	e := element.New(kind, x, y)
	return s.insert(e)
}

// InsertBoundField creates a field element bound to the dropped placeholder
// token, previewing the token as its display text, and selects it. The token
// is not validated against the catalog here; unknown tokens resolve to their
// literal text at render time.
func (s *Surface) InsertBoundField(token placeholder.Token, x, y float64) element.Element {
	e := element.NewBoundField(token.String(), x, y)
	return s.insert(e)
}

func (s *Surface) insert(e element.Element) element.Element {
	s.nextID++
	e.ID = s.nextID
	s.elements = append(s.elements, e)
	s.selected = e.ID
	s.log.Debug("element inserted",
		zap.String("kind", string(e.Kind)),
		zap.Int("id", e.ID),
		zap.Float64("x", e.X),
		zap.Float64("y", e.Y),
	)
	return e
}

// Elements returns a copy of the element list in z-order (first element
// bottom-most).
func (s *Surface) Elements() []element.Element {
	out := make([]element.Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.Clone()
	}
	return out
}

// Element returns the element with the given ID.
func (s *Surface) Element(id int) (element.Element, bool) {
	if e := s.find(id); e != nil {
		return e.Clone(), true
	}
	return element.Element{}, false
}

// Selected returns the ID of the selected element, or false when the
// selection is empty.
func (s *Surface) Selected() (int, bool) {
	return s.selected, s.selected != 0
}

// Select makes the element with the given ID the selection, replacing any
// previous one. Selecting an unknown ID clears the selection.
func (s *Surface) Select(id int) {
	if s.find(id) == nil {
		s.selected = 0
		return
	}
	s.selected = id
}

// HitTest returns the topmost element containing (x, y). Later elements win
// on overlap, matching draw order.
func (s *Surface) HitTest(x, y float64) (element.Element, bool) {
	for i := len(s.elements) - 1; i >= 0; i-- {
		if s.elements[i].Contains(x, y) {
			return s.elements[i].Clone(), true
		}
	}
	return element.Element{}, false
}

// PointerDown starts a drag session if (x, y) hits an element: the hit
// element becomes the selection and the drag target, and the pointer position
// is captured. On empty canvas the selection is cleared. While a session is
// active further pointer-downs are ignored; capture is exclusive.
func (s *Surface) PointerDown(x, y float64) bool {
	if s.drag.state == DragDragging {
		return false
	}
	hit, ok := s.HitTest(x, y)
	if !ok {
		s.selected = 0
		return false
	}
	s.selected = hit.ID
	s.drag = dragSession{state: DragDragging, target: hit.ID, lastX: x, lastY: y}
	return true
}

// PointerMove applies the delta since the last recorded pointer position to
// the drag target, clamped at the surface origin, and records the new
// position. Outside a drag session it is a no-op. The delta is incremental so
// movement does not depend on knowing the element's position at drag start.
func (s *Surface) PointerMove(x, y float64) {
	if s.drag.state != DragDragging {
		return
	}
	target := s.find(s.drag.target)
	if target == nil {
		// Target vanished (surface reset mid-gesture); drop capture.
		s.drag = dragSession{state: DragIdle}
		return
	}
	target.MoveBy(x-s.drag.lastX, y-s.drag.lastY)
	s.drag.lastX = x
	s.drag.lastY = y
}

// PointerUp releases capture and returns the session to idle. Whatever
// position was last committed stands; there is no rollback.
func (s *Surface) PointerUp() {
	s.drag = dragSession{state: DragIdle}
}

// CaptureLost is the hosting environment revoking pointer capture mid-drag.
// It behaves exactly like PointerUp.
func (s *Surface) CaptureLost() {
	s.PointerUp()
}

// DragState reports the current drag-session state.
func (s *Surface) DragState() DragState {
	return s.drag.state
}

// Reset clears the element list, the selection and any drag session in one
// step. This backs "new template"; there is no undo past this point.
func (s *Surface) Reset() {
	s.elements = nil
	s.nextID = 0
	s.selected = 0
	s.drag = dragSession{state: DragIdle}
	s.log.Debug("surface reset")
}

// Replace swaps in a loaded element list, clearing selection and drag state.
// IDs are reassigned so surface-local IDs stay unique and dense.
func (s *Surface) Replace(elements []element.Element) {
	s.Reset()
	for _, e := range elements {
		s.nextID++
		e.ID = s.nextID
		s.elements = append(s.elements, e.Clone())
	}
	s.selected = 0
}

func (s *Surface) find(id int) *element.Element {
	if id == 0 {
		return nil
	}
	for i := range s.elements {
		if s.elements[i].ID == id {
			return &s.elements[i]
		}
	}
	return nil
}
