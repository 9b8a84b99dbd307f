package designer

// Undo and Redo are part of the surface's public command boundary but are
// deliberately inert. A future command log or snapshot mechanism can be wired
// in behind these without changing the controller's surface.

// Undo does nothing. CanUndo always reports false.
func (s *Surface) Undo() {}

// Redo does nothing. CanRedo always reports false.
func (s *Surface) Redo() {}

// CanUndo reports whether an undo step is available.
func (s *Surface) CanUndo() bool { return false }

// CanRedo reports whether a redo step is available.
func (s *Surface) CanRedo() bool { return false }
