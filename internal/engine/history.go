package engine

// History holds the committed commands (active, in draw order), the commands
// undone since the last edit (redo, most recently undone last) and the command
// currently being extended by the pointer.
type History struct {
	active  []*Command
	redo    []*Command
	current *Command

	keepRedoOnClear bool
}

// Begin commits cmd as the newest command and makes it current.
// Any redo branch is abandoned.
func (h *History) Begin(cmd *Command) {
	h.active = append(h.active, cmd)
	h.current = cmd
	h.redo = nil
}

// Extend drags the current command to p. It reports whether there was one.
func (h *History) Extend(p Point) bool {
	if h.current == nil {
		return false
	}
	h.current.Drag(p)
	return true
}

// End freezes the current command. It reports whether there was one.
func (h *History) End() bool {
	if h.current == nil {
		return false
	}
	h.current = nil
	return true
}

// Undo moves the newest committed command onto the redo buffer.
func (h *History) Undo() bool {
	if len(h.active) == 0 {
		return false
	}
	h.current = nil
	last := h.active[len(h.active)-1]
	h.active = h.active[:len(h.active)-1]
	h.redo = append(h.redo, last)
	return true
}

// Redo moves the most recently undone command back onto active, unchanged.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	h.current = nil
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.active = append(h.active, last)
	return true
}

// Clear drops every committed command. Unless the history keeps redo on clear,
// the redo buffer is dropped too, so nothing cleared can come back.
func (h *History) Clear() bool {
	changed := len(h.active) > 0
	h.current = nil
	h.active = nil
	if !h.keepRedoOnClear {
		changed = changed || len(h.redo) > 0
		h.redo = nil
	}
	return changed
}

// Load replaces the history with cmds, oldest first.
func (h *History) Load(cmds []*Command) {
	h.active = cmds
	h.redo = nil
	h.current = nil
}

// Active returns copies of the committed commands, oldest first.
func (h *History) Active() []Command {
	return cloneAll(h.active)
}

// RedoBuffer returns copies of the undone commands, most recently undone last.
func (h *History) RedoBuffer() []Command {
	return cloneAll(h.redo)
}

// Current returns a copy of the in-progress command, if any.
func (h *History) Current() (Command, bool) {
	if h.current == nil {
		return Command{}, false
	}
	return h.current.Clone(), true
}

func (h *History) CanUndo() bool { return len(h.active) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) Len() int      { return len(h.active) }

func (h *History) each(fn func(*Command)) {
	for _, cmd := range h.active {
		fn(cmd)
	}
}

func cloneAll(cmds []*Command) []Command {
	out := make([]Command, len(cmds))
	for i, c := range cmds {
		out[i] = c.Clone()
	}
	return out
}
