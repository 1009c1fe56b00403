package main

func (m *model) undo() {
	m.flushEdits()
	if !m.editor.Undo() {
		m.errorMessage = "Nothing to undo"
		return
	}
	m.successMessage = "Undone"
}

func (m *model) redo() {
	m.flushEdits()
	if !m.editor.Redo() {
		m.errorMessage = "Nothing to redo"
		return
	}
	m.successMessage = "Redone"
}

// flushEdits applies a pending debounced panel edit right away, so that it
// lands in history before the history is walked.
func (m *model) flushEdits() {
	if m.edits != nil && m.edits.Cancel() {
		m.applyPending()
	}
}

func (m *model) applyPending() {
	if m.pending.patch.Empty() {
		return
	}
	m.editor.ApplyAttributesTo(m.pending.ids, m.pending.patch)
	m.pending = pendingEdit{}
}
