package menu

// Selectable returns the indices of items that can hold the cursor:
// visible, enabled, and not a separator. The optional include predicate
// narrows the set further (e.g. a fuzzy filter).
func (m *Menu) Selectable(include func(*Item) bool) []int {
	indices := make([]int, 0, len(m.Items))
	for i, item := range m.Items {
		if !selectable(item) {
			continue
		}
		if include != nil && !include(item) {
			continue
		}
		indices = append(indices, i)
	}
	return indices
}

// MoveSelection advances the cursor by delta positions among selectable
// items, wrapping at either end, then keeps the cursor inside the
// scroll window. With no selectable items it is a no-op.
func (m *Menu) MoveSelection(delta int) {
	m.MoveSelectionWithin(delta, nil)
}

// MoveSelectionWithin is MoveSelection restricted to items accepted by
// include.
func (m *Menu) MoveSelectionWithin(delta int, include func(*Item) bool) {
	indices := m.Selectable(include)
	if len(indices) == 0 {
		return
	}
	pos := 0
	for i, idx := range indices {
		if idx == m.Selected {
			pos = i
			break
		}
	}
	pos = ((pos+delta)%len(indices) + len(indices)) % len(indices)
	m.Selected = indices[pos]
	m.EnsureVisible()
}

// SelectableAt returns the n-th (1-based) selectable item and its
// absolute index, for direct numeric selection.
func (m *Menu) SelectableAt(n int) (*Item, int, bool) {
	indices := m.Selectable(nil)
	if n < 1 || n > len(indices) {
		return nil, -1, false
	}
	idx := indices[n-1]
	return m.Items[idx], idx, true
}

// ResetCursor moves the cursor to the first selectable item and rewinds
// the scroll window. Submenus always enter at the top.
func (m *Menu) ResetCursor() {
	m.Selected = 0
	m.Offset = 0
	m.normalizeSelection()
}

// EnsureVisible adjusts Offset so that
// Offset <= Selected < Offset+MaxVisible holds.
func (m *Menu) EnsureVisible() {
	max := m.MaxVisible
	if max <= 0 {
		max = DefaultMaxVisible
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
	if m.Selected < m.Offset {
		m.Offset = m.Selected
	}
	if m.Selected >= m.Offset+max {
		m.Offset = m.Selected - max + 1
	}
}

// VisibleWindow returns the absolute indices of visible items inside
// the current scroll window, plus whether items exist above or below
// it.
func (m *Menu) VisibleWindow() (window []int, above, below bool) {
	max := m.MaxVisible
	if max <= 0 {
		max = DefaultMaxVisible
	}
	visible := make([]int, 0, len(m.Items))
	for i, item := range m.Items {
		if item.Visible {
			visible = append(visible, i)
		}
	}
	start := 0
	for i, idx := range visible {
		if idx >= m.Offset {
			start = i
			break
		}
	}
	end := start + max
	if end > len(visible) {
		end = len(visible)
	}
	return visible[start:end], start > 0, end < len(visible)
}
