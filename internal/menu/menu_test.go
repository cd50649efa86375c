package menu

import "testing"

func buildMenu(t *testing.T) *Menu {
	t.Helper()
	m := New("Test")
	m.AddSeparator("Section")
	m.AddAction("one", "One", nil)
	m.AddAction("two", "Two", nil)
	m.AddItem(&Item{Key: "off", Title: "Disabled", Kind: KindAction, Visible: true})
	m.AddAction("three", "Three", nil)
	return m
}

func TestAddItemSkipsSeparatorSelection(t *testing.T) {
	m := buildMenu(t)
	if m.Selected != 1 {
		t.Fatalf("expected selection on first enabled item, got %d", m.Selected)
	}
}

func TestMoveSelectionSkipsDisabledAndWraps(t *testing.T) {
	m := buildMenu(t)
	m.MoveSelection(1)
	if m.Selected != 2 {
		t.Fatalf("expected index 2, got %d", m.Selected)
	}
	m.MoveSelection(1)
	if m.Selected != 4 {
		t.Fatalf("expected disabled item skipped, got %d", m.Selected)
	}
	m.MoveSelection(1)
	if m.Selected != 1 {
		t.Fatalf("expected wrap to first selectable, got %d", m.Selected)
	}
	m.MoveSelection(-1)
	if m.Selected != 4 {
		t.Fatalf("expected wrap to last selectable, got %d", m.Selected)
	}
}

func TestMoveSelectionNoSelectableItemsIsNoOp(t *testing.T) {
	m := New("Empty")
	m.AddSeparator("")
	m.AddItem(&Item{Key: "hidden", Title: "Hidden", Kind: KindAction})
	m.Selected, m.Offset = 0, 0
	for i := 0; i < 5; i++ {
		m.MoveSelection(1)
		m.MoveSelection(-1)
	}
	if m.Selected != 0 || m.Offset != 0 {
		t.Fatalf("expected selection/offset unchanged, got %d/%d", m.Selected, m.Offset)
	}
}

func TestScrollOffsetInvariant(t *testing.T) {
	m := New("Long")
	m.MaxVisible = 3
	for i := 0; i < 10; i++ {
		m.AddAction("k", "Item", nil)
	}
	for i := 0; i < 25; i++ {
		m.MoveSelection(1)
		if m.Offset > m.Selected || m.Selected >= m.Offset+m.MaxVisible {
			t.Fatalf("invariant broken: offset=%d selected=%d", m.Offset, m.Selected)
		}
	}
	for i := 0; i < 25; i++ {
		m.MoveSelection(-1)
		if m.Offset > m.Selected || m.Selected >= m.Offset+m.MaxVisible {
			t.Fatalf("invariant broken: offset=%d selected=%d", m.Offset, m.Selected)
		}
	}
}

func TestSelectableAtCountsVisibleEnabledOnly(t *testing.T) {
	m := buildMenu(t)
	item, idx, ok := m.SelectableAt(3)
	if !ok || item.Key != "three" || idx != 4 {
		t.Fatalf("expected third selectable to be %q at 4, got %v %d %v", "three", item, idx, ok)
	}
	if _, _, ok := m.SelectableAt(4); ok {
		t.Fatalf("expected out-of-range n rejected")
	}
	if _, _, ok := m.SelectableAt(0); ok {
		t.Fatalf("expected n=0 rejected")
	}
}

func TestSubmenuParentLink(t *testing.T) {
	parent := New("Parent")
	child := New("Child")
	parent.AddSubmenu("child", "Child", child)
	if child.Parent() != parent {
		t.Fatalf("expected parent back-reference recorded")
	}
}

func TestResetCursor(t *testing.T) {
	m := buildMenu(t)
	m.Selected = 4
	m.Offset = 2
	m.ResetCursor()
	if m.Selected != 1 || m.Offset != 0 {
		t.Fatalf("expected cursor on first selectable with offset 0, got %d/%d", m.Selected, m.Offset)
	}
}

func TestVisibleWindowIndicators(t *testing.T) {
	m := New("Long")
	m.MaxVisible = 3
	for i := 0; i < 6; i++ {
		m.AddAction("k", "Item", nil)
	}
	window, above, below := m.VisibleWindow()
	if len(window) != 3 || above || !below {
		t.Fatalf("expected window of 3 with items below, got %v above=%v below=%v", window, above, below)
	}
	for i := 0; i < 5; i++ {
		m.MoveSelection(1)
	}
	window, above, below = m.VisibleWindow()
	if len(window) != 3 || !above || below {
		t.Fatalf("expected window at bottom with items above, got %v above=%v below=%v", window, above, below)
	}
}

func TestMatchFilter(t *testing.T) {
	item := &Item{Key: "health", Title: "Health Check", Kind: KindAction, Enabled: true, Visible: true}
	if !MatchFilter(item, "hlth") {
		t.Fatalf("expected fuzzy match")
	}
	if !MatchFilter(item, "check") {
		t.Fatalf("expected substring match")
	}
	if MatchFilter(item, "zzz") {
		t.Fatalf("expected no match")
	}
	sep := &Item{Key: "sep", Title: "Section", Kind: KindSeparator, Visible: true}
	if MatchFilter(sep, "sec") {
		t.Fatalf("expected separator excluded under filter")
	}
}

func TestBestMatchIndexPrefersExactThenPrefix(t *testing.T) {
	m := New("Root")
	m.AddAction("status", "Status", nil)
	m.AddAction("start", "Start Task", nil)
	if idx := m.BestMatchIndex("start task"); idx != 1 {
		t.Fatalf("expected exact title match at 1, got %d", idx)
	}
	if idx := m.BestMatchIndex("sta"); idx != 0 {
		t.Fatalf("expected first prefix match at 0, got %d", idx)
	}
	if idx := m.BestMatchIndex("zzz"); idx != -1 {
		t.Fatalf("expected -1 for no candidates, got %d", idx)
	}
}
