package state

// Step moves the cursor by delta, skipping disabled items. With no cursor,
// stepping down lands on the first enabled item and stepping up on the last.
func (l *Level) Step(delta int) bool {
	if len(l.Items) == 0 || delta == 0 {
		return false
	}
	old := l.Cursor
	pos := l.Cursor
	dir := 1
	if delta < 0 {
		dir = -1
	}
	if pos < 0 {
		if dir > 0 {
			pos = -1
		} else {
			pos = len(l.Items)
		}
	}
	remaining := delta * dir
	for remaining > 0 {
		next := pos + dir
		for next >= 0 && next < len(l.Items) && l.Items[next].Disabled {
			next += dir
		}
		if next < 0 || next >= len(l.Items) {
			break
		}
		pos = next
		remaining--
	}
	if pos < 0 || pos >= len(l.Items) {
		return false
	}
	l.Cursor = pos
	return l.Cursor != old
}

// Home moves to the first enabled item.
func (l *Level) Home() bool {
	l.Cursor = -1
	return l.Step(1)
}

// End moves to the last enabled item.
func (l *Level) End() bool {
	l.Cursor = -1
	return l.Step(-1)
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < 0 {
		return
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
}

// Visible returns the window of items starting at the viewport offset.
func (l *Level) Visible(maxVisible int) []int {
	if len(l.Items) == 0 {
		return nil
	}
	start := l.ViewportOffset
	end := len(l.Items)
	if maxVisible > 0 && start+maxVisible < end {
		end = start + maxVisible
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}
