package app

import "rag-assessment/internal/domain"

// Navigator is the (section, question) cursor over a definition. It has no
// finished state and never consults the ledger; callers gate Advance.
type Navigator struct {
	counts []int
	pos    domain.Position
}

// NewNavigator sizes the cursor from the per-section question counts of def.
func NewNavigator(def domain.Definition) *Navigator {
	counts := make([]int, len(def.Sections))
	for i, s := range def.Sections {
		counts[i] = len(s.Questions)
	}
	return &Navigator{counts: counts}
}

// Position returns the current cursor.
func (n *Navigator) Position() domain.Position {
	return n.pos
}

// Advance moves to the next question, crossing into the next section when
// needed. It reports false at the last question of the last section.
func (n *Navigator) Advance() bool {
	if len(n.counts) == 0 {
		return false
	}
	if n.pos.Question < n.counts[n.pos.Section]-1 {
		n.pos.Question++
		return true
	}
	if n.pos.Section < len(n.counts)-1 {
		n.pos.Section++
		n.pos.Question = 0
		return true
	}
	return false
}

// Retreat moves to the previous question, landing on the last question of the
// previous section when crossing a boundary. It reports false at (0,0).
func (n *Navigator) Retreat() bool {
	if n.pos.Question > 0 {
		n.pos.Question--
		return true
	}
	if n.pos.Section > 0 {
		n.pos.Section--
		n.pos.Question = n.counts[n.pos.Section] - 1
		return true
	}
	return false
}

// JumpToSection moves to the first question of section index. Out-of-range
// indexes leave the cursor untouched and report false.
func (n *Navigator) JumpToSection(index int) bool {
	if index < 0 || index >= len(n.counts) {
		return false
	}
	n.pos = domain.Position{Section: index}
	return true
}

// AtStart reports whether the cursor is on the first question.
func (n *Navigator) AtStart() bool {
	return n.pos.Section == 0 && n.pos.Question == 0
}

// AtEnd reports whether the cursor is on the last question of the last section.
func (n *Navigator) AtEnd() bool {
	if len(n.counts) == 0 {
		return true
	}
	last := len(n.counts) - 1
	return n.pos.Section == last && n.pos.Question == n.counts[last]-1
}

// Reset returns the cursor to (0,0).
func (n *Navigator) Reset() {
	n.pos = domain.Position{}
}
