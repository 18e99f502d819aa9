package editor

import "strings"

// Find selects the next occurrence of query after the cursor, wrapping past
// the end of the buffer. The match is case-sensitive and confined to one
// line. It reports whether a match was found.
func (m *Model) Find(query string) bool {
	q := []rune(query)
	if len(q) == 0 || strings.ContainsRune(query, '\n') {
		return false
	}

	start := pos{m.row, m.col}
	if m.HasSelection() {
		_, start = m.sel.ordered()
	}

	n := len(m.lines)
	for i := 0; i <= n; i++ {
		r := (start.row + i) % n
		from := 0
		if i == 0 {
			from = start.col
		}
		if c := indexRunes(m.lines[r], q, from); c >= 0 {
			m.Select(r, c, r, c+len(q))
			m.hist.breakGroup()
			return true
		}
	}
	return false
}

// CountMatches returns the number of non-overlapping occurrences of query.
func (m Model) CountMatches(query string) int {
	if query == "" {
		return 0
	}
	total := 0
	for _, line := range m.lines {
		total += strings.Count(string(line), query)
	}
	return total
}

func indexRunes(line, q []rune, from int) int {
	for i := max(0, from); i+len(q) <= len(line); i++ {
		match := true
		for j := range q {
			if line[i+j] != q[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
