package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/xonecas/tabpad/internal/textfile"
)

// UnsavedDiff returns the unified diff from saved to current. Both sides are
// labelled with name. It returns "" when the texts are equal.
func UnsavedDiff(name, saved, current string) string {
	if saved == current {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), saved, current)
	return fmt.Sprint(gotextdiff.ToUnified(name+" (disk)", name+" (buffer)", saved, edits))
}

// diffStat counts hunks and changed lines in a unified diff.
type diffStat struct {
	hunks   int
	added   int
	removed int
}

func parseDiffStat(diff string) diffStat {
	var st diffStat
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "@@ "):
			st.hunks++
		case strings.HasPrefix(line, "+++ "), strings.HasPrefix(line, "--- "):
		case strings.HasPrefix(line, "+"):
			st.added++
		case strings.HasPrefix(line, "-"):
			st.removed++
		}
	}
	return st
}

func (s diffStat) String() string {
	return fmt.Sprintf("%d hunks, +%d -%d", s.hunks, s.added, s.removed)
}

// showChanges opens a read-only tab with the diff between the current tab's
// file and its buffer. Untitled tabs are compared with an empty file.
func (m *Model) showChanges() {
	tab := m.tabs.Current()
	if tab == nil {
		return
	}
	saved := ""
	if tab.Path != "" {
		disk, err := textfile.Load(tab.Path)
		switch {
		case err == nil:
			saved = disk
		case errors.Is(err, fs.ErrNotExist):
		default:
			m.setError(err)
			return
		}
	}
	diff := UnsavedDiff(tab.Title, saved, tab.Editor.Value())
	if diff == "" {
		m.setStatus("No unsaved changes in " + tab.Title)
		return
	}
	m.tabs.AddReadOnly("changes: "+tab.Title, strings.TrimSuffix(diff, "\n"), "diff")
	m.setStatus("Unsaved changes: " + parseDiffStat(diff).String())
}
