package bytecode

import (
	"fmt"
	"sort"
)

// LineRun records that the instructions Start through End (inclusive) were
// all produced from the same source line.
type LineRun struct {
	Start int
	End   int
	Line  int
}

// String returns a formatted string representation of the run.
func (r LineRun) String() string {
	return fmt.Sprintf("%d-%d:%d", r.Start, r.End, r.Line)
}

// Contains returns true if the run covers the given instruction index.
func (r LineRun) Contains(index int) bool {
	return index >= r.Start && index <= r.End
}

// lineTable is a run-length encoded mapping from instruction index to source
// line. Closed runs are non-overlapping and ordered by Start; at most one run
// is open at a time.
type lineTable struct {
	runs []LineRun
	open LineRun
	has  bool
}

func (t *lineTable) add(index, line int) {
	if t.has && t.open.Line == line {
		t.open.End = index
		return
	}
	t.close()
	t.open = LineRun{Start: index, End: index, Line: line}
	t.has = true
}

func (t *lineTable) close() {
	if t.has {
		t.runs = append(t.runs, t.open)
		t.has = false
	}
}

func (t *lineTable) lineFor(index int) int {
	i := sort.Search(len(t.runs), func(i int) bool {
		return t.runs[i].End >= index
	})
	if i < len(t.runs) && t.runs[i].Contains(index) {
		return t.runs[i].Line
	}
	return 0
}
