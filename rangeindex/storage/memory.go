package storage

import (
	"fmt"
	"sort"

	"github.com/wbrown/rangeindex/cursor"
	"github.com/wbrown/rangeindex/interval"
)

// MemoryTable is an in-memory table of tuples, kept sorted by its leading
// key columns, that implements cursor.Seekable directly via binary search.
// It exists for tests and small fixtures; NewMemoryTable takes rows the
// caller has already built in memory, mirroring the teacher's
// testdata_builder.go in spirit rather than loading them from a file.
type MemoryTable struct {
	rows    [][]any
	compare []interval.Comparator[any]
	pos     int

	name   string
	tracer Tracer
}

// NewMemoryTable builds a MemoryTable from rows, sorting a defensive copy
// by compare (one comparator per leading key column; rows may carry extra,
// non-key trailing columns that compare ignores). rows is not retained.
func NewMemoryTable(rows [][]any, compare []interval.Comparator[any]) *MemoryTable {
	sorted := make([][]any, len(rows))
	for i, r := range rows {
		sorted[i] = append([]any(nil), r...)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return compareRows(sorted[i], sorted[j], compare) < 0
	})
	return &MemoryTable{rows: sorted, compare: compare, pos: -1, tracer: NullTracer{}}
}

// SetTracer installs t to observe this table's Seek/Emit events under name.
// A nil Tracer restores the default no-op.
func (m *MemoryTable) SetTracer(name string, t Tracer) {
	if t == nil {
		t = NullTracer{}
	}
	m.name, m.tracer = name, t
}

func compareRows(a, b []any, compare []interval.Comparator[any]) int {
	for i, cmp := range compare {
		if c := cmp(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func (m *MemoryTable) MoveNext() bool {
	if m.pos+1 >= len(m.rows) {
		m.pos = len(m.rows)
		return false
	}
	m.pos++
	m.tracer.Emit(m.Current())
	return true
}

func (m *MemoryTable) Current() cursor.Row {
	if m.pos < 0 || m.pos >= len(m.rows) {
		return nil
	}
	return m.rows[m.pos]
}

func (m *MemoryTable) GetColumnValue(i int) any {
	return m.rows[m.pos][i]
}

// SeekTo binary-searches for the lower (following=false) or upper
// (following=true) bound of rows whose first prefixLen columns equal
// keyValues[0:prefixLen], positioning there. It returns false if no row
// satisfies that bound.
func (m *MemoryTable) SeekTo(prefixLen int, keyValues []any, following bool) bool {
	target := keyValues[:prefixLen]
	idx := sort.Search(len(m.rows), func(i int) bool {
		return comparePrefix(m.rows[i][:prefixLen], target, m.compare[:prefixLen]) >= 0
	})
	if following {
		idx = sort.Search(len(m.rows), func(i int) bool {
			return comparePrefix(m.rows[i][:prefixLen], target, m.compare[:prefixLen]) > 0
		})
	}
	ok := idx < len(m.rows)
	if !ok {
		m.pos = len(m.rows)
	} else {
		m.pos = idx
	}
	m.tracer.Seek(m.name, prefixLen, target, following, ok)
	if !ok {
		return false
	}
	m.tracer.Emit(m.Current())
	return true
}

func comparePrefix(a, b []any, compare []interval.Comparator[any]) int {
	for i, cmp := range compare {
		if c := cmp(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func (m *MemoryTable) Reset() {
	m.pos = -1
}

func (m *MemoryTable) Close() error {
	return nil
}

// Len reports the row count, for tests that want to assert scan bounds
// without reimplementing the sort.
func (m *MemoryTable) Len() int {
	return len(m.rows)
}

func (m *MemoryTable) String() string {
	return fmt.Sprintf("MemoryTable(%d rows)", len(m.rows))
}
