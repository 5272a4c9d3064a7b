package storage

import "github.com/wbrown/rangeindex/cursor"

// recordingTracer captures every event it observes, for tests that assert
// a table actually drives its installed Tracer rather than silently
// ignoring it.
type recordingTracer struct {
	seeks []string
	rows  []cursor.Row
}

func (r *recordingTracer) Seek(index string, prefixLen int, key []any, following, ok bool) {
	r.seeks = append(r.seeks, index)
}

func (r *recordingTracer) Emit(row cursor.Row) {
	r.rows = append(r.rows, row)
}
