package storage

import (
	"log"

	"github.com/wbrown/rangeindex/cursor"
)

// Tracer observes seek and row-emission events against a cursor.Seekable
// backend. It is consumed only by the storage backends (MemoryTable,
// BadgerTable) and by cmd/rangedemo, never by cursor.Filtered itself,
// mirroring the teacher's separation between datalog/executor (no logging)
// and the opt-in datalog/annotations tracing wrapper.
type Tracer interface {
	// Seek reports one SeekTo call against the named table: the requested
	// prefix length, key prefix, following flag, and whether a row was
	// found.
	Seek(index string, prefixLen int, key []any, following bool, ok bool)
	// Emit reports a row positioned on by MoveNext or SeekTo.
	Emit(row cursor.Row)
}

// NullTracer discards every event. It is the default installed by
// NewMemoryTable and OpenBadgerTable until SetTracer is called.
type NullTracer struct{}

func (NullTracer) Seek(string, int, []any, bool, bool) {}
func (NullTracer) Emit(cursor.Row)                     {}

// LogTracer writes each event through a *log.Logger, the same
// fmt.Fprintf(os.Stderr, ...)-style diagnostic posture cmd/rangedemo uses
// for its own startup and usage errors.
type LogTracer struct {
	Logger *log.Logger
}

func (t *LogTracer) Seek(index string, prefixLen int, key []any, following bool, ok bool) {
	t.Logger.Printf("seek table=%s prefixLen=%d key=%v following=%v ok=%v", index, prefixLen, key, following, ok)
}

func (t *LogTracer) Emit(row cursor.Row) {
	t.Logger.Printf("emit %v", row)
}

// Traceable is implemented by backends that accept an optional Tracer.
// MemoryTable and BadgerTable both satisfy it; cursor.Seekable itself
// carries no tracing method, since not every backend needs one.
type Traceable interface {
	SetTracer(name string, t Tracer)
}
