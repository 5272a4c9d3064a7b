// Package cursor drives a seekable underlying cursor over an ordered
// index so that only the rows whose key tuple lies inside a computed
// per-column interval are yielded, in index order, without materializing
// the full table.
package cursor

// Row is an opaque handle to the cursor's current row; callers downcast it
// to whatever concrete row type their table produces.
type Row = any

// Seekable is the underlying ordered cursor contract this package drives.
// Implementations need not be safe for concurrent use.
type Seekable interface {
	// MoveNext advances one row in index order. It returns false iff past
	// the end.
	MoveNext() bool
	// Current returns the current row. Only valid after MoveNext or
	// SeekTo returned true.
	Current() Row
	// GetColumnValue reads the current row's i-th key column. Behavior is
	// undefined before the first successful MoveNext/SeekTo; an
	// out-of-range i is a programmer error and may panic.
	GetColumnValue(i int) any
	// SeekTo positions at the lower bound (following=false) or upper
	// bound (following=true) of key tuples whose first prefixLen
	// components equal keyValues[0:prefixLen]. It returns false iff no
	// such position exists, in which case the cursor is exhausted.
	// Returning true leaves the cursor positioned on a row; no further
	// MoveNext is needed.
	SeekTo(prefixLen int, keyValues []any, following bool) bool
	// Reset rewinds to before the first row.
	Reset()
	// Close releases any underlying resources.
	Close() error
}

// Optional, implemented by backends that can surface a run-time error
// alongside a false return from MoveNext/SeekTo (see spec §7,
// "underlying-cursor error").
type ErrSource interface {
	LastErr() error
}
