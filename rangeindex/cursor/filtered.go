package cursor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wbrown/rangeindex/planner"
)

var (
	// ErrClosed is returned/reported when a Filtered cursor is used after
	// Close.
	ErrClosed = errors.New("rangeindex/cursor: cursor used after close")
	// ErrNilUnderlying is returned by NewFiltered when underlying is nil.
	ErrNilUnderlying = errors.New("rangeindex/cursor: underlying cursor is nil")
	// ErrNilMatches is returned by NewFiltered when matches is nil.
	ErrNilMatches = errors.New("rangeindex/cursor: match array is nil")
)

// Options controls Filtered's behavior. The zero value is the default.
type Options struct {
	// MaxColumns caps how many leading entries of the match array Filtered
	// enforces; entries beyond it are dropped rather than intersected into
	// the cursor's seeking, mirroring planner.Options.MaxColumns's "leading
	// N columns only" cap at the cursor layer. 0 means "enforce the full
	// match array NewFiltered was given".
	MaxColumns int
}

// DefaultOptions returns the Options NewFiltered uses when the caller has
// no reason to cap the match array; currently equivalent to the zero value.
func DefaultOptions() Options {
	return Options{}
}

// state tags which labeled sub-step of the algorithm Filtered.run should
// resume at. A tag-and-loop translation is used instead of nested
// booleans, because the algorithm returns to strictly earlier phases
// after side effects (e.g. a roll detected at column j sends control back
// to "check this column" at an earlier ordinal).
type state int

const (
	stStartColumn state = iota
	stCheckRoll
	stUpdateThis
	stCheckThis
)

// Filtered drives an underlying Seekable so that it yields exactly the
// rows whose key tuple lies in the product of the per-column intervals in
// matches, in index order, doing work bounded by the output size plus the
// number of roll-over transitions rather than the size of the table.
// Columns beyond len(matches) are unconstrained and traversed naturally by
// the underlying cursor.
type Filtered struct {
	underlying Seekable
	matches    []*planner.ColumnMatch

	started bool
	closed  bool
	lastErr error

	// unsatisfiable is true when any column's interval is already known
	// empty at construction time, in which case the product of intervals
	// is empty and no row can ever satisfy it.
	unsatisfiable bool

	// currentKey caches the last-observed values of the first k key
	// columns, where k = len(matches).
	currentKey []any
}

// NewFiltered wraps underlying with the per-column match array, subject to
// opts. underlying and matches must be non-nil; a nil matches is a
// zero-column (k=0) filter expressed by passing an empty, non-nil slice
// instead. Pass DefaultOptions() for the common case of enforcing the full
// match array.
func NewFiltered(underlying Seekable, matches []*planner.ColumnMatch, opts Options) (*Filtered, error) {
	if underlying == nil {
		return nil, ErrNilUnderlying
	}
	if matches == nil {
		return nil, ErrNilMatches
	}
	if opts.MaxColumns > 0 && opts.MaxColumns < len(matches) {
		matches = matches[:opts.MaxColumns]
	}
	f := &Filtered{
		underlying: underlying,
		matches:    matches,
		currentKey: make([]any, len(matches)),
	}
	for _, m := range matches {
		if m.Interval.Empty {
			f.unsatisfiable = true
			break
		}
	}
	return f, nil
}

// MoveNext advances to the next row satisfying every column's interval,
// returning false once no such row remains. After it returns false once,
// subsequent calls remain false without advancing the underlying cursor.
func (f *Filtered) MoveNext() bool {
	if f.closed {
		f.lastErr = ErrClosed
		return false
	}

	if f.unsatisfiable {
		return false
	}

	k := len(f.matches)
	if k == 0 {
		return f.underlying.MoveNext()
	}

	if !f.started {
		f.started = true
		return f.run(stStartColumn, 0)
	}

	if !f.underlying.MoveNext() {
		return false
	}
	return f.run(stCheckRoll, k-1)
}

// run executes the labeled state machine from (state, j) until it either
// emits a row (returns true) or determines the cursor is exhausted
// (returns false).
func (f *Filtered) run(st state, j int) bool {
	k := len(f.matches)

	for {
		if j < 0 {
			return false
		}

		switch st {
		case stStartColumn:
			m := f.matches[j]
			if m.Interval.HasLower {
				f.currentKey[j] = m.Interval.Lower
				prefix := append([]any(nil), f.currentKey[:j+1]...)
				if !f.underlying.SeekTo(j+1, prefix, m.Interval.LowerExclusive) {
					return false
				}
				st = stCheckRoll
				continue
			}
			// Column 0 is only started on the first call, before the
			// underlying cursor has been positioned on any row.
			if j == 0 && !f.underlying.MoveNext() {
				return false
			}
			st = stUpdateThis
			continue

		case stCheckRoll:
			rolledAt := -1
			for i := 0; i < j; i++ {
				v := f.underlying.GetColumnValue(i)
				if f.matches[i].Order(v, f.currentKey[i]) != 0 {
					f.currentKey[i] = v
					rolledAt = i
					break
				}
			}
			if rolledAt >= 0 {
				j = rolledAt
				st = stCheckThis
				continue
			}
			st = stUpdateThis
			continue

		case stUpdateThis:
			f.currentKey[j] = f.underlying.GetColumnValue(j)
			st = stCheckThis
			continue

		case stCheckThis:
			m := f.matches[j]
			violated := false
			if m.Interval.HasUpper {
				c := m.Order(f.currentKey[j], m.Interval.Upper)
				if c > 0 || (c == 0 && m.Interval.UpperExclusive) {
					violated = true
				}
			}

			if violated {
				ok := f.underlying.SeekTo(j, append([]any(nil), f.currentKey[:j]...), true)
				j--
				if !ok {
					return false
				}
				st = stCheckRoll
				continue
			}

			if j == k-1 {
				return true
			}
			j++
			st = stStartColumn
			continue
		}
	}
}

// Current returns the current row. Only valid after MoveNext returned
// true.
func (f *Filtered) Current() Row {
	if f.closed {
		return nil
	}
	return f.underlying.Current()
}

// Reset rewinds the underlying cursor and clears the started flag; cached
// key values are invalidated implicitly by the next seek.
func (f *Filtered) Reset() {
	if f.closed {
		return
	}
	f.underlying.Reset()
	f.started = false
}

// Close releases the underlying cursor. After Close, MoveNext returns false
// and records ErrClosed (see LastErr); Current returns nil and Reset does
// nothing, and neither of them records an error.
func (f *Filtered) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.underlying.Close()
}

// LastErr returns the most recent error recorded by this cursor (for
// example ErrClosed after Close), or nil if none.
func (f *Filtered) LastErr() error {
	return f.lastErr
}

// String renders the cursor's internal state for diagnostics: the per-
// column matches it enforces and, once started, the last-observed key
// values those columns are currently positioned at.
func (f *Filtered) String() string {
	cols := make([]string, len(f.matches))
	for i, m := range f.matches {
		cols[i] = m.String()
	}
	switch {
	case f.closed:
		return fmt.Sprintf("Filtered(closed, columns=[%s])", strings.Join(cols, ", "))
	case f.unsatisfiable:
		return fmt.Sprintf("Filtered(unsatisfiable, columns=[%s])", strings.Join(cols, ", "))
	case !f.started:
		return fmt.Sprintf("Filtered(not started, columns=[%s])", strings.Join(cols, ", "))
	default:
		key := make([]string, len(f.currentKey))
		for i, v := range f.currentKey {
			key[i] = fmt.Sprintf("%v", v)
		}
		return fmt.Sprintf("Filtered(key=[%s], columns=[%s])", strings.Join(key, ", "), strings.Join(cols, ", "))
	}
}
