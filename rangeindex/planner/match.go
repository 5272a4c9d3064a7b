package planner

import (
	"errors"
	"fmt"

	"github.com/wbrown/rangeindex/expr"
	"github.com/wbrown/rangeindex/index"
	"github.com/wbrown/rangeindex/interval"
)

// ErrNonLiteralOperand is returned by Attribute when opts.RejectNonLiteralOperands
// is true and some term's operand structurally matches a column's
// extractor but isn't an expr.Const, so no bound can be folded from it.
var ErrNonLiteralOperand = errors.New("rangeindex/planner: predicate operand is not a literal constant")

// ColumnMatch is the accumulated interval restriction on one index column,
// built up as predicate terms are attributed to it during planning. The
// zero-value Interval is the universal interval, so a column with no
// attributed predicates is simply unconstrained.
type ColumnMatch struct {
	Interval interval.Boxed
	Column   *index.ColumnDescriptor
	Order    interval.Comparator[any]
}

func newColumnMatch(c *index.ColumnDescriptor) *ColumnMatch {
	return &ColumnMatch{
		Interval: interval.Universe[any](),
		Column:   c,
		Order:    c.Order,
	}
}

func (m *ColumnMatch) String() string {
	if m.Column == nil {
		return m.Interval.String()
	}
	return fmt.Sprintf("%s=%s", m.Column, m.Interval)
}

// Options controls planner behavior.
type Options struct {
	// MaxColumns caps how many leading index columns the planner will
	// attempt to attribute terms to; 0 means "all columns of the index".
	MaxColumns int
	// RejectNonLiteralOperands, when true (the default), makes Attribute
	// return ErrNonLiteralOperand as soon as it finds a term whose operand
	// structurally matches some column but isn't an expr.Const (so no
	// bound can be folded from it at plan time). When false, such a term
	// is instead left in the returned remaining slice, for callers that
	// pre-resolve correlated operands into expr.Const across repeated
	// Attribute calls rather than failing planning outright.
	RejectNonLiteralOperands bool
}

// DefaultOptions returns the Options used when none are supplied.
func DefaultOptions() Options {
	return Options{RejectNonLiteralOperands: true}
}

// matchPredicate decodes term against slot's column and, on success, folds
// the resulting bound into slot.Interval. It reports matched=false for
// predicates that don't recognize this column or a top-level "!=". For an
// operand that structurally matches this column but isn't an expr.Const,
// it reports matched=false, nonLiteral=true instead of folding a bound,
// since only literal bounds can be folded into an interval at plan time;
// the caller decides via opts.RejectNonLiteralOperands whether that is a
// hard failure or simply left for the post-filter.
func matchPredicate(slot *ColumnMatch, rowVar *expr.Param, term expr.Node, opts Options) (matched, nonLiteral bool) {
	cc, ok := decode(slot.Column, rowVar, term, true)
	if !ok {
		return false, false
	}

	lit, isConst := cc.operand.(*expr.Const)
	if !isConst {
		return false, true
	}

	var bound interval.Boxed
	switch {
	case cc.isEquality:
		bound = interval.SinglePoint[any](lit.Value)
	default:
		bound = interval.OneSidedBound[any](lit.Value, cc.isExclusive, cc.isUpperBound)
	}

	slot.Interval = slot.Interval.Intersect(bound, slot.Order)
	return true, false
}

// Attribute walks terms against idx's columns in order, attributing each
// term to at most one column (the leftmost it matches) and folding its
// interval in. It returns the per-column match array plus the terms left
// unconsumed for the caller to apply as a post-filter. A term that matches
// no column is left intact in remaining, in its original relative order.
//
// idx must be ordered: an unordered index (idx.Ordered == false, e.g. one
// built over a storage.HashTable's columns) has no column a range bound
// could ever be seeked against, so Attribute refuses it outright, returning
// a nil match array and every term unattributed.
//
// When a term structurally matches some column's extractor but carries a
// non-literal operand, Attribute's response depends on
// opts.RejectNonLiteralOperands: true (the default) reports
// ErrNonLiteralOperand, since the caller likely expected that term to be
// indexable; false instead leaves it in remaining, for callers that
// pre-resolve correlated operands into expr.Const across repeated
// Attribute calls rather than failing planning outright.
func Attribute(rowVar *expr.Param, terms []expr.Node, idx *index.TableIndex, opts Options) ([]*ColumnMatch, []expr.Node, error) {
	if !idx.Ordered {
		return nil, append([]expr.Node(nil), terms...), nil
	}

	n := idx.Len()
	if opts.MaxColumns > 0 && opts.MaxColumns < n {
		n = opts.MaxColumns
	}

	matches := make([]*ColumnMatch, n)
	for i := 0; i < n; i++ {
		matches[i] = newColumnMatch(idx.Columns[i])
	}

	var remaining []expr.Node
	for _, term := range terms {
		consumed := false
		sawNonLiteral := false
		for i := 0; i < n; i++ {
			if !matches[i].Column.Ordered() {
				continue
			}
			matched, nonLiteral := matchPredicate(matches[i], rowVar, term, opts)
			if matched {
				consumed = true
				break
			}
			if nonLiteral {
				sawNonLiteral = true
			}
		}
		if !consumed {
			if sawNonLiteral && opts.RejectNonLiteralOperands {
				return nil, nil, fmt.Errorf("%w: %v", ErrNonLiteralOperand, term)
			}
			remaining = append(remaining, term)
		}
	}

	return matches, remaining, nil
}
