// Package planner recognizes comparison predicates against a column's
// key-extraction expression (C4) and attributes AND-ed predicate terms to
// the columns of a chosen ordered index, folding each into an interval
// (C5).
package planner

import (
	"github.com/wbrown/rangeindex/expr"
	"github.com/wbrown/rangeindex/index"
)

// columnComparison is the normalized output of predicate recognition. It
// never leaves this package: matchPredicate consumes it directly.
type columnComparison struct {
	isEquality   bool
	isUpperBound bool // meaningful for inequalities: true = "<=/<"
	isExclusive  bool // meaningful for inequalities: strict inequality
	operand      expr.Node
}

// decode classifies e's top node against column (unified via rowVar) and
// normalizes it into a columnComparison. topLevel is false only for the
// recursive call made when unwrapping a logical Not, so that a bare
// top-level "!=" can still be rejected by the caller while "!(x != a)"
// (a nested "!=") is accepted as equality.
func decode(column *index.ColumnDescriptor, rowVar *expr.Param, e expr.Node, topLevel bool) (columnComparison, bool) {
	if u, ok := e.(*expr.Unary); ok && u.Op == expr.OpNot {
		inner, ok := decode(column, rowVar, u.Operand, false)
		if !ok {
			return columnComparison{}, false
		}
		// ¬(x <= a) is x > a; ¬(x = a) is x != a. Flipping both flags
		// covers both cases uniformly.
		inner.isExclusive = !inner.isExclusive
		inner.isUpperBound = !inner.isUpperBound
		if topLevel && inner.isEquality && inner.isExclusive {
			return columnComparison{}, false
		}
		return inner, true
	}

	b, ok := e.(*expr.Binary)
	if !ok {
		return columnComparison{}, false
	}

	cc := columnComparison{operand: b.Right}
	switch b.Op {
	case expr.OpEQ:
		cc.isEquality, cc.isExclusive = true, false
	case expr.OpNE:
		cc.isEquality, cc.isExclusive = true, true
	case expr.OpLT:
		cc.isUpperBound, cc.isExclusive = true, true
	case expr.OpLTE:
		cc.isUpperBound, cc.isExclusive = true, false
	case expr.OpGT:
		cc.isUpperBound, cc.isExclusive = false, true
	case expr.OpGTE:
		cc.isUpperBound, cc.isExclusive = false, false
	default:
		return columnComparison{}, false
	}

	if column.Matches(rowVar, b.Left) {
		// direction as classified above, operand = b.Right
	} else if column.Matches(rowVar, b.Right) {
		cc.isUpperBound = !cc.isUpperBound
		cc.operand = b.Left
	} else {
		return columnComparison{}, false
	}

	if topLevel && cc.isEquality && cc.isExclusive {
		// A literal "!=" at the top level is never an indexable
		// restriction: it's handed back to the caller as a post-filter.
		return columnComparison{}, false
	}

	return cc, true
}

// Decode is the exported form of decode, always at the top level. It is
// useful to callers (and tests) that want the normalized comparison
// without also folding it into an interval.
func Decode(column *index.ColumnDescriptor, rowVar *expr.Param, e expr.Node) (isEquality, isUpperBound, isExclusive bool, operand expr.Node, ok bool) {
	cc, ok := decode(column, rowVar, e, true)
	if !ok {
		return false, false, false, nil, false
	}
	return cc.isEquality, cc.isUpperBound, cc.isExclusive, cc.operand, true
}
