// Package index models a table's ordered index as a sequence of column
// descriptors, each carrying its key-extraction expression and total
// order, over which the planner (C4/C5) attributes predicate terms.
package index

import (
	"fmt"

	"github.com/wbrown/rangeindex/expr"
	"github.com/wbrown/rangeindex/interval"
)

// ColumnDescriptor carries one column's key-extraction expression and its
// comparison semantics. Exactly one of Order or Equiv is non-nil: ordered
// columns (the only kind this core's cursor can restrict) carry a total
// order; unordered columns carry only an equivalence check, present for
// completeness but never usable by the filtered cursor (spec.md's
// hash-index non-goal).
type ColumnDescriptor struct {
	// RowParam is the placeholder standing for "a row of the table" inside
	// Extractor. Matches unify RowParam against the caller's own row
	// variable.
	RowParam *expr.Param
	// Extractor is the expression that, with RowParam substituted by an
	// actual row variable, computes the column's value.
	Extractor expr.Node

	Order interval.Comparator[any] // present iff ordered
	Equiv func(a, b any) bool      // present iff not ordered

	Unique bool
}

// NewOrderedColumn builds a ColumnDescriptor backed by a total order.
func NewOrderedColumn(rowParam *expr.Param, extractor expr.Node, order interval.Comparator[any], unique bool) *ColumnDescriptor {
	return &ColumnDescriptor{
		RowParam:  rowParam,
		Extractor: extractor,
		Order:     order,
		Unique:    unique,
	}
}

// NewUnorderedColumn builds a ColumnDescriptor backed only by equivalence.
func NewUnorderedColumn(rowParam *expr.Param, extractor expr.Node, equiv func(a, b any) bool, unique bool) *ColumnDescriptor {
	return &ColumnDescriptor{
		RowParam:  rowParam,
		Extractor: extractor,
		Equiv:     equiv,
		Unique:    unique,
	}
}

// Ordered reports whether this column carries a total order.
func (c *ColumnDescriptor) Ordered() bool {
	return c.Order != nil
}

// Matches reports whether e is structurally equal to this column's
// extraction expression, once RowParam is unified with rowVar.
func (c *ColumnDescriptor) Matches(rowVar *expr.Param, e expr.Node) bool {
	return expr.Equal(c.Extractor, e, expr.UnifyPair{A: c.RowParam, B: rowVar})
}

func (c *ColumnDescriptor) String() string {
	kind := "ordered"
	if !c.Ordered() {
		kind = "unordered"
	}
	return fmt.Sprintf("column(%s, unique=%v)", kind, c.Unique)
}

// TableIndex is an ordered sequence of columns forming one lexicographic
// key. Ordinals are 0..n-1; the flattened key has the lexicographic total
// order induced by column order.
type TableIndex struct {
	Columns []*ColumnDescriptor
	Ordered bool
}

// NewTableIndex builds a TableIndex, deriving Ordered from whether every
// column carries a total order (the in-scope case for this core).
func NewTableIndex(columns ...*ColumnDescriptor) *TableIndex {
	ordered := len(columns) > 0
	for _, c := range columns {
		if !c.Ordered() {
			ordered = false
			break
		}
	}
	return &TableIndex{Columns: columns, Ordered: ordered}
}

// Len returns the number of columns in the index.
func (t *TableIndex) Len() int {
	return len(t.Columns)
}
