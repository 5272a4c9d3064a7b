package planner

import (
	"testing"

	"github.com/wbrown/rangeindex/expr"
	"github.com/wbrown/rangeindex/index"
)

func intCmp(a, b any) int { return a.(int) - b.(int) }

func priceColumn(rowVar *expr.Param) *index.ColumnDescriptor {
	return index.NewOrderedColumn(rowVar, rowVar, intCmp, false)
}

// colExpr builds "rowVar.Price"-shaped access for a column bound to a
// different row parameter than the predicate itself, exercising
// unification.
func colExpr(p *expr.Param) expr.Node {
	return &expr.Member{Receiver: p, Name: "Price", OwnerType: "Bar", MemberType: "int"}
}

func priceColumnMember(colRow *expr.Param) *index.ColumnDescriptor {
	return index.NewOrderedColumn(colRow, colExpr(colRow), intCmp, false)
}

func cst(v int) expr.Node { return &expr.Const{Value: v} }

func TestDecodeEqualityVariants(t *testing.T) {
	colRow := &expr.Param{Name: "row"}
	predRow := &expr.Param{Name: "row2"}
	col := priceColumnMember(colRow)

	xEqA := &expr.Binary{Op: expr.OpEQ, Left: colExpr(predRow), Right: cst(5)}
	aEqX := &expr.Binary{Op: expr.OpEQ, Left: cst(5), Right: colExpr(predRow)}
	notNotEq := &expr.Unary{Op: expr.OpNot, Operand: &expr.Binary{Op: expr.OpNE, Left: colExpr(predRow), Right: cst(5)}}
	doubleNotEq := &expr.Unary{Op: expr.OpNot, Operand: &expr.Unary{Op: expr.OpNot, Operand: xEqA}}

	for name, e := range map[string]expr.Node{
		"x==a":    xEqA,
		"a==x":    aEqX,
		"!(x!=a)": notNotEq,
		"!!(x==a)": doubleNotEq,
	} {
		isEq, _, isExcl, operand, ok := Decode(col, predRow, e)
		if !ok {
			t.Fatalf("%s: expected match", name)
		}
		if !isEq || isExcl {
			t.Errorf("%s: expected equality non-exclusive, got isEq=%v isExcl=%v", name, isEq, isExcl)
		}
		lit, isConst := operand.(*expr.Const)
		if !isConst || lit.Value != 5 {
			t.Errorf("%s: expected operand literal 5, got %v", name, operand)
		}
	}
}

func TestDecodeUpperBoundSymmetry(t *testing.T) {
	colRow := &expr.Param{Name: "row"}
	predRow := &expr.Param{Name: "row2"}
	col := priceColumnMember(colRow)

	xLtA := &expr.Binary{Op: expr.OpLT, Left: colExpr(predRow), Right: cst(10)}
	aGtX := &expr.Binary{Op: expr.OpGT, Left: cst(10), Right: colExpr(predRow)}

	for name, e := range map[string]expr.Node{"x<a": xLtA, "a>x": aGtX} {
		isEq, isUpper, isExcl, _, ok := Decode(col, predRow, e)
		if !ok || isEq || !isUpper || !isExcl {
			t.Errorf("%s: expected upper-exclusive bound, got eq=%v upper=%v excl=%v ok=%v", name, isEq, isUpper, isExcl, ok)
		}
	}
}

func TestDecodeTopLevelNotEqualFails(t *testing.T) {
	colRow := &expr.Param{Name: "row"}
	predRow := &expr.Param{Name: "row2"}
	col := priceColumnMember(colRow)

	e := &expr.Binary{Op: expr.OpNE, Left: colExpr(predRow), Right: cst(5)}
	_, _, _, _, ok := Decode(col, predRow, e)
	if ok {
		t.Errorf("expected top-level != to fail to match")
	}
}

func TestDecodeNotLTEIsGT(t *testing.T) {
	colRow := &expr.Param{Name: "row"}
	predRow := &expr.Param{Name: "row2"}
	col := priceColumnMember(colRow)

	e := &expr.Unary{Op: expr.OpNot, Operand: &expr.Binary{Op: expr.OpLTE, Left: colExpr(predRow), Right: cst(5)}}
	isEq, isUpper, isExcl, _, ok := Decode(col, predRow, e)
	if !ok || isEq || isUpper || !isExcl {
		t.Errorf("expected NOT(x<=a) to decode to lower-exclusive bound, got eq=%v upper=%v excl=%v ok=%v", isEq, isUpper, isExcl, ok)
	}
}

func TestDecodeNonLiteralOperandNoMatch(t *testing.T) {
	colRow := &expr.Param{Name: "row"}
	predRow := &expr.Param{Name: "row2"}
	otherVar := &expr.Param{Name: "other"}
	col := priceColumnMember(colRow)

	e := &expr.Binary{Op: expr.OpEQ, Left: colExpr(predRow), Right: otherVar}
	slot := newColumnMatch(col)
	matched, nonLiteral := matchPredicate(slot, predRow, e, DefaultOptions())
	if matched {
		t.Errorf("expected non-literal operand to report no match")
	}
	if !nonLiteral {
		t.Errorf("expected non-literal operand to be flagged as such")
	}
}

func TestDecodeUnrelatedExpressionNoMatch(t *testing.T) {
	colRow := &expr.Param{Name: "row"}
	predRow := &expr.Param{Name: "row2"}
	col := priceColumnMember(colRow)

	unrelated := &expr.Member{Receiver: predRow, Name: "Volume", OwnerType: "Bar", MemberType: "int"}
	e := &expr.Binary{Op: expr.OpEQ, Left: unrelated, Right: cst(5)}
	_, _, _, _, ok := Decode(col, predRow, e)
	if ok {
		t.Errorf("expected predicate on an unrelated member to not match the column")
	}
}
