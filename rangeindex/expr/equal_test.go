package expr

import "testing"

func TestEqualReflexiveAndSymmetric(t *testing.T) {
	x := &Param{Name: "row"}
	e := &Member{Receiver: x, Name: "Price", OwnerType: "Bar", MemberType: "int"}

	if !Equal(e, e, UnifyPair{}) {
		t.Errorf("expected reflexivity")
	}

	e2 := &Member{Receiver: x, Name: "Price", OwnerType: "Bar", MemberType: "int"}
	if Equal(e, e2, UnifyPair{}) != Equal(e2, e, UnifyPair{}) {
		t.Errorf("expected symmetry")
	}
}

func TestUnifiedLambdasEqual(t *testing.T) {
	x := &Param{Name: "x"}
	y := &Param{Name: "y"}

	// x -> x+4
	lx := &Binary{Op: OpAdd, Left: x, Right: &Const{Value: 4}}
	// y -> y+4
	ly := &Binary{Op: OpAdd, Left: y, Right: &Const{Value: 4}}

	if !Equal(lx, ly, UnifyPair{A: x, B: y}) {
		t.Errorf("expected x+4 and y+4 to be equal when unified on (x, y)")
	}
	if Equal(lx, ly, UnifyPair{}) {
		t.Errorf("expected x+4 and y+4 to be unequal without unification")
	}
}

func TestConstantFoldedDifferenceUnequal(t *testing.T) {
	x := &Param{Name: "x"}
	a := &Binary{Op: OpAdd, Left: x, Right: &Const{Value: 4}}
	b := &Binary{Op: OpAdd, Left: x, Right: &Const{Value: 5}}

	if Equal(a, b, UnifyPair{}) {
		t.Errorf("expected x+4 != x+5")
	}
}

func TestNilHandling(t *testing.T) {
	if !Equal(nil, nil, UnifyPair{}) {
		t.Errorf("nil == nil expected")
	}
	if Equal(nil, &Const{Value: 1}, UnifyPair{}) {
		t.Errorf("nil != non-nil expected")
	}
	if Equal(&Const{Value: 1}, nil, UnifyPair{}) {
		t.Errorf("non-nil != nil expected")
	}
}

func TestDifferentKindsUnequal(t *testing.T) {
	x := &Param{Name: "x"}
	if Equal(x, &Const{Value: 1}, UnifyPair{}) {
		t.Errorf("different kinds should never be equal")
	}
}

func TestMemberIdentityMetadata(t *testing.T) {
	x := &Param{Name: "row"}
	a := &Member{Receiver: x, Name: "Price", OwnerType: "Bar", MemberType: "int"}
	b := &Member{Receiver: x, Name: "Price", OwnerType: "Quote", MemberType: "int"}
	if Equal(a, b, UnifyPair{}) {
		t.Errorf("different owner types should not be equal even with the same member name")
	}
}

func TestCallIdentityAndArgs(t *testing.T) {
	x := &Param{Name: "row"}
	call1 := &Call{Receiver: x, Method: "GetPrice", DeclType: "Bar", Args: []Node{&Const{Value: 1}}}
	call2 := &Call{Receiver: x, Method: "GetPrice", DeclType: "Bar", Args: []Node{&Const{Value: 1}}}
	call3 := &Call{Receiver: x, Method: "GetPrice", DeclType: "Bar", Args: []Node{&Const{Value: 2}}}

	if !Equal(call1, call2, UnifyPair{}) {
		t.Errorf("expected identical calls to be equal")
	}
	if Equal(call1, call3, UnifyPair{}) {
		t.Errorf("expected calls with different args to be unequal")
	}
}

func TestUnsupportedKindFallsBackToIdentity(t *testing.T) {
	a := &weirdNode{id: 1}
	b := &weirdNode{id: 2}
	if Equal(a, b, UnifyPair{}) {
		t.Errorf("distinct unsupported-kind values should not be equal by fallback")
	}
	if !Equal(a, a, UnifyPair{}) {
		t.Errorf("identical unsupported-kind value should be equal to itself")
	}
}

// weirdNode is a Node implementation outside the switch in Equal, used to
// exercise the documented referential-identity fallback.
type weirdNode struct{ id int }

func (*weirdNode) Kind() Kind { return Kind(999) }
