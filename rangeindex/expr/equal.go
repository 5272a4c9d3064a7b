package expr

// Equal decides whether x and y represent the same computation, treating
// unify.A and unify.B as the same parameter wherever either appears,
// regardless of pointer identity. This is the single hook that lets
// row.X in one lambda match row'.X in another: a column's stored
// extraction expression is bound to the column's own row placeholder, a
// predicate subtree is bound to the caller's row variable, and Equal
// unifies the two placeholders while comparing the rest structurally.
func Equal(x, y Node, unify UnifyPair) bool {
	if x == nil && y == nil {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	// Unification: if both sides are (possibly different) unify
	// parameters, they're considered equal outright.
	if px, ok := x.(*Param); ok {
		if py, ok := y.(*Param); ok {
			if unify.has(px) && unify.has(py) {
				return true
			}
		}
	}

	if x.Kind() != y.Kind() {
		return false
	}

	switch xn := x.(type) {
	case *Const:
		yn := y.(*Const)
		return xn.equalValue(yn)

	case *Param:
		yn := y.(*Param)
		// Neither side is a unify participant (handled above): equal iff
		// the same declared parameter.
		return xn == yn

	case *Member:
		yn := y.(*Member)
		return xn.Name == yn.Name &&
			xn.OwnerType == yn.OwnerType &&
			xn.MemberType == yn.MemberType &&
			Equal(xn.Receiver, yn.Receiver, unify)

	case *Index:
		yn := y.(*Index)
		return Equal(xn.Receiver, yn.Receiver, unify) && Equal(xn.Arg, yn.Arg, unify)

	case *Call:
		yn := y.(*Call)
		if xn.Method != yn.Method || xn.DeclType != yn.DeclType {
			return false
		}
		if !Equal(xn.Receiver, yn.Receiver, unify) {
			return false
		}
		return equalNodeSlices(xn.Args, yn.Args, unify)

	case *Unary:
		yn := y.(*Unary)
		return xn.Op == yn.Op && Equal(xn.Operand, yn.Operand, unify)

	case *Binary:
		yn := y.(*Binary)
		return xn.Op == yn.Op &&
			Equal(xn.Left, yn.Left, unify) &&
			Equal(xn.Right, yn.Right, unify)

	case *Lambda:
		yn := y.(*Lambda)
		if xn.ReturnType != yn.ReturnType || len(xn.Params) != len(yn.Params) {
			return false
		}
		// Lambdas bring their own parameters into scope; the body is
		// compared with the unification pair replaced by the two lambdas'
		// first parameters, so the outer pair does not apply inside the
		// body. Only a single unify pair is modeled (per spec.md), so a
		// lambda with more than one parameter is only unified on its first.
		inner := unify
		if len(xn.Params) > 0 {
			inner = UnifyPair{A: xn.Params[0], B: yn.Params[0]}
		}
		return Equal(xn.Body, yn.Body, inner)

	case *New:
		yn := y.(*New)
		if xn.DeclType != yn.DeclType {
			return false
		}
		return equalNodeSlices(xn.Args, yn.Args, unify)

	case *NewArray:
		yn := y.(*NewArray)
		return xn.ElemType == yn.ElemType && Equal(xn.Length, yn.Length, unify)

	case *Default:
		yn := y.(*Default)
		return xn.DeclType == yn.DeclType

	default:
		// Unsupported kind: documented fallback to referential identity.
		return x == y
	}
}

func equalNodeSlices(xs, ys []Node, unify UnifyPair) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i], unify) {
			return false
		}
	}
	return true
}
