package pnode

import "testing"

// indexSet walks every node reachable from root (via Next and, for
// has-alt tags, Alt) and returns the set of indices seen.
func indexSet(root *Node) map[int]bool {
	seen := map[int]bool{}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || seen[n.Index] {
			return
		}
		seen[n.Index] = true
		walk(n.Next)
		if HasAlt(n.Code) {
			walk(n.Alt)
		}
	}
	walk(root)
	return seen
}

func TestIndicesAreExactlyOneToN(t *testing.T) {
	a := NewChar('a')
	b := NewChar('b')
	c := NewChar('c')
	ab := Concat(a, b, 0)
	abc := Concat(ab, c, 0)

	seen := indexSet(abc)
	if len(seen) != abc.Index {
		t.Fatalf("expected %d reachable nodes, got %d", abc.Index, len(seen))
	}
	for i := 1; i <= abc.Index; i++ {
		if !seen[i] {
			t.Fatalf("index %d not reachable from root", i)
		}
	}
}

func TestConcatShiftsLeftIndicesAndRelinks(t *testing.T) {
	l := NewChar('x')
	r := NewChar('y')
	lIndexBefore := l.Index

	root := Concat(l, r, 0)

	if l.Index != lIndexBefore+r.Index {
		t.Fatalf("l.Index = %d, want %d", l.Index, lIndexBefore+r.Index)
	}
	if root.Next != r {
		t.Fatalf("dangling successor of l was not relinked to r")
	}
}

func TestConcatBumpsArbnoYCounter(t *testing.T) {
	body := NewChar('a')
	y := &Node{Code: CodeArbnoY, NatLit: 5}
	x := &Node{Code: CodeArbnoX, Alt: body}
	// Fabricate a minimal Arbno-complex shape: x -> body -> y -> x (cycle),
	// the cycle pattern.Arbno wires minus its R_Enter head, to exercise
	// the "found in L" counter bump during Concat.
	SetSuccessor(body, y)
	y.Next = x
	y.Index = body.Index + 1
	x.Index = body.Index + 2

	r := NewChar('z')
	Concat(x, r, 7)

	if y.NatLit != 12 {
		t.Fatalf("Arbno_Y counter = %d, want 12 (5+7)", y.NatLit)
	}
}

func TestAlternateIndexInvariant(t *testing.T) {
	l := NewString("left")
	r := NewString("right")
	lSize := l.Index

	alt := Alternate(l, r)

	if alt.Index-r.Index != lSize {
		t.Fatalf("index(alt) - index(r) = %d, want %d", alt.Index-r.Index, lSize)
	}
}

func TestAlternateEmptyLeft(t *testing.T) {
	r := NewChar('z')
	alt := Alternate(nil, r)
	if alt.Alt != r || alt.Index != r.Index+1 {
		t.Fatalf("Alternate(nil, r) malformed: %+v", alt)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	orig := NewString("hi")
	cp := Copy(orig)

	if cp == orig {
		t.Fatalf("Copy returned the same node")
	}
	if cp.Index != orig.Index || cp.Str != orig.Str {
		t.Fatalf("copy diverged from original: %+v vs %+v", cp, orig)
	}
}

func TestArbnoSimpleCycles(t *testing.T) {
	body := NewChar('a')
	s := ArbnoSimple(body)

	if s.Alt != body {
		t.Fatalf("Arbno_S.Alt should point at the body")
	}
	if body.Next != s {
		t.Fatalf("body's dangling successor should loop back to Arbno_S")
	}
}

func TestBracketEmptyBody(t *testing.T) {
	e := &Node{Code: CodeREnter}
	a := &Node{Code: CodeAssignImm}
	root := Bracket(e, nil, a)

	if root.Next != a || root.Index != 2 || a.Index != 1 {
		t.Fatalf("Bracket with empty body malformed: e=%+v a=%+v", e, a)
	}
}
