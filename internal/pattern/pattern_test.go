package pattern_test

import (
	"testing"

	"github.com/hgweller/gopatmat/internal/charset"
	"github.com/hgweller/gopatmat/internal/pattern"
	"github.com/hgweller/gopatmat/internal/pnode"
)

func TestUninitialisedZeroValue(t *testing.T) {
	var p *pattern.Pattern
	if !p.Uninitialised() {
		t.Fatalf("zero Pattern should report Uninitialised")
	}
	if p.Root() != nil {
		t.Fatalf("zero Pattern should have a nil Root")
	}
	if p.StackDepth() != 0 {
		t.Fatalf("zero Pattern should have StackDepth 0")
	}
}

func TestLeafStackDepthsAreZero(t *testing.T) {
	for name, p := range map[string]*pattern.Pattern{
		"Succeed": pattern.Succeed(),
		"Fail":    pattern.Fail(),
		"Char":    pattern.Char('x'),
		"Str":     pattern.Str("abc"),
		"Pos":     pattern.Pos(3),
	} {
		if p.StackDepth() != 0 {
			t.Fatalf("%s: stackDepth = %d, want 0", name, p.StackDepth())
		}
	}
}

func TestArbnoSimpleForZeroDepthLeaf(t *testing.T) {
	p := pattern.Arbno(pattern.Char('a'))
	if p.StackDepth() != 0 {
		t.Fatalf("Arbno(Char) should take the simple path with StackDepth 0, got %d", p.StackDepth())
	}
}

func TestArbnoComplexForNonzeroDepthBody(t *testing.T) {
	inner := pattern.Bal('(', ')') // stackDepth 1, not eligible for the simple path
	p := pattern.Arbno(inner)
	if p.StackDepth() <= 0 {
		t.Fatalf("Arbno(Bal) should take the complex path with nonzero StackDepth, got %d", p.StackDepth())
	}
}

func TestArbnoComplexForIneligibleCode(t *testing.T) {
	// Bal has stackDepth 1 so it is already ineligible above; here the body
	// is Arb, whose ArbX root code is not a member of okForSimpleArbno at
	// all (Arb also has stackDepth 1, so either check rules it out).
	p := pattern.Arbno(pattern.Arb())
	if p.StackDepth() == 0 {
		t.Fatalf("Arbno(Arb) must take the complex path since Arb's body pushes its own stack entries")
	}
}

func TestConcatStackDepthIsSum(t *testing.T) {
	l := pattern.Bal('(', ')')  // depth 1
	r := pattern.BreakX(charset.FromString(",")) // depth 1
	p := pattern.Concat(l, r)
	if p.StackDepth() != l.StackDepth()+r.StackDepth() {
		t.Fatalf("Concat stackDepth = %d, want %d", p.StackDepth(), l.StackDepth()+r.StackDepth())
	}
}

func TestAlternateStackDepthIsMaxPlusOne(t *testing.T) {
	l := pattern.Char('a')     // depth 0
	r := pattern.Bal('(', ')') // depth 1
	p := pattern.Alternate(l, r)
	if p.StackDepth() != 2 {
		t.Fatalf("Alternate stackDepth = %d, want 2 (max(0,1)+1)", p.StackDepth())
	}
}

func TestCopyDoesNotAliasOriginal(t *testing.T) {
	orig := pattern.Str("hello")
	cp := orig.Copy()
	if cp.Root() == orig.Root() {
		t.Fatalf("Copy() returned a handle aliasing the same graph")
	}
}

func TestCloneSharesGraph(t *testing.T) {
	orig := pattern.Str("hello")
	cl := orig.Clone()
	if cl.Root() != orig.Root() {
		t.Fatalf("Clone() should share the same graph, got a different Root")
	}
	cl.Release()
}

func TestRpatBuildsNodeBeforeSet(t *testing.T) {
	var cell pattern.Cell
	ref := pattern.Rpat(&cell)
	if ref.Root() == nil {
		t.Fatalf("Rpat should build a node immediately, before Set")
	}
	cell.Set(pattern.Char('x'))
}

func TestConcatCopiesOperandsIndependently(t *testing.T) {
	leaf := pattern.Char('a')
	p := pattern.Concat(leaf, leaf)
	// Concat must copy both operands rather than share the same node twice;
	// a shared node would corrupt indices/links when walked as a graph.
	if p.Root() == leaf.Root() {
		t.Fatalf("Concat should not alias its operand's root")
	}
}

func TestAssignOnMatchAddsBracketDepth(t *testing.T) {
	var s string
	body := pattern.Char('a') // depth 0
	p := pattern.AssignOnMatch(body, pnode.NewStringSinkPointer(&s))
	if p.StackDepth() != body.StackDepth()+3 {
		t.Fatalf("AssignOnMatch stackDepth = %d, want %d", p.StackDepth(), body.StackDepth()+3)
	}
}

func TestFenceBracketAddsTwoToDepth(t *testing.T) {
	body := pattern.Str("x") // depth 0
	p := pattern.FenceBracket(body)
	if p.StackDepth() != body.StackDepth()+2 {
		t.Fatalf("FenceBracket stackDepth = %d, want %d", p.StackDepth(), body.StackDepth()+2)
	}
}
