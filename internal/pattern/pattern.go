// Package pattern implements the public pattern-construction surface
// of: a reference-counted handle wrapping a pnode graph,
// plus the combinator functions (Concat, Alternate, Arbno, Bal,
// Break, BreakX, Defer, Fence, ...) that build it.
//
// Character-class helpers, the pretty-printer, the test harness and
// the ergonomic operator-overload surface are external collaborators
// Non-goals) and live outside this package.
package pattern

import (
	"sync/atomic"

	"github.com/hgweller/gopatmat/internal/charset"
	"github.com/hgweller/gopatmat/internal/pnode"
)

// Pattern is a handle onto an immutable (once built) pnode graph. Go's
// garbage collector reclaims the graph once the last handle and every
// clone drop out of scope; refCount is kept anyway so Clone/Release
// match an explicit acquire/release contract rather than silently
// becoming no-ops.
type Pattern struct {
	root       *pnode.Node
	stackDepth int
	refCount   *int32
}

// Root implements pnode.PatternRef. A nil receiver (the zero
// *Pattern) reports no graph, matching Uninitialised rather than
// panicking, so a caller that forgets to build a pattern still gets
// Outcome UninitialisedPattern instead of a crash.
func (p *Pattern) Root() *pnode.Node {
	if p == nil {
		return nil
	}
	return p.root
}

// StackDepth implements pnode.PatternRef. It reports the number of
// history-stack entries one pass through this pattern's regions can
// consume, the figure the matcher uses for its dynamic capacity check
// before an Arbno_Y iteration or an Rpat recursion.
func (p *Pattern) StackDepth() int {
	if p == nil {
		return 0
	}
	return p.stackDepth
}

func wrap(root *pnode.Node, stackDepth int) *Pattern {
	rc := int32(1)
	return &Pattern{root: root, stackDepth: stackDepth, refCount: &rc}
}

// Clone returns a handle sharing the same underlying graph (refcount
// bump), not a deep copy. Use Copy for an independent graph.
func (p *Pattern) Clone() *Pattern {
	atomic.AddInt32(p.refCount, 1)
	return &Pattern{root: p.root, stackDepth: p.stackDepth, refCount: p.refCount}
}

// Release drops this handle's share of the refcount. It is a no-op on
// memory (the GC owns that); it exists so callers following an
// explicit acquire/release discipline have something real to call,
// and so refcount bugs (double release) are still observable: Release
// panics once the count drops below zero. It never clears the graph.
func (p *Pattern) Release() {
	if atomic.AddInt32(p.refCount, -1) < 0 {
		panic("pattern: Release called more times than Clone")
	}
}

// Copy returns a handle over an independent, index-equivalent clone of
// the graph. Every combinator below copies its operands before
// linking them in, so a Pattern already embedded in one larger
// pattern can still be reused verbatim in another.
func (p *Pattern) Copy() *Pattern {
	return wrap(pnode.Copy(p.root), p.stackDepth)
}

// Uninitialised reports whether this handle wraps no graph at all
// (the zero Pattern). Matching against one yields Outcome
// UninitialisedPattern.
func (p *Pattern) Uninitialised() bool { return p == nil || p.root == nil }

// --- leaf constructors ---

// Succeed always matches, consuming no input.
func Succeed() *Pattern { return wrap(pnode.NewLeaf(pnode.CodeSucceed), 0) }

// Fail never matches.
func Fail() *Pattern { return wrap(pnode.NewLeaf(pnode.CodeFail), 0) }

// Abort aborts the entire match outright, discarding all pending
// alternatives.
func Abort() *Pattern { return wrap(pnode.NewLeaf(pnode.CodeAbort), 0) }

// Rem matches the remainder of the subject, advancing the cursor to
// the end.
func Rem() *Pattern { return wrap(pnode.NewLeaf(pnode.CodeRem), 0) }

// Fence matches once, with no retry: backtracking cannot re-enter a
// Fence once past it.
func Fence() *Pattern { return wrap(pnode.NewLeaf(pnode.CodeFence), 1) }

// FenceBracket matches p with backtracking confined to p: once p
// succeeds and control passes beyond the Fence, no further
// alternative inside p is ever retried.
func FenceBracket(p *Pattern) *Pattern {
	body := pnode.Copy(p.root)
	e := &pnode.Node{Code: pnode.CodeREnter}
	a := &pnode.Node{Code: pnode.CodeFenceX}
	root := pnode.Bracket(e, body, a)
	return wrap(root, p.stackDepth+2)
}

// Char matches a single literal byte.
func Char(c byte) *Pattern { return wrap(pnode.NewChar(c), 0) }

// Str matches a literal string (possibly empty).
func Str(s string) *Pattern { return wrap(pnode.NewString(s), 0) }

// DeferStr matches whatever src currently yields, resolved fresh on
// every visit.
func DeferStr(src pnode.StringSource) *Pattern {
	return wrap(pnode.NewStringDeferred(src), 0)
}

// Any matches one byte drawn from set.
func Any(set charset.Set) *Pattern {
	return wrap(pnode.NewCharTest(pnode.CodeAny, pnode.NewCharSource(set)), 0)
}

// NotAny matches one byte not in set.
func NotAny(set charset.Set) *Pattern {
	return wrap(pnode.NewCharTest(pnode.CodeNotAny, pnode.NewCharSource(set)), 0)
}

// Span matches the longest run (one or more bytes) drawn from set.
func Span(set charset.Set) *Pattern {
	return wrap(pnode.NewCharTest(pnode.CodeSpan, pnode.NewCharSource(set)), 0)
}

// NSpan matches the longest run (zero or more bytes) drawn from set.
func NSpan(set charset.Set) *Pattern {
	return wrap(pnode.NewCharTest(pnode.CodeNSpan, pnode.NewCharSource(set)), 0)
}

// Break matches up to (not including) the next byte in set, or fails
// if set never occurs before the end of the subject.
func Break(set charset.Set) *Pattern {
	return wrap(pnode.NewCharTest(pnode.CodeBreak, pnode.NewCharSource(set)), 0)
}

// BreakX behaves like Break but, if the match ahead fails, also
// retries one byte further along for every later occurrence of set.
func BreakX(set charset.Set) *Pattern {
	return wrap(pnode.NewBreakX(pnode.NewCharSource(set)), 1)
}

// Bal matches the shortest run of balanced open/close bytes (at least
// one byte), never crossing an unbalanced close.
func Bal(open, close byte) *Pattern {
	return wrap(pnode.NewBal(open, close), 1)
}

// Pos matches (consuming no input) only at absolute cursor position n.
func Pos(n int) *Pattern { return wrap(pnode.NewPos(pnode.CodePos, pnode.NewNatSource(n)), 0) }

// RPos matches only at n bytes from the end of the subject.
func RPos(n int) *Pattern { return wrap(pnode.NewPos(pnode.CodeRPos, pnode.NewNatSource(n)), 0) }

// Tab matches (consuming input) up to absolute cursor position n.
func Tab(n int) *Pattern { return wrap(pnode.NewPos(pnode.CodeTab, pnode.NewNatSource(n)), 0) }

// RTab matches up to n bytes from the end of the subject.
func RTab(n int) *Pattern { return wrap(pnode.NewPos(pnode.CodeRTab, pnode.NewNatSource(n)), 0) }

// Len matches exactly n bytes, whatever they are.
func Len(n int) *Pattern { return wrap(pnode.NewPos(pnode.CodeLen, pnode.NewNatSource(n)), 0) }

// LenGetter matches exactly g.Get() bytes, resolved on every visit.
func LenGetter(g pnode.NaturalGetter) *Pattern {
	return wrap(pnode.NewPos(pnode.CodeLen, pnode.NewNatSourceGetter(g)), 0)
}

// Setcur reports the cursor position (consuming no input) through
// sink every time this node is visited.
func Setcur(sink pnode.NatSink) *Pattern {
	return wrap(pnode.NewSetcur(sink), 0)
}

// PredFunc matches (consuming no input) iff g.Get() is true at the
// moment this node is visited.
func PredFunc(g pnode.BoolGetter) *Pattern {
	return wrap(pnode.NewPredFunc(g), 0)
}

// --- deferred pattern reference ---

// Cell is a mutable slot a recursive pattern definition closes over:
// construct it, build the recursive body referencing Rpat(cell), then
// call cell.Set with the finished Pattern.
type Cell struct {
	cell pnode.PatternCell
}

// Rpat builds a node that, each time it is visited, re-enters
// whatever pattern c currently holds; this is how a pattern can refer to itself before it
// exists.
func Rpat(c *Cell) *Pattern {
	return wrap(pnode.NewRpat(&c.cell), 1)
}

// Set points c at p, making every existing and future Rpat(c) resolve
// to p from this call onward.
func (c *Cell) Set(p *Pattern) { c.cell.Ref = p }

// --- assignment ---

// AssignImmediate matches p, then commits the substring p matched
// into sink as soon as p itself succeeds — even if the overall match
// later fails and backtracks past this point.
func AssignImmediate(p *Pattern, sink pnode.StringSink) *Pattern {
	e := &pnode.Node{Code: pnode.CodeREnter}
	a := pnode.NewAssign(true, sink)
	root := pnode.Bracket(e, pnode.Copy(p.root), a)
	return wrap(root, p.stackDepth+3)
}

// AssignOnMatch matches p, deferring the commit into sink until the
// overall match finally succeeds; if the match backtracks past this
// point first, the assignment never happens.
func AssignOnMatch(p *Pattern, sink pnode.StringSink) *Pattern {
	e := &pnode.Node{Code: pnode.CodeREnter}
	a := pnode.NewAssign(false, sink)
	root := pnode.Bracket(e, pnode.Copy(p.root), a)
	return wrap(root, p.stackDepth+3)
}

// --- composition ---

// Concat matches l immediately followed by r.
func Concat(l, r *Pattern) *Pattern {
	lc, rc := pnode.Copy(l.root), pnode.Copy(r.root)
	root := pnode.Concat(lc, rc, r.stackDepth)
	return wrap(root, l.stackDepth+r.stackDepth)
}

// Alternate matches l, or, if l fails (and on later backtracking), r.
func Alternate(l, r *Pattern) *Pattern {
	lc, rc := pnode.Copy(l.root), pnode.Copy(r.root)
	root := pnode.Alternate(lc, rc)
	depth := l.stackDepth
	if r.stackDepth > depth {
		depth = r.stackDepth
	}
	return wrap(root, depth+1)
}

// okForSimpleArbno lists the codes that push no stack entries of
// their own and are guaranteed to consume at least one byte whenever
// they succeed, so a bare repetition cycle cannot loop forever on a
// null match.
var okForSimpleArbno = map[pnode.Code]bool{
	pnode.CodeChar:   true,
	pnode.CodeAny:    true,
	pnode.CodeNotAny: true,
	pnode.CodeSpan:   true,
	pnode.CodeString: true,
}

// Arbno matches zero or more repetitions of p, as many as the
// remainder of the overall pattern can accept.
//
// When p's own stack footprint is zero and its code is known to
// always advance the cursor on success, this collapses the construct
// to a single self-looping node ("simple Arbno"); otherwise it builds
// a region-bracketed cycle so the matcher can detect and reject a
// null-matching iteration.
func Arbno(p *Pattern) *Pattern {
	body := pnode.Copy(p.root)
	if p.stackDepth == 0 && okForSimpleArbno[body.Code] {
		return wrap(pnode.ArbnoSimple(body), 0)
	}

	e := &pnode.Node{Code: pnode.CodeREnter}
	x := &pnode.Node{Code: pnode.CodeArbnoX, Alt: e}
	depth := p.stackDepth + 3
	y := &pnode.Node{Code: pnode.CodeArbnoY, NatLit: depth}
	epy := pnode.Bracket(e, body, y)
	y.Next = x
	x.Alt = epy
	x.Index = epy.Index + 1
	return wrap(x, depth)
}

// Arb matches the shortest possible span on the first attempt, then
// lengthens it one byte at a time on each backtrack into it, up to
// the rest of the subject — the unbounded analogue of
// Arbno(Any(...)).
func Arb() *Pattern {
	e := &pnode.Node{Code: pnode.CodeArbX, Index: 2, Alt: pnode.NewLeaf(pnode.CodeArbY)}
	return wrap(e, 1)
}
