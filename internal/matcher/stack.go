package matcher

import "github.com/hgweller/gopatmat/internal/pnode"

// maxHistoryDepth bounds the history stack against runaway recursion
// (an Rpat cycle with no base case, or an Arbno body that can loop
// forever) — calls for doubling on demand
// with no fixed ceiling in principle, but a host process still needs
// a backstop against unbounded memory growth.
const maxHistoryDepth = 1 << 22

// stackOverflow is panicked by push when the hard ceiling is hit; Run
// recovers it and reports Exception/StackExhausted.
type stackOverflow struct{}

// entry is the single overloaded history-stack slot of: n
// is a cursor for ordinary alternatives, a saved base index for
// region-control entries, an end-cursor for a deferred Assign marker,
// or unused for a special entry recording only a node. node is the
// alternative/control tag, or (for special entries) the commit-source
// node.
type entry struct {
	n    int
	node *pnode.Node
}

// stack is the VM's single contiguous history stack plus its current
// region base pointer. base == -1 means "no open region" (the
// top-level position).
type stack struct {
	entries []entry
	base    int
}

// defaultInitialStackCapacity is used when Options.InitialStackSize is
// left at its zero value.
const defaultInitialStackCapacity = 64

func newStack(initialCapacity int) *stack {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialStackCapacity
	}
	return &stack{entries: make([]entry, 0, initialCapacity), base: -1}
}

func (s *stack) push(n int, node *pnode.Node) {
	if len(s.entries) >= maxHistoryDepth {
		panic(stackOverflow{})
	}
	s.entries = append(s.entries, entry{n: n, node: node})
}

// pop removes and returns the top entry; ok is false on an empty
// stack (the pattern exhausted every alternative, including its
// bottom sentinel — this should not happen in a well-formed match
// since the bottom entry is Abort or Unanchored, neither of which
// disappears without resolving the match, but is guarded anyway).
func (s *stack) pop() (n int, node *pnode.Node, ok bool) {
	i := len(s.entries) - 1
	if i < 0 {
		return 0, nil, false
	}
	e := s.entries[i]
	s.entries = s.entries[:i]
	return e.n, e.node, true
}

// enterRegion opens a new region: pushes the special entry (n,
// specialNode), then a control entry recording the outer base,
// and sets base to the new control entry's index.
func (s *stack) enterRegion(n int, specialNode *pnode.Node) {
	s.push(n, specialNode)
	s.push(s.base, rRemoveTag)
	s.base = len(s.entries) - 1
}

// special returns the current region's special entry.
func (s *stack) special() entry {
	return s.entries[s.base-1]
}

// setSpecialNode overwrites the current region's special entry's node
// field, used by Assign_OnM to stash which assignment to commit
// later.
func (s *stack) setSpecialNode(n *pnode.Node) {
	s.entries[s.base-1].node = n
}

// popRegion implements the generic region-exit bookkeeping of
//: if nothing was pushed since the region opened, both
// its slots are discarded outright; otherwise an R_Restore entry
// recording the inner base is pushed on top (the control entry stays
// where it is) so failure can still find the entries pushed inside,
// and the special entry is left in place for
// whoever (a deferred commit walk, a later Rpat return) needs it.
func (s *stack) popRegion() {
	outerBase := s.entries[s.base].n
	if len(s.entries)-1 == s.base {
		s.entries = s.entries[:s.base-1]
		s.base = outerBase
		return
	}
	innerBase := s.base
	s.push(innerBase, rRestoreTag)
	s.base = outerBase
}

// Sentinel, no-payload nodes used purely as stack-entry tags. None of
// these carry mutable state, so one shared instance per tag is safe
// across every match and every region; they are never linked into a
// graph and never walked by BuildRefArray.
var (
	rRemoveTag  = &pnode.Node{Code: pnode.CodeRRemove}
	rRestoreTag = &pnode.Node{Code: pnode.CodeRRestore}
	abortTag    = &pnode.Node{Code: pnode.CodeAbort}
	fenceYTag   = &pnode.Node{Code: pnode.CodeFenceY}
	assignTag   = &pnode.Node{Code: pnode.CodeAssign}
)
