package pnode

// BuildRefArray walks a pattern graph from its root and returns an
// array indexed by Index-1 (so ra[j] is the node whose Index is j+1).
// It follows Next and, for has-alt nodes, Alt too, which is what makes
// Copy, SetSuccessor and the dumper safe over cyclic graphs.
func BuildRefArray(root *Node) []*Node {
	ra := make([]*Node, root.Index)
	var record func(n *Node)
	record = func(n *Node) {
		if n == nil || ra[n.Index-1] != nil {
			return
		}
		ra[n.Index-1] = n
		record(n.Next)
		if HasAlt(n.Code) {
			record(n.Alt)
		}
	}
	record(root)
	return ra
}

// SetSuccessor relinks every dangling successor (Next == nil, i.e.
// EOP) and every dangling alternative of pe's graph to succ. Used
// where concatenation's normal left-operand fixups don't apply (e.g.
// arbnoSimple, bracket).
func SetSuccessor(pe *Node, succ *Node) {
	if pe == nil {
		panic("pnode: SetSuccessor on uninitialised pattern")
	}
	refs := BuildRefArray(pe)
	for _, p := range refs {
		if p.Next == nil {
			p.Next = succ
		}
		if HasAlt(p.Code) && p.Alt == nil {
			p.Alt = succ
		}
	}
}

// Copy materialises an independent, index-equivalent graph,
// duplicating owned payloads and relinking Next/Alt into the new
// nodes.
func Copy(p *Node) *Node {
	if p == nil {
		panic("pnode: Copy of uninitialised pattern")
	}
	refs := BuildRefArray(p)
	copies := make([]*Node, len(refs))
	for j, r := range refs {
		cp := *r
		copies[j] = &cp
	}
	for j, r := range refs {
		cp := copies[j]
		if r.Next != nil {
			cp.Next = copies[r.Next.Index-1]
		}
		if HasAlt(r.Code) && r.Alt != nil {
			cp.Alt = copies[r.Alt.Index-1]
		}
		// Owned payloads that must not alias the original: CharSource
		// and StringSource/Sink wrap caller-owned pointers or getters
		// by contract and are
		// correctly shared, not copied — only the literal string and
		// the BreakX internal Alt link (already relinked above) are
		// node-owned state.
	}
	return copies[p.Index-1]
}

// Alternate builds l | r. If l is EOP (nil), the
// result is a single Alt node with alt = r; otherwise l's indices are
// shifted up by |r| and a new Alt node sits on top with next = l.
func Alternate(l, r *Node) *Node {
	if l == nil {
		return &Node{Code: CodeAlt, Index: r.Index + 1, Alt: r}
	}
	refs := BuildRefArray(l)
	for _, n := range refs {
		n.Index += r.Index
	}
	return &Node{Code: CodeAlt, Index: l.Index + 1, Next: l, Alt: r}
}

// ArbnoSimple builds the single cyclic node used for a "simple Arbno":
// a body that cannot push stack entries and is known to consume at
// least one byte on success.
func ArbnoSimple(p *Node) *Node {
	s := &Node{Code: CodeArbnoS, Index: p.Index + 1, Alt: p}
	SetSuccessor(p, s)
	return s
}

// Bracket frames a sub-pattern p with a head e and trailing node a
//. If p is empty (nil), e.Next = a directly; otherwise
// e.Next = p and every dangling successor of p is set to a. Returns e.
func Bracket(e, p, a *Node) *Node {
	if p == nil {
		e.Next = a
		e.Index = 2
		a.Index = 1
		return e
	}
	e.Next = p
	SetSuccessor(p, a)
	e.Index = p.Index + 2
	a.Index = p.Index + 1
	return e
}

// Concat builds l & r, relinking every dangling
// successor and alternative of l to r, shifting l's indices up by
// |r|, and adding incr to any Arbno_Y counter found in l
// invariant 2). Returns l's root, or r if l is empty, or l if r is
// empty.
func Concat(l, r *Node, incr int) *Node {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	refs := BuildRefArray(l)
	for _, p := range refs {
		p.Index += r.Index
		if p.Code == CodeArbnoY {
			p.NatLit += incr
		}
		if p.Next == nil {
			p.Next = r
		}
		if HasAlt(p.Code) && p.Alt == nil {
			p.Alt = r
		}
	}
	return l
}
