// Package dump implements two output forms for a pattern graph: a
// per-node table (Table) keyed to the graph's internal index
// numbering, and an operator-style expression reconstruction (Expr)
// using " & " for concatenation and " | " for alternation.
package dump

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hgweller/gopatmat/internal/pnode"
)

// nodeID renders the successor-id column the way writeNodeId does:
// "EOP" for a nil link, "#N" otherwise.
func nodeID(n *pnode.Node) string {
	if n == nil {
		return "EOP"
	}
	return fmt.Sprintf("#%d", n.Index)
}

// payload renders the tag-specific detail column of the node table.
func payload(n *pnode.Node) string {
	switch n.Code {
	case pnode.CodeChar:
		return fmt.Sprintf("'%c'", n.Char)
	case pnode.CodeBal:
		return fmt.Sprintf("('%c', '%c')", n.Open, n.Close)
	case pnode.CodeString:
		return fmt.Sprintf("%q", n.Str)
	case pnode.CodeAlt, pnode.CodeArbX, pnode.CodeArbnoS, pnode.CodeArbnoX:
		return nodeID(n.Alt)
	case pnode.CodeArbnoY:
		return fmt.Sprintf("budget=%s", humanize.Comma(int64(n.NatLit)))
	default:
		return ""
	}
}

// Table renders one row per reachable node, highest index first (the
// natural construction order), in the form "#index  Code  ->next
// payload".
func Table(root *pnode.Node) string {
	if root == nil {
		return "EOP (null pattern)\n"
	}
	refs := pnode.BuildRefArray(root)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Pattern dump (%s reachable node%s)\n",
		humanize.Comma(int64(len(refs))), plural(len(refs)))
	for j := len(refs) - 1; j >= 0; j-- {
		n := refs[j]
		fmt.Fprintf(&sb, "#%-5d %-12s -> %-8s %s\n", n.Index, n.Code, nodeID(n.Next), payload(n))
	}
	return sb.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Expr reconstructs a best-effort operator-style expression for root,
// the Go analogue of PatMat::operator<<(ostream&, const PatElmt_&):
// literal leaves render as their combinator name, concatenation as
// " & ", and alternation as a parenthesised " | " chain. Cyclic
// sub-graphs (Arbno's self-loop, BreakX's retry ring) are rendered
// once and then elided with "...", since a flat graph carries no
// explicit "end of repetition" marker to stop at exactly.
func Expr(root *pnode.Node) string {
	seen := map[*pnode.Node]bool{}
	return writeChain(root, nil, seen)
}

// writeChain renders the Next-chain starting at e, joining leaves
// with " & " until it reaches stop, EOP, or a revisited node.
//
// CodeAlt is special-cased: its own Next field holds the left operand
// rather than the sequence successor (pnode.Alternate), so the true
// continuation has to be found the way writePattern does — by
// skipping forward past every node whose index falls inside the
// alternation's own index range.
func writeChain(e, stop *pnode.Node, seen map[*pnode.Node]bool) string {
	if e == nil || e == stop {
		return "EOP"
	}
	var parts []string
	for e != nil && e != stop {
		if seen[e] {
			parts = append(parts, "...")
			break
		}
		seen[e] = true

		if e.Code == pnode.CodeAlt {
			succ := skipAltBody(e)
			left := writeChain(e.Next, succ, seen)
			right := writeChain(e.Alt, succ, seen)
			parts = append(parts, fmt.Sprintf("(%s | %s)", left, right))
			e = succ
			continue
		}

		if s := writeLeaf(e, seen); s != "" {
			parts = append(parts, s)
		}
		e = e.Next
	}
	return strings.Join(parts, " & ")
}

// skipAltBody finds the real successor of an alternation node: the
// first node reachable by walking Next from e whose index lies
// outside the index range its own left operand occupies, mirroring
// writePattern's PC_Alt case.
func skipAltBody(e *pnode.Node) *pnode.Node {
	elmtsInL := idx(e.Next) - idx(e.Alt)
	lowestInL := e.Index - elmtsInL
	cand := e.Next
	for cand != nil && cand.Index >= lowestInL && cand.Index < e.Index {
		cand = cand.Next
	}
	return cand
}

func idx(n *pnode.Node) int {
	if n == nil {
		return 0
	}
	return n.Index
}

// writeLeaf renders a single node's own textual form, recursing into
// Arbno sub-bodies but never following Next itself (the caller,
// writeChain, owns sequencing). CodeAlt never reaches here: writeChain
// intercepts it before calling writeLeaf.
func writeLeaf(e *pnode.Node, seen map[*pnode.Node]bool) string {
	switch e.Code {
	case pnode.CodeArbX:
		return "Arb()"

	case pnode.CodeArbnoS:
		return "Arbno(" + writeBranch(e.Alt, seen) + ")"

	case pnode.CodeArbnoX:
		return "Arbno(" + writeBranch(e.Alt, seen) + ")"

	case pnode.CodeAbort:
		return "Abort()"
	case pnode.CodeFail:
		return "Fail()"
	case pnode.CodeFence:
		return "Fence()"
	case pnode.CodeRem:
		return "Rem()"
	case pnode.CodeSucceed:
		return "Succeed()"

	case pnode.CodeBal:
		return fmt.Sprintf("Bal('%c', '%c')", e.Open, e.Close)

	case pnode.CodeChar:
		return fmt.Sprintf("'%c'", e.Char)

	case pnode.CodeString:
		return fmt.Sprintf("%q", e.Str)

	case pnode.CodeNull:
		return `""`

	case pnode.CodeAny, pnode.CodeNotAny, pnode.CodeSpan, pnode.CodeNSpan, pnode.CodeBreak, pnode.CodeBreakX:
		return fmt.Sprintf("%s(...)", e.Code)

	case pnode.CodePos, pnode.CodeRPos, pnode.CodeTab, pnode.CodeRTab, pnode.CodeLen:
		return fmt.Sprintf("%s(%d)", e.Code, e.Nat.Value())

	case pnode.CodeSetcur:
		return "Setcur(...)"

	case pnode.CodeRpat:
		return "Rpat(...)"

	case pnode.CodePredFunc:
		return "PredFunc(...)"

	case pnode.CodeAssignImm:
		return "AssignImmediate(...)"

	case pnode.CodeAssignOnM:
		return "AssignOnMatch(...)"

	case pnode.CodeREnter, pnode.CodeRRemove, pnode.CodeRRestore, pnode.CodeFenceX, pnode.CodeFenceY:
		// Region-control tags carry no source-level combinator of their
		// own; they're rendered only as part of the bracket they open.
		return ""

	default:
		return fmt.Sprintf("<%s>", e.Code)
	}
}

// writeBranch renders one alternative/repetition body, which in this
// flat representation is a node reached via an Alt link rather than
// Next, so it gets its own chain walk sharing the same seen set (a
// node visited down one branch is never re-expanded down another).
func writeBranch(e *pnode.Node, seen map[*pnode.Node]bool) string {
	if e == nil {
		return "EOP"
	}
	return writeChain(e, nil, seen)
}
