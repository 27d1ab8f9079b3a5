// Package matcher implements the backtracking virtual machine of
//: a single history stack of (cursor, node) entries with
// a region base pointer, interpreting a pnode graph against a subject
// string. Recursive pattern references (Rpat) are implemented as
// regions on this same stack, never as host-language recursion
//.
package matcher

import (
	"github.com/hgweller/gopatmat/internal/errors"
	"github.com/hgweller/gopatmat/internal/pnode"
)

// Tracer receives a callback for every node the VM visits, letting a
// caller (internal/trace) render a node-by-node or subject/cursor
// trace without the matcher importing any presentation concern
///"trace" flags).
type Tracer interface {
	OnVisit(cursor int, node *pnode.Node)
}

// Options controls one Run.
type Options struct {
	Anchor bool
	Tracer Tracer

	// InitialStackSize overrides the history stack's starting capacity
	// (it still doubles on demand past this point, per §5). Zero means
	// defaultInitialStackCapacity; set from internal/config for a
	// pattern already known to need deep backtracking, so a benchmark
	// run isn't dominated by reallocation.
	InitialStackSize int
}

// Run interprets pat against subject and reports one of the four
// outcomes of.
func Run(subject string, pat pnode.PatternRef, opts Options) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(stackOverflow); ok {
				result = Result{Outcome: Exception, Err: errors.NewStackExhausted(errors.Site{Subject: subject})}
				return
			}
			result = Result{Outcome: Exception, Err: errors.FromGetterPanic(errors.Site{Subject: subject}, r)}
		}
	}()

	if pat == nil || pat.Root() == nil {
		return Result{Outcome: UninitialisedPattern, Err: errors.NewUninitialised()}
	}

	s := newStack(opts.InitialStackSize)
	root := pat.Root()

	if opts.Anchor {
		s.push(0, abortTag)
	} else {
		unanchored := &pnode.Node{Code: pnode.CodeUnanchored, Next: root}
		s.push(0, unanchored)
	}

	cursor := 0
	matchStart := 0
	node := root
	deferredPresent := false

	fail := func() bool {
		n, nd, ok := s.pop()
		if !ok {
			return false
		}
		cursor, node = n, nd
		return true
	}

	for {
		if opts.Tracer != nil && node != nil {
			opts.Tracer.OnVisit(cursor, node)
		}

		if node == nil { // EOP
			if s.base == -1 {
				if deferredPresent {
					commitDeferred(s, subject)
				}
				return Result{Outcome: Success, Start: matchStart + 1, Stop: cursor}
			}
			cont := s.special().node
			s.popRegion()
			node = cont
			continue
		}

		switch node.Code {

		case pnode.CodeAbort:
			return Result{Outcome: Failure}

		case pnode.CodeFail:
			if !fail() {
				return Result{Outcome: Failure}
			}

		case pnode.CodeSucceed:
			s.push(cursor, node)
			node = node.Next

		case pnode.CodeRem:
			cursor = len(subject)
			node = node.Next

		case pnode.CodeNull:
			node = node.Next

		case pnode.CodeFence:
			s.push(cursor, abortTag)
			node = node.Next

		case pnode.CodeREnter:
			s.enterRegion(cursor, nil)
			node = node.Next

		case pnode.CodeRRemove:
			s.base = cursor
			s.entries = s.entries[:len(s.entries)-1]
			if !fail() {
				return Result{Outcome: Failure}
			}

		case pnode.CodeRRestore:
			s.base = cursor
			if !fail() {
				return Result{Outcome: Failure}
			}

		case pnode.CodeFenceX:
			oldBase := s.base
			outerBase := s.entries[s.base].n
			s.push(oldBase, fenceYTag)
			s.base = outerBase
			node = node.Next

		case pnode.CodeFenceY:
			oldBase := cursor
			s.entries = s.entries[:oldBase-1]
			if !fail() {
				return Result{Outcome: Failure}
			}

		case pnode.CodeAssign:
			if !fail() {
				return Result{Outcome: Failure}
			}

		case pnode.CodeAlt, pnode.CodeArbX, pnode.CodeArbnoS, pnode.CodeArbnoX:
			s.push(cursor, node.Alt)
			node = node.Next

		case pnode.CodeArbY:
			if cursor >= len(subject) {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor++
			s.push(cursor, node)
			node = node.Next

		case pnode.CodeArbnoY:
			special := s.special()
			if cursor == special.n || len(s.entries)+node.NatLit > maxHistoryDepth {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			s.popRegion()
			node = node.Next

		case pnode.CodeAssignImm:
			special := s.special()
			node.Sink.Set(subject[special.n:cursor])
			s.popRegion()
			node = node.Next

		case pnode.CodeAssignOnM:
			s.setSpecialNode(node)
			s.push(cursor, assignTag)
			s.popRegion()
			deferredPresent = true
			node = node.Next

		case pnode.CodeSetcur:
			node.NatSink.Set(cursor)
			node = node.Next

		case pnode.CodeChar:
			if cursor >= len(subject) || subject[cursor] != node.Char {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor++
			node = node.Next

		case pnode.CodeAny:
			if cursor >= len(subject) || !node.Chars.Set().IsIn(subject[cursor]) {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor++
			node = node.Next

		case pnode.CodeNotAny:
			if cursor >= len(subject) || node.Chars.Set().IsIn(subject[cursor]) {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor++
			node = node.Next

		case pnode.CodeSpan:
			set := node.Chars.Set()
			start := cursor
			for cursor < len(subject) && set.IsIn(subject[cursor]) {
				cursor++
			}
			if cursor == start {
				cursor = start
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			node = node.Next

		case pnode.CodeNSpan:
			set := node.Chars.Set()
			for cursor < len(subject) && set.IsIn(subject[cursor]) {
				cursor++
			}
			node = node.Next

		case pnode.CodeBreak, pnode.CodeBreakX:
			set := node.Chars.Set()
			for cursor < len(subject) && !set.IsIn(subject[cursor]) {
				cursor++
			}
			if cursor >= len(subject) {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			node = node.Next

		case pnode.CodeBreakXX:
			cursor++
			node = node.Next

		case pnode.CodeBal:
			if cursor >= len(subject) || subject[cursor] == node.Close {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			next := cursor
			if subject[next] == node.Open {
				depth := 1
				next++
				for next < len(subject) && depth > 0 {
					switch subject[next] {
					case node.Open:
						depth++
					case node.Close:
						depth--
					}
					next++
				}
				if depth != 0 {
					if !fail() {
						return Result{Outcome: Failure}
					}
					continue
				}
			} else {
				next++
			}
			s.push(next, node)
			cursor = next
			node = node.Next

		case pnode.CodeString:
			lit := node.Str
			if cursor+len(lit) > len(subject) || subject[cursor:cursor+len(lit)] != lit {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor += len(lit)
			node = node.Next

		case pnode.CodeStringDeferred:
			lit := string(node.Defer.Bytes())
			if cursor+len(lit) > len(subject) || subject[cursor:cursor+len(lit)] != lit {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor += len(lit)
			node = node.Next

		case pnode.CodeLen:
			n := node.Nat.Value()
			if n < 0 || cursor+n > len(subject) {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor += n
			node = node.Next

		case pnode.CodePos:
			if cursor != node.Nat.Value() {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			node = node.Next

		case pnode.CodeRPos:
			if len(subject)-cursor != node.Nat.Value() {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			node = node.Next

		case pnode.CodeTab:
			n := node.Nat.Value()
			if cursor > n {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor = n
			node = node.Next

		case pnode.CodeRTab:
			target := len(subject) - node.Nat.Value()
			if cursor > target {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			cursor = target
			node = node.Next

		case pnode.CodePredFunc:
			if !node.Pred.Get() {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			node = node.Next

		case pnode.CodeRpat:
			ref := node.Pat.Ref
			if ref == nil || ref.Root() == nil {
				return Result{Outcome: Exception, Err: errors.NewUninitialised()}
			}
			if len(s.entries)+ref.StackDepth()+2 > maxHistoryDepth {
				if !fail() {
					return Result{Outcome: Failure}
				}
				continue
			}
			s.enterRegion(0, node.Next)
			node = ref.Root()

		case pnode.CodeUnanchored:
			if cursor > len(subject) {
				return Result{Outcome: Failure}
			}
			cursor++
			matchStart = cursor
			s.push(cursor, node)
			node = node.Next

		default:
			return Result{Outcome: Exception, Err: errors.NewInternal(errors.Site{NodeIndex: node.Index, Cursor: cursor, Subject: subject}, "unreachable pattern tag in dispatch")}
		}
	}
}

// commitDeferred applies every Assign_OnM effect recorded during the
// match, in stack order. An Assign marker's paired special entry is
// not at any fixed offset: popRegion (stack.go) never rewrites the
// region's original control entry in place, it appends a new
// R_Restore entry on top and leaves whatever the wrapped sub-pattern
// pushed sitting between the two. What is fixed is the Assign/
// R_Restore pair itself — CodeAssignOnM always pushes the Assign
// marker and then immediately calls popRegion, which (since the
// marker it just pushed means the region is never "empty") always
// appends the R_Restore entry right after it. That R_Restore entry's
// saved field is the index the control entry occupied, and the
// special entry always sits one slot below the control entry (see
// enterRegion), so it is recovered as entries[restoreBase-1].
func commitDeferred(s *stack, subject string) {
	for i, e := range s.entries {
		if e.node == nil || e.node.Code != pnode.CodeAssign {
			continue
		}
		restoreBase := s.entries[i+1].n
		special := s.entries[restoreBase-1]
		special.node.Sink.Set(subject[special.n:e.n])
	}
}
