package pnode

// Code tags a Node with its matching behaviour.
//
// A family that might otherwise split into several tags distinguished
// only by payload shape (a literal byte vs. a character class vs. a
// getter, say) is instead collapsed into one tag with a uniform
// payload: CodeAny carries a CharSource regardless of whether that
// source is a literal set, a single char, or a predicate. Every
// distinct matching behaviour still has its own tag; only the count
// of tags needed to express a family is reduced.
type Code int

const (
	// Control family: no payload.
	CodeAbort Code = iota
	CodeArbY
	CodeAssign
	CodeBreakXX
	CodeFail
	CodeFence
	CodeFenceX
	CodeFenceY
	CodeREnter
	CodeRRemove
	CodeRRestore
	CodeRem
	CodeSucceed
	CodeUnanchored
	CodeNull

	// Alt family (PCHasAlt): payload includes Alt link.
	CodeAlt
	CodeArbX
	CodeArbnoS
	CodeArbnoX

	// Deferred.
	CodeRpat
	CodePredFunc

	// Assign / call: payload is a StringSink.
	CodeAssignImm
	CodeAssignOnM

	// String literal / deferred string.
	CodeString
	CodeStringDeferred // Defer(string-ref) / Defer(string-getter): resolved at match time

	// Cursor assignment: payload is a NatSink.
	CodeSetcur

	// Character family: payload is a CharSource. One tag covers the
	// literal, set, getter, and predicate variants.
	CodeChar // literal single byte fast path (like PC_Char)
	CodeAny
	CodeNotAny
	CodeSpan
	CodeNSpan
	CodeBreak
	CodeBreakX

	// Balanced.
	CodeBal

	// Position family: payload is a NatSource. ArbnoY additionally
	// carries a plain int stack-depth counter (Nat in the reference).
	CodeArbnoY
	CodeLen
	CodePos
	CodeRPos
	CodeRTab
	CodeTab
)

// hasAlt reports whether a Code carries a meaningful Alt link and
// must therefore be followed by reachability walks.
var hasAlt = map[Code]bool{
	CodeAlt:    true,
	CodeArbX:   true,
	CodeArbnoS: true,
	CodeArbnoX: true,
}

// HasAlt reports whether c is in the has-alt family.
func HasAlt(c Code) bool { return hasAlt[c] }

func (c Code) String() string {
	switch c {
	case CodeAbort:
		return "Abort"
	case CodeArbY:
		return "Arb"
	case CodeAssign:
		return "Assign"
	case CodeBreakXX:
		return "BreakX"
	case CodeFail:
		return "Fail"
	case CodeFence:
		return "Fence"
	case CodeFenceX, CodeFenceY:
		return "Fence"
	case CodeREnter:
		return "Enter"
	case CodeRRemove:
		return "Remove"
	case CodeRRestore:
		return "Restore"
	case CodeRem:
		return "Rem"
	case CodeSucceed:
		return "Succeed"
	case CodeUnanchored:
		return "Unanchored"
	case CodeNull:
		return "\"\""
	case CodeAlt:
		return " | "
	case CodeArbX:
		return "Arb"
	case CodeArbnoS, CodeArbnoX, CodeArbnoY:
		return "Arbno"
	case CodeRpat, CodePredFunc, CodeStringDeferred:
		return "Defer"
	case CodeAssignImm:
		return " . "
	case CodeAssignOnM:
		return " $ "
	case CodeString:
		return "String"
	case CodeSetcur:
		return "Setcur"
	case CodeChar:
		return "Char"
	case CodeAny:
		return "Any"
	case CodeNotAny:
		return "NotAny"
	case CodeSpan:
		return "Span"
	case CodeNSpan:
		return "NSpan"
	case CodeBreak:
		return "Break"
	case CodeBreakX:
		return "BreakX"
	case CodeBal:
		return "Bal"
	case CodeLen:
		return "Len"
	case CodePos:
		return "Pos"
	case CodeRPos:
		return "RPos"
	case CodeRTab:
		return "RTab"
	case CodeTab:
		return "Tab"
	default:
		return "?"
	}
}
