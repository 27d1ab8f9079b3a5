package pnode

import "github.com/hgweller/gopatmat/internal/charset"

// The getter/setter capability contracts of, resolved per
// the "Open question" in favour of borrow-view semantics: a getter
// returns a value it owns for at least the duration of the match: the
// caller is obliged to keep it alive and unchanged while a match using
// it is in flight.

// BoolGetter backs PC_Pred_Func: a deferred boolean predicate.
type BoolGetter interface {
	Get() bool
}

// NaturalGetter backs the NG variants of Pos/RPos/Tab/RTab/Len.
type NaturalGetter interface {
	Get() int
}

// NaturalSetter backs Setcur_Func.
type NaturalSetter interface {
	Set(int)
}

// StringGetter backs the SG variants and deferred string matches; it
// returns a borrowed byte slice, not a copy.
type StringGetter interface {
	Get() []byte
}

// StringSetter backs the Call_*_SS assign/call family.
type StringSetter interface {
	Set([]byte)
}

// CharSource is the payload of every character-testing tag (Any,
// NotAny, Span, NSpan, Break, BreakX): it supplies the set of bytes to
// test against, resolved once per visit.
type CharSource interface {
	Set() charset.Set
}

type literalCharSource struct{ s charset.Set }

func (l literalCharSource) Set() charset.Set { return l.s }

// NewCharSource wraps a fixed charset.Set as a CharSource.
func NewCharSource(s charset.Set) CharSource { return literalCharSource{s} }

type getterCharSource struct{ g StringGetter }

func (g getterCharSource) Set() charset.Set { return charset.FromString(string(g.g.Get())) }

// NewCharSourceGetter wraps a StringGetter (resolved to a member set
// on every visit) as a CharSource.
func NewCharSourceGetter(g StringGetter) CharSource { return getterCharSource{g} }

type pointerCharSource struct{ p *string }

func (p pointerCharSource) Set() charset.Set { return charset.FromString(*p.p) }

// NewCharSourcePointer wraps a caller-owned *string as a CharSource.
func NewCharSourcePointer(p *string) CharSource { return pointerCharSource{p} }

// NatSource is the payload of the position family (Pos, RPos, Tab,
// RTab, Len): it supplies a natural number, resolved once per visit.
type NatSource interface {
	Value() int
}

type literalNatSource int

func (n literalNatSource) Value() int { return int(n) }

// NewNatSource wraps a fixed int as a NatSource.
func NewNatSource(n int) NatSource { return literalNatSource(n) }

type pointerNatSource struct{ p *int }

func (n pointerNatSource) Value() int { return *n.p }

// NewNatSourcePointer wraps a caller-owned *int as a NatSource.
func NewNatSourcePointer(p *int) NatSource { return pointerNatSource{p} }

type getterNatSource struct{ g NaturalGetter }

func (n getterNatSource) Value() int { return n.g.Get() }

// NewNatSourceGetter wraps a NaturalGetter as a NatSource.
func NewNatSourceGetter(g NaturalGetter) NatSource { return getterNatSource{g} }

// NatSink is the payload of Setcur: it receives the cursor position.
type NatSink interface {
	Set(int)
}

type pointerNatSink struct{ p *int }

func (n pointerNatSink) Set(v int) { *n.p = v }

// NewNatSinkPointer wraps a caller-owned *int as a NatSink.
func NewNatSinkPointer(p *int) NatSink { return pointerNatSink{p} }

type setterNatSink struct{ s NaturalSetter }

func (n setterNatSink) Set(v int) { n.s.Set(v) }

// NewNatSinkSetter wraps a NaturalSetter as a NatSink.
func NewNatSinkSetter(s NaturalSetter) NatSink { return setterNatSink{s} }

// StringSource is the payload of a deferred string match (Defer over
// a string pointer or a StringGetter): the literal bytes to compare
// against the subject, resolved once per visit.
type StringSource interface {
	Bytes() []byte
}

type pointerStringSource struct{ p *string }

func (s pointerStringSource) Bytes() []byte { return []byte(*s.p) }

// NewStringSourcePointer wraps a caller-owned *string as a StringSource.
func NewStringSourcePointer(p *string) StringSource { return pointerStringSource{p} }

type getterStringSource struct{ g StringGetter }

func (s getterStringSource) Bytes() []byte { return s.g.Get() }

// NewStringSourceGetter wraps a StringGetter as a StringSource.
func NewStringSourceGetter(g StringGetter) StringSource { return getterStringSource{g} }

// StringSink is the payload of Assign_Imm / Assign_OnM: it receives
// the matched substring on commit.
type StringSink interface {
	Set(string)
}

type pointerStringSink struct{ p *string }

func (s pointerStringSink) Set(v string) { *s.p = v }

// NewStringSinkPointer wraps a caller-owned *string as a StringSink.
func NewStringSinkPointer(p *string) StringSink { return pointerStringSink{p} }

type setterStringSink struct{ s StringSetter }

func (s setterStringSink) Set(v string) { s.s.Set([]byte(v)) }

// NewStringSinkSetter wraps a StringSetter as a StringSink.
func NewStringSinkSetter(s StringSetter) StringSink { return setterStringSink{s} }

// PatternRef is implemented by the pattern package's handle type; kept
// as an interface here to avoid an import cycle (pattern imports
// pnode for the graph, not the other way around).
type PatternRef interface {
	Root() *Node
	StackDepth() int
}

// PatternCell is the mutable cross-reference a Defer(pattern) holds:
// "a shared mutable cell with interior mutability" per
// "Deferred pattern references". The caller may overwrite Ref between
// matches; the Rpat node always re-reads it at match time.
type PatternCell struct {
	Ref PatternRef
}
