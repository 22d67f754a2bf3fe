// Package emit is the single-pass encoder that walks a mir.Program and
// produces x86_64 instruction bytes, recording intra-function branch
// relocations by MIR target index and fixing them up once the whole
// program has been emitted. See spec.md §4.3-§4.5.
package emit

import (
	"tlog.app/go/tlog"

	"github.com/xyproto/x64emit/dbginfo"
	"github.com/xyproto/x64emit/diag"
	"github.com/xyproto/x64emit/encbuf"
	"github.com/xyproto/x64emit/mir"
	"github.com/xyproto/x64emit/reloc"
)

// branchReloc is an intra-function relocation: a branch whose target is
// another MIR instruction, resolved against code_offset_mapping once the
// whole program has been walked.
type branchReloc struct {
	source uint64 // byte offset the instruction started at
	target uint32 // MIR index of the branch target
	offset uint64 // byte offset of the disp32 field to patch
	length uint8  // instruction byte length, for the source-of-next-insn term
}

// Emitter holds all state for one declaration's worth of MIR->bytes
// translation. It is single-threaded, non-suspending, and confined to one
// instance per declaration, per spec.md §5.
type Emitter struct {
	code    *encbuf.Buffer
	offsets map[uint32]uint64
	relocs  []branchReloc

	sink    reloc.Sink
	dbg     dbginfo.Sink
	log     *tlog.Logger
	loc     diag.SourceLocation

	err *diag.Fail

	prevLine, prevColumn int
	prevPC               uint64
}

// Option configures an Emitter at construction time.
type Option func(*Emitter)

// WithSink attaches the linker relocation sink external branches and GOT
// loads are forwarded to. Defaults to a no-op sink that fails every
// request, matching spec.md §6's "unimplemented" fallback.
func WithSink(s reloc.Sink) Option { return func(e *Emitter) { e.sink = s } }

// WithDebugInfo attaches the debug-info sink prologue/epilogue/line
// markers are forwarded to. Defaults to dbginfo.NopSink.
func WithDebugInfo(d dbginfo.Sink) Option { return func(e *Emitter) { e.dbg = d } }

// WithLogger attaches a structured logger for per-instruction and
// per-relocation tracing. Defaults to nil, which disables logging.
func WithLogger(l *tlog.Logger) Option { return func(e *Emitter) { e.log = l } }

// WithLocation attaches the source location attributed to any diag.Fail
// this Emitter produces.
func WithLocation(loc diag.SourceLocation) Option { return func(e *Emitter) { e.loc = loc } }

// New returns an Emitter ready to consume one mir.Program.
func New(opts ...Option) *Emitter {
	e := &Emitter{
		code:    encbuf.New(),
		offsets: make(map[uint32]uint64),
		dbg:     dbginfo.NopSink{},
		sink:    noSink{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// noSink is the default relocation sink: every request comes back
// unimplemented, per spec.md §6's fallback for unwired backends.
type noSink struct{}

func (noSink) Branch(offset uint64, target reloc.SymbolIndex) error {
	return &reloc.Unimplemented{Backend: "none"}
}

func (noSink) GOTLoad(offset uint64, target reloc.GOTIndex) error {
	return &reloc.Unimplemented{Backend: "none"}
}

// Bytes returns the emitted code buffer's contents.
func (e *Emitter) Bytes() []byte { return e.code.Bytes() }

// OffsetOf returns the byte offset recorded for a MIR instruction index.
func (e *Emitter) OffsetOf(idx uint32) (uint64, bool) {
	off, ok := e.offsets[idx]
	return off, ok
}

func (e *Emitter) logf(msg string, kv ...any) {
	if e.log == nil {
		return
	}
	e.log.Printw(msg, kv...)
}

// fail records the first diag.Fail this Emitter produces. spec.md §7's
// invariant: err is nil at entry to fail.
func (e *Emitter) fail(instIdx int, tag string, format string, args ...any) error {
	if e.err != nil {
		panic("emit: fail called with err already set")
	}
	e.err = diag.Failf(e.loc, instIdx, tag, format, args...)
	return e.err
}

// Emit performs the single pass over p: for every instruction it records
// code_offset_mapping, dispatches on tag to a form-specific encoder, and
// appends any branch relocation. Once the pass completes it resolves all
// recorded relocations. Returns the first diag.Fail or diag.OutOfMemory
// encountered; the loop stops at that instruction, per spec.md §4.5.
func (e *Emitter) Emit(p *mir.Program) error {
	for i, inst := range p.Insts {
		idx := uint32(i)
		if _, dup := e.offsets[idx]; dup {
			panic("emit: code_offset_mapping clobbered")
		}
		e.offsets[idx] = uint64(e.code.Len())

		if err := e.emitOne(p, idx, inst); err != nil {
			return err
		}
		e.logf("emit", "tag", tagString(inst.Tag), "inst", idx, "offset", e.offsets[idx])
	}
	return e.fixup()
}

// emitOne dispatches a single instruction by tag.
func (e *Emitter) emitOne(p *mir.Program, idx uint32, inst mir.Inst) error {
	switch inst.Tag {
	case mir.TagAdc, mir.TagAdd, mir.TagSub, mir.TagXor, mir.TagAnd, mir.TagOr, mir.TagSbb, mir.TagCmp, mir.TagMov:
		return e.emitArith(p, idx, inst)
	case mir.TagArithScaleSrc:
		return e.emitArithScaleSrc(idx, inst)
	case mir.TagArithScaleDst:
		return e.emitArithScaleDst(idx, inst)
	case mir.TagArithScaleImm:
		return e.emitArithScaleImm(p, idx, inst)
	case mir.TagMovabs:
		return e.emitMovabs(p, idx, inst)
	case mir.TagLea:
		return e.emitLea(idx, inst)
	case mir.TagLeaRip:
		return e.emitLeaRip(idx, inst)
	case mir.TagPush, mir.TagPop:
		return e.emitPushPop(idx, inst)
	case mir.TagRet:
		return e.emitRet(idx, inst)
	case mir.TagJmp, mir.TagCall:
		return e.emitJmpCall(idx, inst)
	case mir.TagCallExtern:
		return e.emitCallExtern(idx, inst)
	case mir.TagJccGteLt, mir.TagJccGtLte, mir.TagJccAeB, mir.TagJccABe, mir.TagJccEqNe:
		return e.emitJcc(idx, inst)
	case mir.TagSetccGteLt, mir.TagSetccGtLte, mir.TagSetccAeB, mir.TagSetccABe, mir.TagSetccEqNe:
		return e.emitSetcc(idx, inst)
	case mir.TagSyscall:
		return e.emitSyscall(idx, inst)
	case mir.TagTest:
		return e.emitTest(idx, inst)
	case mir.TagInt3:
		return e.emitInt3(idx, inst)
	case mir.TagImul:
		return e.emitImul(idx, inst)
	case mir.TagDbgPrologueEnd, mir.TagDbgEpilogueBegin, mir.TagDbgLine:
		e.emitDbgMarker(p, inst)
		return nil
	default:
		return e.fail(int(idx), "unknown", "unknown MIR tag %d", inst.Tag)
	}
}
