package emit

import "github.com/xyproto/x64emit/mir"

// emitDbgMarker forwards one of the three zero-byte debug-info markers to
// the attached dbginfo.Sink at the instruction's byte offset, updating the
// prev_di_line/column/pc bookkeeping spec.md §6 names. It never touches
// e.code: markers carry no encoding of their own.
func (e *Emitter) emitDbgMarker(p *mir.Program, inst mir.Inst) {
	pc := e.code.Len()

	switch inst.Tag {
	case mir.TagDbgPrologueEnd:
		e.dbg.PrologueEnd(uint64(pc))
	case mir.TagDbgEpilogueBegin:
		e.dbg.EpilogueBegin(uint64(pc))
	case mir.TagDbgLine:
		lm := p.LineMarkerAt(inst.Data)
		e.dbg.Line(uint64(pc), int(lm.Line), int(lm.Column))
		e.prevLine, e.prevColumn = int(lm.Line), int(lm.Column)
	}
	e.prevPC = uint64(pc)
}
