package mir

// ImmPair is the extra-buffer payload for the arithmetic family's flags=11
// form (op [reg1 + imm32], imm32): the destination displacement and the
// stored operand immediate, each too wide to share the instruction's
// single Data word with the other.
type ImmPair struct {
	DestOff int32
	Operand int32
}

// PutImmPair appends an ImmPair to the side buffer and returns the payload
// index an Inst.Data field would carry.
func (p *Program) PutImmPair(v ImmPair) uint32 {
	return p.AddExtra(uint32(v.DestOff), uint32(v.Operand))
}

// ImmPairAt reads back an ImmPair previously stored at the given payload
// index.
func (p *Program) ImmPairAt(idx uint32) ImmPair {
	return ImmPair{
		DestOff: int32(p.Extra[idx]),
		Operand: int32(p.Extra[idx+1]),
	}
}

// LineMarker is the extra-buffer payload for TagDbgLine: the source line
// and column the emitter forwards to the debug-info sink alongside the
// instruction's byte offset.
type LineMarker struct {
	Line, Column int32
}

// PutLineMarker appends a LineMarker to the side buffer and returns the
// payload index an Inst.Data field would carry.
func (p *Program) PutLineMarker(v LineMarker) uint32 {
	return p.AddExtra(uint32(v.Line), uint32(v.Column))
}

// LineMarkerAt reads back a LineMarker previously stored at the given
// payload index.
func (p *Program) LineMarkerAt(idx uint32) LineMarker {
	return LineMarker{
		Line:   int32(p.Extra[idx]),
		Column: int32(p.Extra[idx+1]),
	}
}

// Imm64 is a 64-bit immediate split into two little-half-first u32 words,
// the shape MOVABS's full-width immediate is stored in.
type Imm64 uint64

// PutImm64 appends the two halves of a 64-bit immediate to the side buffer
// and returns the payload index.
func (p *Program) PutImm64(v uint64) uint32 {
	return p.AddExtra(uint32(v), uint32(v>>32))
}

// Imm64At reassembles a 64-bit immediate previously stored at the given
// payload index.
func (p *Program) Imm64At(idx uint32) uint64 {
	lo := uint64(p.Extra[idx])
	hi := uint64(p.Extra[idx+1])
	return lo | hi<<32
}
