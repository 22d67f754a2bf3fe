package emit

import (
	"github.com/xyproto/x64emit/encbuf"
	"github.com/xyproto/x64emit/mir"
	"github.com/xyproto/x64emit/opcode"
	"github.com/xyproto/x64emit/reg"
)

// emitScaleAddress encodes a full SIB [base + index*scale + disp] operand,
// generalizing emitIndirectAddress's disp-only addressing with an index
// register and a scale exponent (0-3, meaning 1/2/4/8) supplied by the
// caller. regField/regExtended supply ModR/M.reg (a register operand, or an
// opcode extension for the memory-immediate variant, which never sets
// REX.R); a trailing imm32 argument appends the memory-immediate form's
// immediate.
func (e *Emitter) emitScaleAddress(regField uint8, regExtended bool, scale uint8, index, base reg.Register, disp int32, w bool, writeOpcode func(), imm32 ...int32) error {
	forceDisp8 := base.LowID() == 5

	mode := 2
	switch {
	case disp == 0 && !forceDisp8:
		mode = 0
	case encbuf.FitsInt8(int64(disp)):
		mode = 1
	}

	if err := e.code.Reserve(1 + 1 + 1 + 1 + 4 + 4); err != nil {
		return err
	}
	e.code.REX(encbuf.RexBits{
		W: w,
		R: regExtended,
		X: index.IsExtended(),
		B: base.IsExtended(),
	}, false)
	writeOpcode()

	switch mode {
	case 0:
		e.code.ModRMSIBDisp0(regField)
	case 1:
		e.code.ModRMSIBDisp8(regField)
	default:
		e.code.ModRMSIBDisp32(regField)
	}
	e.code.SIB(scale, index.LowID(), base.LowID())
	switch mode {
	case 1:
		e.code.Disp8(int8(disp))
	case 2:
		e.code.Disp32(disp)
	}
	for _, v := range imm32 {
		e.code.Imm32(v)
	}
	return nil
}

// scaleAddressedOp is the arithmetic-family tag every *_scale_* MIR form
// encodes: unlike the plain addressing forms in arith.go, the three scale
// tags are single, operation-agnostic markers (see mir.go), so the
// underlying opcode is always looked up as ADD, the address-computation
// case (`array_base + index*scale + offset`) that motivates a scaled
// addressing mode in the first place.
const scaleAddressedOp = mir.TagAdd

// emitArithScaleSrc encodes `add reg1, [reg2 + scale*rcx + imm32]`: flags
// carries the SIB scale exponent, reg2 the base register, and Data the
// signed displacement, with the index register fixed at RCX.
func (e *Emitter) emitArithScaleSrc(idx uint32, inst mir.Inst) error {
	dst, base, scale := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	byte8 := dst.Size() == 8
	w := dst.Size() == 64 || base.Size() == 64
	op, _, ok := opcode.Arith(scaleAddressedOp, opcode.FormRM, byte8)
	if !ok {
		return e.fail(int(idx), tagName, "not an arithmetic-family tag")
	}
	return e.emitScaleAddress(dst.LowID(), dst.IsExtended(), scale, reg.RCX, base, int32(inst.Data), w, func() { e.code.Opcode1(op) })
}

// emitArithScaleDst encodes the MR form `add [reg1 + scale*rax + imm32],
// reg2` when reg2 is present, or the MI form `add [reg1 + scale*rax + 0],
// imm32` when it is none: reg1 is always the base register, RAX the fixed
// index, and flags the SIB scale exponent. The immediate variant fixes the
// displacement at zero, matching the shape spec.md names.
func (e *Emitter) emitArithScaleDst(idx uint32, inst mir.Inst) error {
	base, src, scale := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	w := base.Size() == 64 || src.Size() == 64

	if src != reg.None {
		byte8 := src.Size() == 8
		op, _, ok := opcode.Arith(scaleAddressedOp, opcode.FormMR, byte8)
		if !ok {
			return e.fail(int(idx), tagName, "not an arithmetic-family tag")
		}
		return e.emitScaleAddress(src.LowID(), src.IsExtended(), scale, reg.RAX, base, int32(inst.Data), w, func() { e.code.Opcode1(op) })
	}

	op, ext, ok := opcode.Arith(scaleAddressedOp, opcode.FormMI, false)
	if !ok {
		return e.fail(int(idx), tagName, "not an arithmetic-family tag")
	}
	return e.emitScaleAddress(ext, false, scale, reg.RAX, base, 0, w, func() { e.code.Opcode1(op) }, int32(inst.Data))
}

// emitArithScaleImm encodes `add [reg1 + scale*rax + disp], imm32`, the MI
// form with an explicit displacement: reg1 is the base register, RAX the
// fixed index, flags the SIB scale exponent, and Data an ImmPair index
// holding the displacement and the immediate, disp chosen between disp8 and
// disp32 by its own range exactly as the plain arithmetic family's flags=11
// form does.
func (e *Emitter) emitArithScaleImm(p *mir.Program, idx uint32, inst mir.Inst) error {
	base, _, scale := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	w := base.Size() == 64
	pair := p.ImmPairAt(inst.Data)
	op, ext, ok := opcode.Arith(scaleAddressedOp, opcode.FormMI, false)
	if !ok {
		return e.fail(int(idx), tagName, "not an arithmetic-family tag")
	}
	return e.emitScaleAddress(ext, false, scale, reg.RAX, base, pair.DestOff, w, func() { e.code.Opcode1(op) }, pair.Operand)
}
