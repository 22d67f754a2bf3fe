package emit

import (
	"github.com/xyproto/x64emit/encbuf"
	"github.com/xyproto/x64emit/mir"
	"github.com/xyproto/x64emit/reg"
	"github.com/xyproto/x64emit/reloc"
)

const opLea = 0x8D

// emitLea encodes `lea dst, [base+disp]` (base==reg.None addresses a fixed
// 32-bit displacement, mirroring the arithmetic family's absolute-load
// form), grounded on the teacher's lea.go RM-form ModR/M construction.
func (e *Emitter) emitLea(idx uint32, inst mir.Inst) error {
	dst, base, _ := inst.Ops.Decode()
	w := dst.Size() == 64
	if base == 0 {
		return e.arithAbsoluteLoad(idx, dst, int32(inst.Data), w, opLea)
	}
	return e.emitIndirectAddress(dst.LowID(), dst.IsExtended(), base, int32(inst.Data), w, func() { e.code.Opcode1(opLea) })
}

// emitLeaRip encodes `lea dst, [rip+disp32]`. When the instruction's flags
// bit is set, Data is a reloc.GOTIndex and the displacement field is left
// zero for the linker to patch via a GOT-load relocation request. Otherwise
// Data is an already-resolved immediate that still needs to be corrected
// into a true RIP-relative displacement: the CPU computes the effective
// address from the address of the *next* instruction, so the raw immediate
// is reduced by this instruction's own encoded length before being written,
// grounded on the teacher's plt_got.go RIP-relative GOT access pattern.
func (e *Emitter) emitLeaRip(idx uint32, inst mir.Inst) error {
	dst, _, flags := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	w := dst.Size() == 64

	start := e.code.Len()
	if err := e.code.Reserve(1 + 1 + 1 + 4); err != nil {
		return err
	}
	e.code.REX(encbuf.RexBits{W: w, R: dst.IsExtended()}, false)
	e.code.Opcode1(opLea)
	e.code.ModRMRIPDisp32(dst.LowID())
	end := e.code.Len()

	if flags&1 == 1 {
		offset := uint64(e.code.Len())
		e.code.Disp32(0)
		if err := e.sink.GOTLoad(offset, reloc.GOTIndex(inst.Data)); err != nil {
			return e.fail(int(idx), tagName, "got load relocation: %v", err)
		}
		return nil
	}

	disp := int32(inst.Data) - int32(end-start+4)
	e.code.Disp32(disp)
	return nil
}

// emitMovabs encodes the four MOVABS shapes: the full-width `movabs
// reg, imm64` form (REX.W, B8+reg, 8-byte immediate), the narrower
// register-immediate forms that omit REX.W and narrow the immediate to the
// destination's width, and the `A0`-`A3` moffs families that move the
// accumulator register to or from a fixed 64-bit absolute address, per the
// teacher's mov.go full-width-immediate path generalized to every shape
// spec.md names.
func (e *Emitter) emitMovabs(p *mir.Program, idx uint32, inst mir.Inst) error {
	dst, src, flags := inst.Ops.Decode()

	if flags == 0b00 {
		imm := p.Imm64At(inst.Data)
		switch dst.Size() {
		case 64:
			if err := e.code.Reserve(1 + 1 + 8); err != nil {
				return err
			}
			e.code.REX(encbuf.RexBits{W: true, B: dst.IsExtended()}, false)
			e.code.OpcodeWithReg(0xB8, dst.LowID())
			e.code.Imm64(imm)
			return nil
		case 8:
			if err := e.code.Reserve(1 + 1 + 1); err != nil {
				return err
			}
			e.code.REX(encbuf.RexBits{B: dst.IsExtended()}, need8BitRex(dst))
			e.code.OpcodeWithReg(0xB0, dst.LowID())
			e.code.Imm8(int8(imm))
			return nil
		default:
			if err := e.code.Reserve(1 + 1 + 4); err != nil {
				return err
			}
			e.code.REX(encbuf.RexBits{B: dst.IsExtended()}, false)
			e.code.OpcodeWithReg(0xB8, dst.LowID())
			e.code.Imm32(int32(imm))
			return nil
		}
	}

	// moffs forms: whichever operand slot carries the accumulator register
	// selects width and direction; the payload index always resolves to
	// the fixed 64-bit absolute address the accumulator is moved to/from.
	moffs := p.Imm64At(inst.Data)
	if dst == reg.None {
		return e.emitMovabsMoffs(src, moffs, 0xA2, 0xA3)
	}
	return e.emitMovabsMoffs(dst, moffs, 0xA0, 0xA1)
}

// emitMovabsMoffs encodes one direction of the A0-A3 moffs family: opByte
// is used when the accumulator is 8-bit, opWide otherwise. Both directions
// (`mov moffs, rax` and `mov rax, moffs`) share the same wire shape: an
// opcode byte followed by the 8-byte absolute address, no ModR/M.
func (e *Emitter) emitMovabsMoffs(acc reg.Register, moffs uint64, opByte, opWide uint8) error {
	w := acc.Size() == 64
	op := opWide
	if acc.Size() == 8 {
		op = opByte
	}
	if err := e.code.Reserve(1 + 1 + 8); err != nil {
		return err
	}
	e.code.REX(encbuf.RexBits{W: w}, false)
	e.code.Opcode1(op)
	e.code.Imm64(moffs)
	return nil
}
