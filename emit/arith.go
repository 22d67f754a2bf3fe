package emit

import (
	"github.com/xyproto/x64emit/encbuf"
	"github.com/xyproto/x64emit/mir"
	"github.com/xyproto/x64emit/opcode"
	"github.com/xyproto/x64emit/reg"
)

// need8BitRex reports whether accessing a low-byte register in the
// spl/bpl/sil/dil range forces a REX prefix purely to select the extended
// byte-register encoding rather than the legacy ah/bh/ch/dh aliasing.
func need8BitRex(r reg.Register) bool {
	switch r {
	case reg.SPL, reg.BPL, reg.SIL, reg.DIL:
		return true
	}
	return false
}

// emitArith encodes one of the nine shared arithmetic-family instructions,
// dispatching on the instruction's flags field: 00 = register-register or
// register-immediate, 01 = load from [reg2+disp] (or [disp] when reg2 is
// none), 10 = store reg2 to [reg1+disp], 11 = store an immediate to
// [reg1+disp] with both drawn from the extra buffer's ImmPair.
func (e *Emitter) emitArith(p *mir.Program, idx uint32, inst mir.Inst) error {
	reg1, reg2, flags := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	w := reg1.Size() == 64 || reg2.Size() == 64
	byte8 := reg1.Size() == 8 || (reg2 != reg.None && reg2.Size() == 8)

	switch flags {
	case 0b00:
		if reg2 != reg.None {
			return e.arithRegReg(idx, inst.Tag, tagName, reg1, reg2, w, byte8)
		}
		return e.arithRegImm(idx, inst.Tag, tagName, reg1, int32(inst.Data), w, byte8)
	case 0b01:
		op, _, ok := opcode.Arith(inst.Tag, opcode.FormRM, byte8)
		if !ok {
			return e.fail(int(idx), tagName, "not an arithmetic-family tag")
		}
		if reg2 == reg.None {
			return e.arithAbsoluteLoad(idx, reg1, int32(inst.Data), w, op)
		}
		return e.emitIndirectAddress(reg1.LowID(), reg1.IsExtended(), reg2, int32(inst.Data), w, func() { e.code.Opcode1(op) })
	case 0b10:
		op, _, ok := opcode.Arith(inst.Tag, opcode.FormMR, byte8)
		if !ok {
			return e.fail(int(idx), tagName, "not an arithmetic-family tag")
		}
		return e.emitIndirectAddress(reg2.LowID(), reg2.IsExtended(), reg1, int32(inst.Data), w, func() { e.code.Opcode1(op) })
	case 0b11:
		return e.arithStoreImm(idx, inst.Tag, tagName, reg1, p.ImmPairAt(inst.Data), w, byte8)
	default:
		return e.fail(int(idx), tagName, "unreachable flags %d", flags)
	}
}

// arithRegReg encodes `op reg1, reg2` via the MR form (ModR/M.reg=reg2,
// ModR/M.rm=reg1): reg1 is the destination, reg2 the source.
func (e *Emitter) arithRegReg(idx uint32, tag mir.Tag, tagName string, dst, src reg.Register, w, byte8 bool) error {
	op, _, ok := opcode.Arith(tag, opcode.FormMR, byte8)
	if !ok {
		return e.fail(int(idx), tagName, "not an arithmetic-family tag")
	}
	if err := e.code.Reserve(2 + 1); err != nil {
		return err
	}
	e.code.REX(encbuf.RexBits{W: w, R: src.IsExtended(), B: dst.IsExtended()}, byte8 && (need8BitRex(dst) || need8BitRex(src)))
	e.code.Opcode1(op)
	e.code.ModRMDirect(src.LowID(), dst.LowID())
	e.logf("emit arith reg,reg", "tag", tagName, "inst", idx)
	return nil
}

// arithRegImm encodes `op reg1, imm32` via the MI form.
func (e *Emitter) arithRegImm(idx uint32, tag mir.Tag, tagName string, dst reg.Register, imm int32, w, byte8 bool) error {
	op, ext, ok := opcode.Arith(tag, opcode.FormMI, byte8)
	if !ok {
		return e.fail(int(idx), tagName, "not an arithmetic-family tag")
	}
	if err := e.code.Reserve(2 + 1 + 4); err != nil {
		return err
	}
	e.code.REX(encbuf.RexBits{W: w, B: dst.IsExtended()}, byte8 && need8BitRex(dst))
	e.code.Opcode1(op)
	e.code.ModRMDirect(ext, dst.LowID())
	e.code.Imm32(imm)
	e.logf("emit arith reg,imm", "tag", tagName, "inst", idx)
	return nil
}

// arithAbsoluteLoad encodes `op reg, [disp32]`: a SIB byte with no base or
// index register, addressing a fixed 32-bit displacement.
func (e *Emitter) arithAbsoluteLoad(idx uint32, dst reg.Register, disp int32, w bool, op uint8) error {
	if err := e.code.Reserve(1 + 1 + 1 + 1 + 4); err != nil {
		return err
	}
	e.code.REX(encbuf.RexBits{W: w, R: dst.IsExtended()}, false)
	e.code.Opcode1(op)
	e.code.ModRMSIBDisp0(dst.LowID())
	e.code.SIBDisp32Only()
	e.code.Disp32(disp)
	return nil
}

// arithStoreImm encodes the flags=11 form: `op [base+DestOff], Operand`,
// reading both fields from the ImmPair the extra buffer carries.
func (e *Emitter) arithStoreImm(idx uint32, tag mir.Tag, tagName string, base reg.Register, pair mir.ImmPair, w, byte8 bool) error {
	op, ext, ok := opcode.Arith(tag, opcode.FormMI, byte8)
	if !ok {
		return e.fail(int(idx), tagName, "not an arithmetic-family tag")
	}
	return e.emitIndirectAddress(ext, false, base, pair.DestOff, w, func() { e.code.Opcode1(op) }, pair.Operand)
}

// emitIndirectAddress encodes `[base+disp]` addressing for a ModR/M.reg
// field that is either a genuine register operand (regExtended set when it
// lies in r8-r15) or a bare opcode extension (regExtended always false,
// since extensions never set REX.R). A trailing imm32 argument appends a
// 32-bit immediate for the memory-immediate arithmetic form. base==RSP/R12
// forces a SIB byte; base==RBP/R13 forces at least a disp8 even when
// disp==0, since mod=00 with rm=101 is the RIP-relative encoding, not
// [rbp].
func (e *Emitter) emitIndirectAddress(regField uint8, regExtended bool, base reg.Register, disp int32, w bool, writeOpcode func(), imm32 ...int32) error {
	forceSIB := base.LowID() == 4
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
	e.code.REX(encbuf.RexBits{W: w, R: regExtended, B: base.IsExtended()}, false)
	writeOpcode()

	if forceSIB {
		switch mode {
		case 0:
			e.code.ModRMSIBDisp0(regField)
		case 1:
			e.code.ModRMSIBDisp8(regField)
		default:
			e.code.ModRMSIBDisp32(regField)
		}
		e.code.SIB(0, 0b100, base.LowID())
	} else {
		switch mode {
		case 0:
			e.code.ModRMIndirectDisp0(regField, base.LowID())
		case 1:
			e.code.ModRMIndirectDisp8(regField, base.LowID())
		default:
			e.code.ModRMIndirectDisp32(regField, base.LowID())
		}
	}
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
