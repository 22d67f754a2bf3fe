package emit

import (
	"github.com/xyproto/x64emit/encbuf"
	"github.com/xyproto/x64emit/mir"
	"github.com/xyproto/x64emit/opcode"
	"github.com/xyproto/x64emit/reg"
	"github.com/xyproto/x64emit/reloc"
)

// emitJmpCall dispatches on flags's low bit: 0 encodes an intra-function
// `jmp rel32` (0xE9) or `call rel32` (0xE8) and records a branchReloc so
// fixup can resolve the displacement once every instruction's offset is
// known, per the teacher's jmp.go/call.go plus relocation_test.go's patch
// contract; 1 encodes the register-indirect form (`FF /4` or `FF /2` with
// ModR/M.direct) when reg1 names a register, or the memory-indirect form
// (`FF /4/2` plus a SIB-only disp32, mirroring arithAbsoluteLoad's absolute
// addressing) when reg1 is none.
func (e *Emitter) emitJmpCall(idx uint32, inst mir.Inst) error {
	reg1, _, flags := inst.Ops.Decode()
	isCall := inst.Tag == mir.TagCall

	if flags&1 == 1 {
		ext := uint8(4)
		if isCall {
			ext = 2
		}
		if reg1 != reg.None {
			if err := e.code.Reserve(1 + 1 + 1); err != nil {
				return err
			}
			e.code.REX(encbuf.RexBits{B: reg1.IsExtended()}, false)
			e.code.Opcode1(0xFF)
			e.code.ModRMDirect(ext, reg1.LowID())
			return nil
		}
		if err := e.code.Reserve(1 + 1 + 1 + 4); err != nil {
			return err
		}
		e.code.Opcode1(0xFF)
		e.code.ModRMSIBDisp0(ext)
		e.code.SIBDisp32Only()
		e.code.Disp32(int32(inst.Data))
		return nil
	}

	op := uint8(0xE9)
	if isCall {
		op = 0xE8
	}
	source := uint64(e.code.Len())
	if err := e.code.Reserve(1 + 4); err != nil {
		return err
	}
	e.code.Opcode1(op)
	dispOffset := uint64(e.code.Len())
	e.code.Disp32(0)
	e.relocs = append(e.relocs, branchReloc{
		source: source,
		target: inst.Data,
		offset: dispOffset,
		length: 5,
	})
	return nil
}

// emitCallExtern encodes `call rel32` to a symbol resolved outside this
// declaration: the displacement field is left zero and the request is
// forwarded to the linker relocation sink instead of the local fixup pass,
// grounded on the teacher's plt_got.go PLT-stub call sequence.
func (e *Emitter) emitCallExtern(idx uint32, inst mir.Inst) error {
	tagName := tagString(inst.Tag)
	if err := e.code.Reserve(1 + 4); err != nil {
		return err
	}
	e.code.Opcode1(0xE8)
	offset := uint64(e.code.Len())
	e.code.Disp32(0)
	if err := e.sink.Branch(offset, reloc.SymbolIndex(inst.Data)); err != nil {
		return e.fail(int(idx), tagName, "branch relocation: %v", err)
	}
	return nil
}

// emitJcc encodes the two-byte conditional jump `0F 8x rel32`, deriving the
// condition from the tag's pair family and the instruction's flags bit via
// the opcode package's shared condition table.
func (e *Emitter) emitJcc(idx uint32, inst mir.Inst) error {
	_, _, flags := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	cond, ok := opcode.ConditionFor(inst.Tag, flags)
	if !ok {
		return e.fail(int(idx), tagName, "not a conditional-jump tag")
	}
	source := uint64(e.code.Len())
	if err := e.code.Reserve(2 + 4); err != nil {
		return err
	}
	e.code.Opcode2(0x0F, opcode.Jcc(cond))
	dispOffset := uint64(e.code.Len())
	e.code.Disp32(0)
	e.relocs = append(e.relocs, branchReloc{
		source: source,
		target: inst.Data,
		offset: dispOffset,
		length: 6,
	})
	return nil
}

// emitSetcc encodes the two-byte byte-set-on-condition `REX.W 0F 9x /0`,
// direct register addressing only. REX.W is always set, per spec.md's
// resolved decision to emit the excerpt's unusual-but-legal REX.W=1
// pairing with a byte destination rather than silently widening it away.
func (e *Emitter) emitSetcc(idx uint32, inst mir.Inst) error {
	dst, _, flags := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	cond, ok := opcode.ConditionFor(inst.Tag, flags)
	if !ok {
		return e.fail(int(idx), tagName, "not a setcc tag")
	}
	if err := e.code.Reserve(1 + 2 + 1); err != nil {
		return err
	}
	e.code.REX(encbuf.RexBits{W: true, B: dst.IsExtended()}, need8BitRex(dst))
	e.code.Opcode2(0x0F, opcode.Setcc(cond))
	e.code.ModRMDirect(0, dst.LowID())
	return nil
}

// fixup walks relocs in insertion order, resolving each intra-function
// branch target against code_offset_mapping and patching the recorded
// disp32 field in place, per the teacher's PatchPCRelocations contract
// (relocation_test.go) generalized to MIR-indexed targets.
func (e *Emitter) fixup() error {
	for _, r := range e.relocs {
		targetOffset, ok := e.offsets[r.target]
		if !ok {
			return e.fail(-1, "branch", "relocation target inst %d not found in this declaration", r.target)
		}
		disp := int64(targetOffset) - int64(r.source+uint64(r.length))
		if !encbuf.FitsInt32(disp) {
			return e.fail(-1, "branch", "displacement %d does not fit in 32 bits", disp)
		}
		if err := e.code.PatchU32LE(r.offset, uint32(int32(disp))); err != nil {
			return e.fail(-1, "branch", "patch failed: %v", err)
		}
		e.logf("fixup branch", "target", r.target, "offset", r.offset, "disp", disp)
	}
	return nil
}
