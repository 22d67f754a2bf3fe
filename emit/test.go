package emit

import (
	"github.com/xyproto/x64emit/encbuf"
	"github.com/xyproto/x64emit/mir"
	"github.com/xyproto/x64emit/reg"
)

// emitTest encodes `test r/m, imm32` (flags=01, 0xF7/0xF6 with ModR/M.reg=0,
// or the 0xA9 accumulator short form when the destination is RAX).
// Every other shape, including `test r/m, r`, is the open question spec.md
// leaves unresolved for this backend and is rejected rather than guessed
// at: this fails closed instead of silently emitting the wrong bytes.
func (e *Emitter) emitTest(idx uint32, inst mir.Inst) error {
	dst, _, flags := inst.Ops.Decode()
	tagName := tagString(inst.Tag)

	if flags != 0b01 {
		return e.fail(int(idx), tagName, "test flags %d is not supported: only test r/m, imm32 (flags=01) is encoded", flags)
	}

	byte8 := dst.Size() == 8
	w := dst.Size() == 64

	if dst == reg.RAX {
		op := uint8(0xA9)
		if byte8 {
			op = 0xA8
		}
		if err := e.code.Reserve(1 + 1 + 4); err != nil {
			return err
		}
		e.code.REX(encbuf.RexBits{W: w}, false)
		e.code.Opcode1(op)
		if byte8 {
			e.code.Imm8(int8(inst.Data))
		} else {
			e.code.Imm32(int32(inst.Data))
		}
		return nil
	}

	op := uint8(0xF7)
	if byte8 {
		op = 0xF6
	}
	if err := e.code.Reserve(1 + 1 + 1 + 4); err != nil {
		return err
	}
	e.code.REX(encbuf.RexBits{W: w, B: dst.IsExtended()}, byte8 && need8BitRex(dst))
	e.code.Opcode1(op)
	e.code.ModRMDirect(0, dst.LowID())
	if byte8 {
		e.code.Imm8(int8(inst.Data))
	} else {
		e.code.Imm32(int32(inst.Data))
	}
	return nil
}
