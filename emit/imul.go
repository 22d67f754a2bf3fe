package emit

import (
	"github.com/xyproto/x64emit/encbuf"
	"github.com/xyproto/x64emit/mir"
)

// emitImul encodes the two-operand form `imul dst, src` (0F AF /r,
// flags=00) or the three-operand immediate form `imul dst, src, imm`
// (flags=10), narrowing to the one-byte immediate encoding (6B /r ib) when
// it fits, grounded on the teacher's imul.go opcode selection. Flags 01
// and 11 have no IMUL shape and fail closed rather than being folded into
// the immediate form by accident.
func (e *Emitter) emitImul(idx uint32, inst mir.Inst) error {
	dst, src, flags := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	w := dst.Size() == 64

	switch flags {
	case 0b00:
		if err := e.code.Reserve(1 + 2 + 1); err != nil {
			return err
		}
		e.code.REX(encbuf.RexBits{W: w, R: dst.IsExtended(), B: src.IsExtended()}, false)
		e.code.Opcode2(0x0F, 0xAF)
		e.code.ModRMDirect(dst.LowID(), src.LowID())
		return nil
	case 0b10:
		imm := int32(inst.Data)
		if encbuf.FitsInt8(int64(imm)) {
			if err := e.code.Reserve(1 + 1 + 1 + 1); err != nil {
				return err
			}
			e.code.REX(encbuf.RexBits{W: w, R: dst.IsExtended(), B: src.IsExtended()}, false)
			e.code.Opcode1(0x6B)
			e.code.ModRMDirect(dst.LowID(), src.LowID())
			e.code.Imm8(int8(imm))
			return nil
		}
		if err := e.code.Reserve(1 + 1 + 1 + 4); err != nil {
			return err
		}
		e.code.REX(encbuf.RexBits{W: w, R: dst.IsExtended(), B: src.IsExtended()}, false)
		e.code.Opcode1(0x69)
		e.code.ModRMDirect(dst.LowID(), src.LowID())
		e.code.Imm32(imm)
		return nil
	default:
		return e.fail(int(idx), tagName, "imul flags %d not implemented", flags)
	}
}
