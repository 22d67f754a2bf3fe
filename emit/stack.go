package emit

import (
	"github.com/xyproto/x64emit/encbuf"
	"github.com/xyproto/x64emit/mir"
)

// emitPushPop encodes the three forms flags selects: 0b00 `push/pop reg`
// (0x50+reg / 0x58+reg, embedded-register opcode form), 0b01 `push/pop
// [reg+imm32]` (0xFF /6 or 0x8F /0, reg naming the base register), and
// 0b10 `push imm` (0x6A imm8 or 0x68 imm32, push only — pop has no
// immediate form and fails closed). Flags 0b11 is reserved and also fails
// closed, grounded on the teacher's push.go embedded-register opcode form.
func (e *Emitter) emitPushPop(idx uint32, inst mir.Inst) error {
	r, _, flags := inst.Ops.Decode()
	tagName := tagString(inst.Tag)
	isPop := inst.Tag == mir.TagPop

	switch flags {
	case 0b00:
		base := uint8(0x50)
		if isPop {
			base = 0x58
		}
		if err := e.code.Reserve(1 + 1); err != nil {
			return err
		}
		e.code.REX(encbuf.RexBits{B: r.IsExtended()}, false)
		e.code.OpcodeWithReg(base, r.LowID())
		return nil
	case 0b01:
		op := uint8(0xFF)
		ext := uint8(6)
		if isPop {
			op = 0x8F
			ext = 0
		}
		return e.emitIndirectAddress(ext, false, r, int32(inst.Data), false, func() { e.code.Opcode1(op) })
	case 0b10:
		if isPop {
			return e.fail(int(idx), tagName, "pop imm is not a valid form")
		}
		imm := int32(inst.Data)
		if encbuf.FitsInt8(int64(imm)) {
			if err := e.code.Reserve(1 + 1); err != nil {
				return err
			}
			e.code.Opcode1(0x6A)
			e.code.Imm8(int8(imm))
			return nil
		}
		if err := e.code.Reserve(1 + 4); err != nil {
			return err
		}
		e.code.Opcode1(0x68)
		e.code.Imm32(imm)
		return nil
	default:
		return e.fail(int(idx), tagName, "push/pop flags %d reserved", flags)
	}
}

// emitRet encodes the four return-instruction shapes the teacher's ret.go
// flag table names: flags 11 = near ret, 10 = near ret imm16, 01 = far
// ret, 00 = far ret imm16.
func (e *Emitter) emitRet(idx uint32, inst mir.Inst) error {
	_, _, flags := inst.Ops.Decode()
	switch flags {
	case 0b11:
		if err := e.code.Reserve(1); err != nil {
			return err
		}
		e.code.Opcode1(0xC3)
	case 0b10:
		if err := e.code.Reserve(1 + 2); err != nil {
			return err
		}
		e.code.Opcode1(0xC2)
		e.code.Imm16(int16(inst.Data))
	case 0b01:
		if err := e.code.Reserve(1); err != nil {
			return err
		}
		e.code.Opcode1(0xCB)
	case 0b00:
		if err := e.code.Reserve(1 + 2); err != nil {
			return err
		}
		e.code.Opcode1(0xCA)
		e.code.Imm16(int16(inst.Data))
	}
	return nil
}

// emitSyscall encodes the two-byte SYSCALL instruction, no operands.
func (e *Emitter) emitSyscall(idx uint32, inst mir.Inst) error {
	if err := e.code.Reserve(2); err != nil {
		return err
	}
	e.code.Opcode2(0x0F, 0x05)
	return nil
}

// emitInt3 encodes the one-byte breakpoint trap.
func (e *Emitter) emitInt3(idx uint32, inst mir.Inst) error {
	if err := e.code.Reserve(1); err != nil {
		return err
	}
	e.code.Opcode1(0xCC)
	return nil
}
