// Package x86asmcheck decodes freshly emitted bytes back into instructions
// using golang.org/x/arch/x86/x86asm and compares the decode length against
// what the emitter believed it wrote, the same round-trip discipline
// jam-duna/jamduna's PVM-to-x86_64 recompiler runs over its own generated
// code before trusting it.
package x86asmcheck

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

// Instruction is one decoded instruction: its offset into the buffer that
// was decoded, its byte length, and its disassembled text form.
type Instruction struct {
	Offset uint64
	Length int
	Text   string
}

// Decode walks code from the start and decodes every instruction in
// sequence, in 64-bit mode. It stops at the first decode failure and
// returns that error alongside the instructions successfully decoded so
// far.
func Decode(code []byte) ([]Instruction, error) {
	var out []Instruction
	off := 0
	for off < len(code) {
		inst, err := x86asm.Decode(code[off:], 64)
		if err != nil {
			return out, fmt.Errorf("x86asmcheck: decode at offset %d: %w", off, err)
		}
		if inst.Op == 0 {
			// x86asm reports a truncated or prefix-only byte as a one-byte
			// instruction with no opcode rather than as an error.
			return out, fmt.Errorf("x86asmcheck: decode at offset %d: no complete instruction", off)
		}
		out = append(out, Instruction{
			Offset: uint64(off),
			Length: inst.Len,
			Text:   inst.String(),
		})
		off += inst.Len
	}
	return out, nil
}

// VerifyLengths decodes code and confirms the decoded instruction lengths
// sum to exactly len(code) with no partial trailing instruction, the
// property that catches an emitter miscounting a ModR/M/SIB/immediate
// combination.
func VerifyLengths(code []byte) error {
	insts, err := Decode(code)
	if err != nil {
		return err
	}
	var total int
	for _, in := range insts {
		total += in.Length
	}
	if total != len(code) {
		return fmt.Errorf("x86asmcheck: decoded %d bytes, buffer holds %d", total, len(code))
	}
	return nil
}
