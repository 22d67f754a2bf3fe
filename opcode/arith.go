// Package opcode holds the pure, stateless lookup tables spec.md §4.2
// describes: one table shared by the nine arithmetic-family instructions
// (indexed by encoding form), and one table shared by conditional jumps
// and set-byte (indexed by condition code).
package opcode

import "github.com/xyproto/x64emit/mir"

// Form selects which of the three addressing shapes an arithmetic
// instruction uses, matching spec.md §4.2's MI/MR/RM columns.
type Form uint8

const (
	FormMI Form = iota // op r/m, imm32
	FormMR             // op r/m, r  (ModR/M.reg = source)
	FormRM             // op r, r/m (ModR/M.reg = destination)
)

type arithEntry struct {
	mi, mr, rm uint8 // opcodes at 32/64-bit operand size
	miExt      uint8 // ModR/M.reg extension for the MI form
}

var arithTable = map[mir.Tag]arithEntry{
	mir.TagAdc: {mi: 0x81, mr: 0x11, rm: 0x13, miExt: 2},
	mir.TagAdd: {mi: 0x81, mr: 0x01, rm: 0x03, miExt: 0},
	mir.TagSub: {mi: 0x81, mr: 0x29, rm: 0x2b, miExt: 5},
	mir.TagXor: {mi: 0x81, mr: 0x31, rm: 0x33, miExt: 6},
	mir.TagAnd: {mi: 0x81, mr: 0x21, rm: 0x23, miExt: 4},
	mir.TagOr:  {mi: 0x81, mr: 0x09, rm: 0x0b, miExt: 1},
	mir.TagSbb: {mi: 0x81, mr: 0x19, rm: 0x1b, miExt: 3},
	mir.TagCmp: {mi: 0x81, mr: 0x39, rm: 0x3b, miExt: 7},
	mir.TagMov: {mi: 0xC7, mr: 0x89, rm: 0x8b, miExt: 0},
}

// Arith returns the opcode byte and ModR/M.reg extension for one of the
// nine arithmetic-family tags in the given encoding form. When
// byteWidth8 is true, the opcode is decremented by one, the ISA's
// parallel 8-bit opcode that immediately precedes the wider one in every
// row of spec.md §4.2's table. ok is false for a tag outside this family.
func Arith(tag mir.Tag, form Form, byteWidth8 bool) (opcode uint8, modrmExt uint8, ok bool) {
	e, found := arithTable[tag]
	if !found {
		return 0, 0, false
	}
	var op uint8
	switch form {
	case FormMI:
		op, modrmExt = e.mi, e.miExt
	case FormMR:
		op, modrmExt = e.mr, 0 // caller supplies the source register as reg field
	case FormRM:
		op, modrmExt = e.rm, 0 // caller supplies the destination register as reg field
	default:
		return 0, 0, false
	}
	if byteWidth8 {
		op--
	}
	return op, modrmExt, true
}
