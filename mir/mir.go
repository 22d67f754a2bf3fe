// Package mir implements the compact, columnar Machine Intermediate
// Representation the emitter consumes: one 8-byte record per instruction
// plus a side buffer of u32 "extra" words for payloads too wide to fit in
// a record's data field.
package mir

import "github.com/xyproto/x64emit/reg"

// Tag identifies an instruction's opcode family. The active interpretation
// of an Inst's Ops.Flags field and Data word is determined entirely by Tag.
type Tag uint16

const (
	TagInvalid Tag = iota

	// Arithmetic family: shares one opcode table indexed by encoding form.
	TagAdc
	TagAdd
	TagSub
	TagXor
	TagAnd
	TagOr
	TagSbb
	TagCmp
	TagMov

	// Scale-addressed variants of the arithmetic family.
	TagArithScaleSrc
	TagArithScaleDst
	TagArithScaleImm

	TagLea
	TagLeaRip
	TagMovabs

	TagPush
	TagPop
	TagRet

	TagJmp
	TagCall
	TagCallExtern

	TagJccGteLt  // family: gte (flags=0) / lt (flags=1)
	TagJccGtLte  // family: gt (flags=0) / lte (flags=1)
	TagJccAeB    // family: ae (flags=0) / b (flags=1)
	TagJccABe    // family: a (flags=0) / be (flags=1)
	TagJccEqNe   // family: eq (flags=0) / ne (flags=1)
	TagSetccGteLt
	TagSetccGtLte
	TagSetccAeB
	TagSetccABe
	TagSetccEqNe

	TagSyscall
	TagTest
	TagInt3
	TagImul

	// Debug-info markers: zero-byte pseudo-instructions the emitter
	// forwards to the dbginfo.Sink at the current byte offset instead of
	// encoding, per spec.md §6's "debug-info sink" section.
	TagDbgPrologueEnd
	TagDbgEpilogueBegin
	TagDbgLine
)

// Ops packs reg1 (bits 15..9), reg2 (bits 8..2) and a 2-bit flags field
// (bits 1..0) into the instruction's 16-bit operand header, exactly as
// spec.md §3 describes. Register values are stored unshifted (reg.None is
// 0, reg.RAX through reg.R15B are 1-48), so a 7-bit field holds every
// register.
type Ops uint16

// EncodeOps packs a register pair and flags into an Ops header.
func EncodeOps(reg1, reg2 reg.Register, flags uint8) Ops {
	return Ops((uint16(reg1)&0x7f)<<9 | (uint16(reg2)&0x7f)<<2 | uint16(flags&0x3))
}

// Decode unpacks an Ops header back into its register pair and flags.
func (o Ops) Decode() (reg1, reg2 reg.Register, flags uint8) {
	reg1 = reg.Register((o >> 9) & 0x7f)
	reg2 = reg.Register((o >> 2) & 0x7f)
	flags = uint8(o & 0x3)
	return
}

// Reg1 returns the header's first register operand.
func (o Ops) Reg1() reg.Register { r, _, _ := o.Decode(); return r }

// Reg2 returns the header's second register operand.
func (o Ops) Reg2() reg.Register { _, r, _ := o.Decode(); return r }

// Flags returns the header's 2-bit form selector.
func (o Ops) Flags() uint8 { _, _, f := o.Decode(); return f }

// Inst is one MIR instruction: an 8-byte {tag, ops, data} triple. Mutation
// after construction is forbidden; the emitter is a read-only consumer.
type Inst struct {
	Tag  Tag
	Ops  Ops
	Data uint32
}

// Program is the MIR store the emitter walks: one slice of 8-byte Inst
// records (an array of records, not one slice per field) plus the Extra
// side buffer that ImmPair and Imm64 payloads are indexed into.
type Program struct {
	Insts []Inst
	Extra []uint32
}

// New returns an empty Program ready to be appended to.
func New() *Program {
	return &Program{}
}

// Add appends an instruction and returns its MIR index, the value branch
// and jump targets (Data as an inst index) refer back to.
func (p *Program) Add(i Inst) uint32 {
	idx := uint32(len(p.Insts))
	p.Insts = append(p.Insts, i)
	return idx
}

// AddExtra appends words to the side buffer and returns the index of the
// first word, the value an Inst.Data payload index refers to.
func (p *Program) AddExtra(words ...uint32) uint32 {
	idx := uint32(len(p.Extra))
	p.Extra = append(p.Extra, words...)
	return idx
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int { return len(p.Insts) }
