// Package reg names the x86_64 general-purpose registers the emitter can
// address and derives the bits the encoder needs from a register name:
// its low three-bit ISA encoding, whether it lies in the extended
// (r8-r15) half, and its operand width.
package reg

// Register is a tagged enumeration over the x86_64 GPR names the backend
// addresses, at every width the arithmetic and move families use.
type Register uint8

const (
	None Register = iota

	RAX
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15

	EAX
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
	R8D
	R9D
	R10D
	R11D
	R12D
	R13D
	R14D
	R15D

	AL
	CL
	DL
	BL
	SPL
	BPL
	SIL
	DIL
	R8B
	R9B
	R10B
	R11B
	R12B
	R13B
	R14B
	R15B
)

type regInfo struct {
	name     string
	lowID    uint8
	size     int
	extended bool
}

var info = [...]regInfo{
	None: {"none", 0, 0, false},

	RAX: {"rax", 0, 64, false},
	RCX: {"rcx", 1, 64, false},
	RDX: {"rdx", 2, 64, false},
	RBX: {"rbx", 3, 64, false},
	RSP: {"rsp", 4, 64, false},
	RBP: {"rbp", 5, 64, false},
	RSI: {"rsi", 6, 64, false},
	RDI: {"rdi", 7, 64, false},
	R8:  {"r8", 0, 64, true},
	R9:  {"r9", 1, 64, true},
	R10: {"r10", 2, 64, true},
	R11: {"r11", 3, 64, true},
	R12: {"r12", 4, 64, true},
	R13: {"r13", 5, 64, true},
	R14: {"r14", 6, 64, true},
	R15: {"r15", 7, 64, true},

	EAX:  {"eax", 0, 32, false},
	ECX:  {"ecx", 1, 32, false},
	EDX:  {"edx", 2, 32, false},
	EBX:  {"ebx", 3, 32, false},
	ESP:  {"esp", 4, 32, false},
	EBP:  {"ebp", 5, 32, false},
	ESI:  {"esi", 6, 32, false},
	EDI:  {"edi", 7, 32, false},
	R8D:  {"r8d", 0, 32, true},
	R9D:  {"r9d", 1, 32, true},
	R10D: {"r10d", 2, 32, true},
	R11D: {"r11d", 3, 32, true},
	R12D: {"r12d", 4, 32, true},
	R13D: {"r13d", 5, 32, true},
	R14D: {"r14d", 6, 32, true},
	R15D: {"r15d", 7, 32, true},

	AL:   {"al", 0, 8, false},
	CL:   {"cl", 1, 8, false},
	DL:   {"dl", 2, 8, false},
	BL:   {"bl", 3, 8, false},
	SPL:  {"spl", 4, 8, false},
	BPL:  {"bpl", 5, 8, false},
	SIL:  {"sil", 6, 8, false},
	DIL:  {"dil", 7, 8, false},
	R8B:  {"r8b", 0, 8, true},
	R9B:  {"r9b", 1, 8, true},
	R10B: {"r10b", 2, 8, true},
	R11B: {"r11b", 3, 8, true},
	R12B: {"r12b", 4, 8, true},
	R13B: {"r13b", 5, 8, true},
	R14B: {"r14b", 6, 8, true},
	R15B: {"r15b", 7, 8, true},
}

// LowID returns the low three bits of the ISA encoding, the value written
// into a ModR/M or SIB field before any REX extension bit is folded in.
func (r Register) LowID() uint8 { return info[r].lowID }

// IsExtended reports whether this register lies in the r8-r15 half, which
// forces the corresponding REX.B/R/X bit to be set wherever it appears.
func (r Register) IsExtended() bool { return info[r].extended }

// Size returns the operand width in bits: 8, 16 (unused by this backend),
// 32 or 64. None reports 0.
func (r Register) Size() int { return info[r].size }

// String returns the assembly mnemonic, e.g. "rax", "r13d", "sil".
func (r Register) String() string {
	if int(r) >= len(info) {
		return "invalid"
	}
	return info[r].name
}

// To64 returns the 64-bit register that shares this register's low-ID and
// extension bit, the widening projection spec.md's register model requires
// (e.g. eax -> rax, r9b -> r9). None widens to None.
func (r Register) To64() Register {
	if r == None {
		return None
	}
	id, ext := r.LowID(), r.IsExtended()
	for cand := RAX; cand <= R15; cand++ {
		if info[cand].lowID == id && info[cand].extended == ext {
			return cand
		}
	}
	return None
}

// Lookup resolves a register mnemonic (case-sensitive, lower-case) to a
// Register, mirroring the teacher's x86_64Registers name table.
func Lookup(name string) (Register, bool) {
	for i, ri := range info {
		if Register(i) != None && ri.name == name {
			return Register(i), true
		}
	}
	return None, false
}
