package reloc

// Mach-O relocation types this backend emits, from <mach-o/x86_64/reloc.h>.
const (
	x86_64RelocBranch uint8 = 2
	x86_64RelocGOT    uint8 = 4
)

// machoRelocationInfo mirrors struct relocation_info from
// <mach-o/reloc.h>: a 32-bit address followed by a 24-bit symbol/section
// number and a 8 bits of packed flags (pcrel, length, extern, type).
type machoRelocationInfo struct {
	Address    int32
	SymbolNum  uint32 // 24 bits
	PCRel      bool
	Length     uint8 // log2 of relocated field length
	External   bool
	RelocType  uint8
}

// MachOSink accumulates relocation_info records for the Mach-O object
// writer, generalizing the teacher's PC-relative patch bookkeeping
// (macho.go, codegen_macho_writer.go) from "patch it myself" to "hand the
// linker backend a request," the collaboration boundary spec.md §6 draws.
type MachOSink struct {
	Relocations []machoRelocationInfo
}

// NewMachOSink returns an empty Mach-O relocation sink.
func NewMachOSink() *MachOSink {
	return &MachOSink{}
}

// Branch records a call to an external symbol as an X86_64_RELOC_BRANCH
// entry: pcrel, 4-byte field, extern symbol reference.
func (m *MachOSink) Branch(offset uint64, target SymbolIndex) error {
	m.Relocations = append(m.Relocations, machoRelocationInfo{
		Address:   int32(offset),
		SymbolNum: uint32(target),
		PCRel:     true,
		Length:    2,
		External:  true,
		RelocType: x86_64RelocBranch,
	})
	return nil
}

// GOTLoad records a RIP-relative GOT load as an X86_64_RELOC_GOT entry.
func (m *MachOSink) GOTLoad(offset uint64, target GOTIndex) error {
	m.Relocations = append(m.Relocations, machoRelocationInfo{
		Address:   int32(offset),
		SymbolNum: uint32(target),
		PCRel:     true,
		Length:    2,
		External:  true,
		RelocType: x86_64RelocGOT,
	})
	return nil
}

// ELFSink and PESink are not wired: spec.md §6 states only the Mach-O
// backend is implemented today. Kept as named stand-ins so callers can
// select a target platform and get a clear diagnostic rather than a
// missing symbol.
type ELFSink struct{}

func (ELFSink) Branch(offset uint64, target SymbolIndex) error {
	return &Unimplemented{Backend: "elf"}
}

func (ELFSink) GOTLoad(offset uint64, target GOTIndex) error {
	return &Unimplemented{Backend: "elf"}
}

type PESink struct{}

func (PESink) Branch(offset uint64, target SymbolIndex) error {
	return &Unimplemented{Backend: "pe"}
}

func (PESink) GOTLoad(offset uint64, target GOTIndex) error {
	return &Unimplemented{Backend: "pe"}
}
