//go:build unix

// Optional smoke path: map emitted bytes into executable memory and jump
// into them, for callers who want to prove a generated sequence actually
// runs rather than merely disassembles cleanly. Not exercised by the
// ordinary encoding tests, which never require executable memory.
package x86asmcheck

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ExecBuffer holds an mmap'd region of freshly emitted, executable code.
type ExecBuffer struct {
	mem []byte
}

// MapExecutable copies code into a new PROT_EXEC mapping.
func MapExecutable(code []byte) (*ExecBuffer, error) {
	mem, err := unix.Mmap(-1, 0, len(code), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("x86asmcheck: mmap: %w", err)
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		unix.Munmap(mem)
		return nil, fmt.Errorf("x86asmcheck: mprotect: %w", err)
	}
	return &ExecBuffer{mem: mem}, nil
}

// Addr returns the mapping's base address as a uintptr, for a caller that
// constructs its own function pointer to jump into.
func (b *ExecBuffer) Addr() uintptr {
	return uintptr(unsafe.Pointer(&b.mem[0]))
}

// Close unmaps the executable region.
func (b *ExecBuffer) Close() error {
	return unix.Munmap(b.mem)
}
