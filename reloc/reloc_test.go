package reloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMachOSinkRecordsBranch(t *testing.T) {
	s := NewMachOSink()
	require.NoError(t, s.Branch(10, SymbolIndex(3)))
	require.Len(t, s.Relocations, 1)
	r := s.Relocations[0]
	require.EqualValues(t, 10, r.Address)
	require.EqualValues(t, 3, r.SymbolNum)
	require.True(t, r.PCRel)
	require.EqualValues(t, 2, r.Length)
	require.Equal(t, x86_64RelocBranch, r.RelocType)
}

func TestMachOSinkRecordsGOTLoad(t *testing.T) {
	s := NewMachOSink()
	require.NoError(t, s.GOTLoad(20, GOTIndex(1)))
	require.Len(t, s.Relocations, 1)
	require.Equal(t, x86_64RelocGOT, s.Relocations[0].RelocType)
}

func TestUnimplementedBackends(t *testing.T) {
	var elf ELFSink
	err := elf.Branch(0, 0)
	require.Error(t, err)
	var unimpl *Unimplemented
	require.ErrorAs(t, err, &unimpl)
	require.Equal(t, "elf", unimpl.Backend)

	var pe PESink
	require.Error(t, pe.GOTLoad(0, 0))
}
