package encbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveThenWrite(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(7))
	b.REX(RexBits{W: true}, false)
	b.Opcode1(0xC7)
	b.ModRMDirect(0, 0)
	b.Imm32(1)
	require.Equal(t, []byte{0x48, 0xC7, 0xC0, 0x01, 0x00, 0x00, 0x00}, b.Bytes())
}

func TestRexOmittedWhenAllZero(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(1))
	b.REX(RexBits{}, false)
	require.Empty(t, b.Bytes())
}

func TestPatchU32LE(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(5))
	b.Opcode1(0xE9)
	b.Disp32(0)
	require.NoError(t, b.PatchU32LE(1, 1))
	require.Equal(t, []byte{0xE9, 0x01, 0x00, 0x00, 0x00}, b.Bytes())
}

func TestFitsIntN(t *testing.T) {
	require.True(t, FitsInt8(127))
	require.False(t, FitsInt8(128))
	require.True(t, FitsInt16(32767))
	require.False(t, FitsInt16(32768))
	require.True(t, FitsInt32(2147483647))
	require.False(t, FitsInt32(2147483648))
}

func TestModRMForms(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(6))
	b.ModRMDirect(7, 0)
	b.ModRMIndirectDisp0(1, 2)
	b.ModRMIndirectDisp8(1, 2)
	b.ModRMIndirectDisp32(1, 2)
	b.ModRMSIBDisp0(0)
	b.ModRMRIPDisp32(3)
	require.Equal(t, []byte{0xF8, 0x0A, 0x4A, 0x8A, 0x04, 0x1D}, b.Bytes())
}
