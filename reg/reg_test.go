package reg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLowIDAndExtended(t *testing.T) {
	require.EqualValues(t, 0, RAX.LowID())
	require.False(t, RAX.IsExtended())
	require.EqualValues(t, 0, R8.LowID())
	require.True(t, R8.IsExtended())
	require.EqualValues(t, 5, RBP.LowID())
	require.EqualValues(t, 4, RSP.LowID())
}

func TestSize(t *testing.T) {
	require.Equal(t, 64, RAX.Size())
	require.Equal(t, 32, EAX.Size())
	require.Equal(t, 8, AL.Size())
	require.Equal(t, 0, None.Size())
}

func TestString(t *testing.T) {
	require.Equal(t, "rax", RAX.String())
	require.Equal(t, "r13d", R13D.String())
	require.Equal(t, "sil", SIL.String())
	require.Equal(t, "invalid", Register(255).String())
}

func TestTo64(t *testing.T) {
	require.Equal(t, RAX, EAX.To64())
	require.Equal(t, R9, R9B.To64())
	require.Equal(t, RBP, BPL.To64())
	require.Equal(t, None, None.To64())
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("r12")
	require.True(t, ok)
	require.Equal(t, R12, r)

	_, ok = Lookup("not-a-register")
	require.False(t, ok)
}
