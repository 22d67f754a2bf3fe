package mir

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/xyproto/x64emit/reg"
)

func TestRecordSize(t *testing.T) {
	require.EqualValues(t, 8, unsafe.Sizeof(Inst{}))
}

func TestOpsRoundTrip(t *testing.T) {
	regs := []reg.Register{reg.None, reg.RAX, reg.R15, reg.EBX, reg.R8D, reg.SIL, reg.R15B}
	for _, r1 := range regs {
		for _, r2 := range regs {
			for flags := uint8(0); flags < 4; flags++ {
				ops := EncodeOps(r1, r2, flags)
				gotR1, gotR2, gotFlags := ops.Decode()
				require.Equal(t, r1, gotR1)
				require.Equal(t, r2, gotR2)
				require.Equal(t, flags, gotFlags)
			}
		}
	}
}

func TestImmPairRoundTrip(t *testing.T) {
	p := New()
	idx := p.PutImmPair(ImmPair{DestOff: -42, Operand: 123456})
	got := p.ImmPairAt(idx)
	require.EqualValues(t, -42, got.DestOff)
	require.EqualValues(t, 123456, got.Operand)
}

func TestImm64RoundTrip(t *testing.T) {
	p := New()
	const want = uint64(0x1122334455667788)
	idx := p.PutImm64(want)
	require.Equal(t, want, p.Imm64At(idx))
}

func TestProgramAdd(t *testing.T) {
	p := New()
	idx0 := p.Add(Inst{Tag: TagRet})
	idx1 := p.Add(Inst{Tag: TagRet})
	require.EqualValues(t, 0, idx0)
	require.EqualValues(t, 1, idx1)
	require.Equal(t, 2, p.Len())
}
