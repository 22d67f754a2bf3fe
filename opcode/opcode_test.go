package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xyproto/x64emit/mir"
)

func TestArithTable(t *testing.T) {
	op, ext, ok := Arith(mir.TagAdd, FormMI, false)
	require.True(t, ok)
	require.EqualValues(t, 0x81, op)
	require.EqualValues(t, 0, ext)

	op, _, ok = Arith(mir.TagMov, FormMI, false)
	require.True(t, ok)
	require.EqualValues(t, 0xC7, op)

	op, _, ok = Arith(mir.TagSub, FormMR, true)
	require.True(t, ok)
	require.EqualValues(t, 0x28, op) // 0x29 - 1 for 8-bit operands

	_, _, ok = Arith(mir.TagJmp, FormMI, false)
	require.False(t, ok)
}

func TestConditionTable(t *testing.T) {
	require.EqualValues(t, 0x8D, Jcc(CondGte))
	require.EqualValues(t, 0x9D, Setcc(CondGte))
	require.EqualValues(t, 0x85, Jcc(CondNe))

	cond, ok := ConditionFor(mir.TagJccEqNe, 0)
	require.True(t, ok)
	require.Equal(t, CondEq, cond)

	cond, ok = ConditionFor(mir.TagJccEqNe, 1)
	require.True(t, ok)
	require.Equal(t, CondNe, cond)

	_, ok = ConditionFor(mir.TagAdd, 0)
	require.False(t, ok)
}
