package opcode

import "github.com/xyproto/x64emit/mir"

// Condition is one of the ten relations spec.md §4.2 tabulates for jcc and
// setcc. Tag selects the pair family (gt/lt, a/b, eq/ne); an instruction's
// flags bit then selects the specific relation within that family.
type Condition uint8

const (
	CondGte Condition = iota
	CondGt
	CondLt
	CondLte
	CondAe
	CondA
	CondB
	CondBe
	CondEq
	CondNe
)

type condEntry struct{ jcc, setcc uint8 }

var condTable = map[Condition]condEntry{
	CondGte: {0x8D, 0x9D},
	CondGt:  {0x8F, 0x9F},
	CondLt:  {0x8C, 0x9C},
	CondLte: {0x8E, 0x9E},
	CondAe:  {0x83, 0x93},
	CondA:   {0x87, 0x97},
	CondB:   {0x82, 0x92},
	CondBe:  {0x86, 0x96},
	CondEq:  {0x84, 0x94},
	CondNe:  {0x85, 0x95},
}

// Jcc returns the second opcode byte of the two-byte 0F xx conditional
// jump for cond.
func Jcc(cond Condition) uint8 { return condTable[cond].jcc }

// Setcc returns the second opcode byte of the two-byte 0F xx SETcc for
// cond.
func Setcc(cond Condition) uint8 { return condTable[cond].setcc }

// ConditionFor derives the condition from a jcc/setcc-family tag and its
// instruction's flags bit, per spec.md §3's "tag selects the pair family;
// flags selects the specific relation" rule.
func ConditionFor(tag mir.Tag, flags uint8) (cond Condition, ok bool) {
	bit := flags&1 == 1
	switch tag {
	case mir.TagJccGteLt, mir.TagSetccGteLt:
		if bit {
			return CondLt, true
		}
		return CondGte, true
	case mir.TagJccGtLte, mir.TagSetccGtLte:
		if bit {
			return CondLte, true
		}
		return CondGt, true
	case mir.TagJccAeB, mir.TagSetccAeB:
		if bit {
			return CondB, true
		}
		return CondAe, true
	case mir.TagJccABe, mir.TagSetccABe:
		if bit {
			return CondBe, true
		}
		return CondA, true
	case mir.TagJccEqNe, mir.TagSetccEqNe:
		if bit {
			return CondNe, true
		}
		return CondEq, true
	default:
		return 0, false
	}
}
