package emit

import "github.com/xyproto/x64emit/mir"

var tagNames = map[mir.Tag]string{
	mir.TagAdc:              "adc",
	mir.TagAdd:              "add",
	mir.TagSub:              "sub",
	mir.TagXor:              "xor",
	mir.TagAnd:              "and",
	mir.TagOr:               "or",
	mir.TagSbb:              "sbb",
	mir.TagCmp:              "cmp",
	mir.TagMov:              "mov",
	mir.TagArithScaleSrc:    "arith_scale_src",
	mir.TagArithScaleDst:    "arith_scale_dst",
	mir.TagArithScaleImm:    "arith_scale_imm",
	mir.TagLea:              "lea",
	mir.TagLeaRip:           "lea_rip",
	mir.TagMovabs:           "movabs",
	mir.TagPush:             "push",
	mir.TagPop:              "pop",
	mir.TagRet:              "ret",
	mir.TagJmp:              "jmp",
	mir.TagCall:             "call",
	mir.TagCallExtern:       "call_extern",
	mir.TagJccGteLt:         "jcc_gte_lt",
	mir.TagJccGtLte:         "jcc_gt_lte",
	mir.TagJccAeB:           "jcc_ae_b",
	mir.TagJccABe:           "jcc_a_be",
	mir.TagJccEqNe:          "jcc_eq_ne",
	mir.TagSetccGteLt:       "setcc_gte_lt",
	mir.TagSetccGtLte:       "setcc_gt_lte",
	mir.TagSetccAeB:         "setcc_ae_b",
	mir.TagSetccABe:         "setcc_a_be",
	mir.TagSetccEqNe:        "setcc_eq_ne",
	mir.TagSyscall:          "syscall",
	mir.TagTest:             "test",
	mir.TagInt3:             "int3",
	mir.TagImul:             "imul",
	mir.TagDbgPrologueEnd:   "dbg_prologue_end",
	mir.TagDbgEpilogueBegin: "dbg_epilogue_begin",
	mir.TagDbgLine:          "dbg_line",
}

// tagString names a MIR tag for diagnostics and log lines, falling back to
// "invalid" for the zero tag or any value outside the enumeration.
func tagString(t mir.Tag) string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "invalid"
}

var namesToTags map[string]mir.Tag

func init() {
	namesToTags = make(map[string]mir.Tag, len(tagNames))
	for tag, name := range tagNames {
		namesToTags[name] = tag
	}
}

// TagByName resolves a fixture's textual tag name back to its mir.Tag, the
// inverse of tagString, for callers building a Program from source text
// rather than from a compiler's own IR.
func TagByName(name string) (mir.Tag, bool) {
	t, ok := namesToTags[name]
	return t, ok
}
