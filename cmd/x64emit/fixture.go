package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xyproto/x64emit/emit"
	"github.com/xyproto/x64emit/mir"
	"github.com/xyproto/x64emit/reg"
)

// parseFixture reads a textual MIR fixture and builds a mir.Program from
// it. Two line shapes are recognized:
//
//	extra <u32> [<u32> ...]
//	<tag> <reg1|-> <reg2|-> <flags> <data>
//
// An "extra" line appends raw words to the program's side buffer and is
// used to stage an ImmPair/Imm64/LineMarker payload immediately before the
// instruction line whose Data field indexes it. Blank lines and lines
// starting with '#' are ignored.
func parseFixture(r io.Reader) (*mir.Program, error) {
	p := mir.New()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if fields[0] == "extra" {
			words := make([]uint32, 0, len(fields)-1)
			for _, f := range fields[1:] {
				v, err := parseU32(f)
				if err != nil {
					return nil, fmt.Errorf("fixture:%d: extra word %q: %w", lineNo, f, err)
				}
				words = append(words, v)
			}
			p.AddExtra(words...)
			continue
		}

		if len(fields) != 5 {
			return nil, fmt.Errorf("fixture:%d: want 5 fields (tag reg1 reg2 flags data), got %d", lineNo, len(fields))
		}
		tag, ok := emit.TagByName(fields[0])
		if !ok {
			return nil, fmt.Errorf("fixture:%d: unknown tag %q", lineNo, fields[0])
		}
		reg1, err := parseReg(fields[1])
		if err != nil {
			return nil, fmt.Errorf("fixture:%d: reg1: %w", lineNo, err)
		}
		reg2, err := parseReg(fields[2])
		if err != nil {
			return nil, fmt.Errorf("fixture:%d: reg2: %w", lineNo, err)
		}
		flags, err := strconv.ParseUint(fields[3], 10, 2)
		if err != nil {
			return nil, fmt.Errorf("fixture:%d: flags: %w", lineNo, err)
		}
		data, err := parseU32(fields[4])
		if err != nil {
			return nil, fmt.Errorf("fixture:%d: data: %w", lineNo, err)
		}
		p.Add(mir.Inst{
			Tag:  tag,
			Ops:  mir.EncodeOps(reg1, reg2, uint8(flags)),
			Data: data,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseReg(s string) (reg.Register, error) {
	if s == "-" {
		return reg.None, nil
	}
	r, ok := reg.Lookup(s)
	if !ok {
		return reg.None, fmt.Errorf("unknown register %q", s)
	}
	return r, nil
}

func parseU32(s string) (uint32, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		uv, uerr := strconv.ParseUint(s, 0, 32)
		if uerr != nil {
			return 0, err
		}
		return uint32(uv), nil
	}
	return uint32(int32(v)), nil
}
