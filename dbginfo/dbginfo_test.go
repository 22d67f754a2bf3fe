package dbginfo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNopSinkDiscardsMarkers(t *testing.T) {
	var s NopSink
	s.PrologueEnd(0)
	s.EpilogueBegin(1)
	s.Line(2, 3, 4)
}

func TestRecordingSinkOrder(t *testing.T) {
	rec := &RecordingSink{}
	rec.PrologueEnd(0)
	rec.Line(4, 10, 2)
	rec.EpilogueBegin(9)

	require.Equal(t, []Marker{
		{Kind: "prologue_end", PC: 0},
		{Kind: "line", PC: 4, Line: 10, Column: 2},
		{Kind: "epilogue_begin", PC: 9},
	}, rec.Markers)
}
