package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceLocationString(t *testing.T) {
	require.Equal(t, "3:4", SourceLocation{Line: 3, Column: 4}.String())
	require.Equal(t, "foo.mir:3:4", SourceLocation{File: "foo.mir", Line: 3, Column: 4}.String())
}

func TestFailfMessage(t *testing.T) {
	loc := SourceLocation{File: "foo.mir", Line: 1, Column: 1}
	f := Failf(loc, 5, "add", "unknown form %d", 2)
	require.Contains(t, f.Error(), "foo.mir:1:1")
	require.Contains(t, f.Error(), "inst 5")
	require.Contains(t, f.Error(), "add")
	require.Contains(t, f.Error(), "unknown form 2")
}

func TestWrapAttachesLocationAndTag(t *testing.T) {
	base := errors.New("boom")
	loc := SourceLocation{Line: 1, Column: 1}
	f := Wrap(base, loc, 2, "mov")
	require.Contains(t, f.Error(), "1:1")
	require.Contains(t, f.Error(), "mov")
	require.Contains(t, f.Error(), "boom")
	require.NotNil(t, f.Unwrap())
}
