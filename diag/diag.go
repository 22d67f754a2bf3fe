// Package diag carries the two error kinds spec.md §7 names for the
// emitter: OutOfMemory, which propagates buffer-growth failures unchanged,
// and Fail, a translated diagnostic attached to a source location and
// (when applicable) a MIR instruction index and tag name.
package diag

import (
	"fmt"

	"tlog.app/go/errors"
)

// OutOfMemory is returned unchanged whenever a capacity reservation in
// encbuf cannot be satisfied.
var OutOfMemory = errors.New("out of memory")

// SourceLocation pins a Fail to the declaration's source, the same shape
// the upstream driver attaches to codegen errors for user-visible
// diagnostics.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (loc SourceLocation) String() string {
	if loc.File == "" {
		return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}

// Fail is a terminal diagnostic for the current declaration: unknown MIR
// tag, unimplemented encoding form, missing relocation target,
// displacement overflow, or an unsupported linker backend.
type Fail struct {
	Location SourceLocation
	InstIdx  int
	Tag      string
	Message  string
	Err      error
}

func (f *Fail) Error() string {
	if f.Tag != "" {
		return fmt.Sprintf("%s: inst %d (%s): %s", f.Location, f.InstIdx, f.Tag, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Location, f.Message)
}

func (f *Fail) Unwrap() error { return f.Err }

// Failf builds a Fail at loc/instIdx/tag with a formatted message, routed
// through tlog.app/go/errors the way the rest of the corpus constructs a
// call-site-annotated error.
func Failf(loc SourceLocation, instIdx int, tag string, format string, args ...any) *Fail {
	err := errors.New(format, args...)
	return &Fail{
		Location: loc,
		InstIdx:  instIdx,
		Tag:      tag,
		Message:  err.Error(),
		Err:      err,
	}
}

// Wrap attaches loc/instIdx/tag context to an existing error.
func Wrap(err error, loc SourceLocation, instIdx int, tag string) *Fail {
	wrapped := errors.Wrap(err, "emit %s", tag)
	return &Fail{
		Location: loc,
		InstIdx:  instIdx,
		Tag:      tag,
		Message:  wrapped.Error(),
		Err:      wrapped,
	}
}
