// Package debug provides helpers for producing human readable dumps of
// internal structures.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates an indented textual dump of a tree-like structure.
// Depth is expressed in levels, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

// Line writes a single formatted line at the requested depth.
func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes a labeled, quoted value at the requested depth. Empty
// values stay unquoted so missing fields are easy to spot.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Quoted writes a bare quoted value at the requested depth. Used for
// character data which has no natural label.
func (tw TreeWriter) Quoted(depth int, value string) {
	tw.pad(depth)
	tw.w.WriteString(strconv.Quote(value))
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
