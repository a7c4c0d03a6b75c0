// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable tree dump of a to w, one line per
// node, children indented under their parent — the debug rendering
// used while developing and testing the codec set, not a stable wire
// format (see wire.go for that).
func Dump(w io.Writer, a Array) {
	dump(w, a, 0)
}

func dump(w io.Writer, a Array, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s(dtype=%s, len=%d, nbytes=%d)%s\n",
		indent, a.Kind(), a.DType(), a.Len(), a.NBytes(), dumpMetadata(a))

	if ca, ok := a.(childArrays); ok {
		for _, c := range ca.children() {
			dump(w, c, depth+1)
		}
	}
}

// dumpMetadata renders codec-specific metadata inline, mirroring how
// much detail each encoding's Compress* constructors track.
func dumpMetadata(a Array) string {
	switch n := a.(type) {
	case *ConstantArray:
		return fmt.Sprintf(" scalar=%s", n.scalar)
	case *SparseArray:
		return fmt.Sprintf(" fill=%s indices_offset=%d", n.fillValue, n.indicesOffset)
	case *PatchedArray:
		return fmt.Sprintf(" patches=%d indices_offset=%d", n.indices.Len(), n.indicesOffset)
	case *FrameOfReferenceArray:
		return fmt.Sprintf(" reference=%s shift=%d", n.reference, n.shift)
	case *DictionaryArray:
		return fmt.Sprintf(" distinct=%d", n.values.Len())
	case *RunEndArray:
		return fmt.Sprintf(" runs=%d offset=%d", n.ends.Len(), n.offset)
	case *BitPackedArray:
		return fmt.Sprintf(" bit_width=%d", n.bitWidth)
	default:
		return ""
	}
}

// DumpString returns Dump's output as a string, for use in test
// failure messages and REPL-style inspection.
func DumpString(a Array) string {
	var b strings.Builder
	Dump(&b, a)
	return b.String()
}
