// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "testing"

func TestWireIDForKnownKinds(t *testing.T) {
	t.Parallel()
	cases := map[Kind]uint16{
		KindNullArray:        WireNull,
		KindPrimitiveArray:   WirePrimitive,
		KindConstant:         WireConstant,
		KindSparse:           WireSparse,
		KindPatched:          WirePatched,
		KindFrameOfReference: WireFrameOfReference,
		KindDictionary:       WireDictionary,
		KindRunEnd:           WireRunEnd,
		KindBitPacked:        WireBitPacked,
		KindExtensionArray:   WireExtension,
	}
	for k, want := range cases {
		got, ok := wireIDFor(k)
		if !ok || got != want {
			t.Errorf("wireIDFor(%s) = %d,%v want %d,true", k, got, ok, want)
		}
	}
}
