/*
NAME
  core_test.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package adpcm

import "testing"

// TestCoreStateBounds checks that StepIndex and Predictor stay within
// their documented bounds across a long, varied sequence of samples
// (spec property 1).
func TestCoreStateBounds(t *testing.T) {
	var s State
	samples := make([]int16, 0, 4000)
	for i := 0; i < 2000; i++ {
		samples = append(samples, int16(i*991), int16(-i*773))
	}
	for _, samp := range samples {
		nib := s.EncodeSample(samp)
		if s.StepIndex < 0 || s.StepIndex > maxStepIndex {
			t.Fatalf("StepIndex out of bounds after encode: %d", s.StepIndex)
		}
		if s.Predictor < -32768 || s.Predictor > 32767 {
			t.Fatalf("Predictor out of bounds after encode: %d", s.Predictor)
		}
		_ = nib
	}

	var d State
	for nib := byte(0); nib < 16; nib++ {
		for i := 0; i < 100; i++ {
			d.DecodeSample(nib)
			if d.StepIndex < 0 || d.StepIndex > maxStepIndex {
				t.Fatalf("StepIndex out of bounds after decode: %d", d.StepIndex)
			}
			if d.Predictor < -32768 || d.Predictor > 32767 {
				t.Fatalf("Predictor out of bounds after decode: %d", d.Predictor)
			}
		}
	}
}

// TestEncodeDecodeLockStep checks that, given identical initial state,
// encoding a sample and decoding the emitted nibble yields a
// byte-identical post-state (spec property 2).
func TestEncodeDecodeLockStep(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 1000, -1000, 5, -5, 12345, -12345}
	enc := State{Predictor: 0, StepIndex: 0}
	dec := State{Predictor: 0, StepIndex: 0}
	for _, samp := range samples {
		nib := enc.EncodeSample(samp)
		dec.DecodeSample(nib)
		if enc != dec {
			t.Fatalf("encoder/decoder diverged: enc=%+v dec=%+v after sample %d", enc, dec, samp)
		}
	}
}

// TestDecodeSampleAllNibbles exercises DecodeSample for every nibble
// value to make sure indexTable is indexed with the full 4-bit value
// while the magnitude path only consults the low 3 bits.
func TestDecodeSampleAllNibbles(t *testing.T) {
	for nib := byte(0); nib < 16; nib++ {
		var s State
		s.Reset(0, 0)
		got := s.DecodeSample(nib)

		step := int32(stepTable[0])
		diffMag := (step * (2*int32(nib&7) + 1)) >> 3
		want := int16(diffMag)
		if nib&8 != 0 {
			want = int16(-diffMag)
		}
		if got != want {
			t.Errorf("nibble %04b: DecodeSample() = %d, want %d", nib, got, want)
		}
	}
}
