/*
NAME
  adpcm_whole_test.go

DESCRIPTION
  adpcm_whole_test.go exercises the whole-file drivers (EncodeWhole,
  DecodeWhole) including representative end-to-end scenarios.

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

import (
	"testing"

	"github.com/ausocean/waveadpcm/codec/codecutil"
	"github.com/ausocean/waveadpcm/codec/wav"
)

// TestE1MonoSilence: mono, 8000Hz, 16-bit, 2048 zero samples, block 1024.
// Decoding reproduces all-zero samples exactly.
func TestE1MonoSilence(t *testing.T) {
	samples := [][]int16{make([]int16, 2048)}
	out, err := EncodeWhole(samples, EncodeParams{Channels: 1, SampleRate: 8000, BlockSize: 1024})
	if err != nil {
		t.Fatalf("EncodeWhole: %v", err)
	}

	header, decoded, err := DecodeWhole(out)
	if err != nil {
		t.Fatalf("DecodeWhole: %v", err)
	}
	if header.NumChannels != 1 || header.SamplesPerBlock != 2041 {
		t.Errorf("header = %+v, want NumChannels=1 SamplesPerBlock=2041", header)
	}
	if len(decoded[0]) != 2048 {
		t.Fatalf("decoded %d samples, want 2048", len(decoded[0]))
	}
	for i, s := range decoded[0] {
		if s != 0 {
			t.Fatalf("decoded[%d] = %d, want 0 (silence must reproduce exactly)", i, s)
		}
	}
}

// TestE2StereoImpulse: stereo input that is silent except for two
// impulses per channel (samples 0 and 250); decoding must reproduce the exact sample count and the exact first
// sample of each channel (predictor is never quantised).
func TestE2StereoImpulse(t *testing.T) {
	n := 500
	left := make([]int16, n)
	right := make([]int16, n)
	left[0] = 12345
	right[0] = -12345
	left[250] = 30000
	right[250] = -30000

	out, err := EncodeWhole([][]int16{left, right}, EncodeParams{Channels: 2, SampleRate: 44100, BlockSize: 256})
	if err != nil {
		t.Fatalf("EncodeWhole: %v", err)
	}

	header, decoded, err := DecodeWhole(out)
	if err != nil {
		t.Fatalf("DecodeWhole: %v", err)
	}
	if header.NumChannels != 2 {
		t.Fatalf("NumChannels = %d, want 2", header.NumChannels)
	}
	if len(decoded[0]) != n || len(decoded[1]) != n {
		t.Fatalf("decoded lengths = (%d, %d), want (%d, %d)", len(decoded[0]), len(decoded[1]), n, n)
	}
	if decoded[0][0] != left[0] || decoded[1][0] != right[0] {
		t.Errorf("first samples = (%d, %d), want (%d, %d)", decoded[0][0], decoded[1][0], left[0], right[0])
	}
}

// TestE3MalformedFormatTag: a PCM header with an unrecognised format tag
// is rejected with InvalidFormat.
func TestE3MalformedFormatTag(t *testing.T) {
	buf := make([]byte, 64)
	copy(buf[0:4], "RIFF")
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	codecutil.PutUint32LE(buf, 16, 16)
	codecutil.PutUint16LE(buf, 20, 99) // unrecognised tag.
	copy(buf[36:40], "data")

	_, err := wav.ParsePCMHeader(buf)
	if codecutil.CodeOf(err) != codecutil.InvalidFormat {
		t.Fatalf("expected InvalidFormat, got %v", err)
	}
}

// TestE4ChunkSkip: an unrecognised chunk between fmt and data in an
// ADPCM file is skipped without disturbing the parse.
func TestE4ChunkSkip(t *testing.T) {
	samples := [][]int16{make([]int16, 100)}
	for i := range samples[0] {
		samples[0][i] = int16(i * 37)
	}
	out, err := EncodeWhole(samples, EncodeParams{Channels: 1, SampleRate: 8000, BlockSize: 256})
	if err != nil {
		t.Fatalf("EncodeWhole: %v", err)
	}

	// Splice a junk chunk in right after the fact chunk (offset 52, per
	// the fixed 60-byte ADPCM header layout) and before "data".
	const factEnd = 52
	junk := []byte("JUNK")
	szBuf := make([]byte, 4)
	codecutil.PutUint32LE(szBuf, 0, 8)
	spliced := append([]byte{}, out[:factEnd]...)
	spliced = append(spliced, junk...)
	spliced = append(spliced, szBuf...)
	spliced = append(spliced, make([]byte, 8)...)
	spliced = append(spliced, out[factEnd:]...)

	header, decoded, err := DecodeWhole(spliced)
	if err != nil {
		t.Fatalf("DecodeWhole with spliced chunk: %v", err)
	}
	if len(decoded[0]) != 100 || header.NumSamples != 100 {
		t.Fatalf("decoded %d samples (header.NumSamples=%d), want 100", len(decoded[0]), header.NumSamples)
	}
}

// TestE5BufferTooSmall: EncodeMonoBlock rejects a destination buffer
// too small to hold the block it is asked to write.
func TestE5BufferTooSmall(t *testing.T) {
	src := []int16{1, 2, 3, 4, 5}
	var state State
	dst := make([]byte, EncodeMonoBlockSize(len(src))-1)
	_, err := EncodeMonoBlock(dst, src, &state)
	if CodeOf(err) != InsufficientBuffer {
		t.Fatalf("expected InsufficientBuffer, got %v", err)
	}
}

// TestE6Residual: the residual (encode, decode, subtract) of a
// representative signal stays bounded relative to the input's dynamic
// range, matching IMA-ADPCM's known quantisation error bound.
func TestE6Residual(t *testing.T) {
	n := 4000
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(10000 * sinApprox(float64(i)/40))
	}

	out, err := EncodeWhole([][]int16{samples}, EncodeParams{Channels: 1, SampleRate: 8000, BlockSize: 1024})
	if err != nil {
		t.Fatalf("EncodeWhole: %v", err)
	}
	_, decoded, err := DecodeWhole(out)
	if err != nil {
		t.Fatalf("DecodeWhole: %v", err)
	}

	const bound = 2000 // generous bound on IMA-ADPCM quantisation error for this amplitude.
	for i, s := range samples {
		diff := int(decoded[0][i]) - int(s)
		if diff < -bound || diff > bound {
			t.Fatalf("residual at %d = %d, exceeds bound %d", i, diff, bound)
		}
	}
}

// sinApprox is a tiny Taylor-series sine approximation so the test has
// no floating point library dependency beyond what's already imported.
func sinApprox(x float64) float64 {
	for x > 3.14159265 {
		x -= 2 * 3.14159265
	}
	for x < -3.14159265 {
		x += 2 * 3.14159265
	}
	x2 := x * x
	return x * (1 - x2/6*(1-x2/20*(1-x2/42)))
}
