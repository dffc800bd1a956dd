/*
NAME
  container_test.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wav

import (
	"testing"

	"github.com/ausocean/waveadpcm/codec/codecutil"
	"github.com/google/go-cmp/cmp"
)

// TestPCMHeaderRoundTrip checks spec property 4: emit then parse yields
// an equal structure, modulo HeaderSize which is output-only on emit.
func TestPCMHeaderRoundTrip(t *testing.T) {
	h := PCMHeader{NumChannels: 2, SampleRate: 44100, BitsPerSample: 16, NumSamples: 123}
	buf := make([]byte, fixedPCMHeaderSize+h.NumSamples*h.NumChannels*(h.BitsPerSample/8))

	n, err := EmitPCMHeader(buf, h)
	if err != nil {
		t.Fatalf("EmitPCMHeader: %v", err)
	}
	if n != fixedPCMHeaderSize {
		t.Fatalf("EmitPCMHeader wrote %d bytes, want %d", n, fixedPCMHeaderSize)
	}

	got, err := ParsePCMHeader(buf)
	if err != nil {
		t.Fatalf("ParsePCMHeader: %v", err)
	}
	h.HeaderSize = fixedPCMHeaderSize
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("PCM header round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestADPCMHeaderRoundTrip checks spec property 4 for the ADPCM header.
func TestADPCMHeaderRoundTrip(t *testing.T) {
	blockSize := 1024
	numChannels := 1
	samplesPerBlock := SamplesPerBlockFor(blockSize, numChannels)
	h := ADPCMHeader{
		NumChannels:     numChannels,
		SampleRate:      8000,
		BlockSize:       blockSize,
		BitsPerSample:   4,
		SamplesPerBlock: samplesPerBlock,
		NumSamples:      2048,
	}
	h.BytesPerSec = BytesPerSecFor(blockSize, h.SampleRate, samplesPerBlock)

	dataSize := ADPCMDataSize(blockSize, samplesPerBlock, h.NumSamples)
	buf := make([]byte, fixedADPCMHeaderSize+dataSize)
	n, err := EmitADPCMHeader(buf, h)
	if err != nil {
		t.Fatalf("EmitADPCMHeader: %v", err)
	}
	if n != fixedADPCMHeaderSize {
		t.Fatalf("EmitADPCMHeader wrote %d bytes, want %d", n, fixedADPCMHeaderSize)
	}

	got, err := ParseADPCMHeader(buf)
	if err != nil {
		t.Fatalf("ParseADPCMHeader: %v", err)
	}
	h.DataOffset = fixedADPCMHeaderSize
	h.HeaderSize = fixedADPCMHeaderSize
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("ADPCM header round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestParsePCMHeaderMalformedFormat is scenario E3: a format tag other
// than linear PCM is rejected with InvalidFormat.
func TestParsePCMHeaderMalformedFormat(t *testing.T) {
	h := PCMHeader{NumChannels: 1, SampleRate: 8000, BitsPerSample: 16, NumSamples: 10}
	buf := make([]byte, fixedPCMHeaderSize+20)
	if _, err := EmitPCMHeader(buf, h); err != nil {
		t.Fatal(err)
	}
	// Corrupt the format tag at offset 20 to MS-ADPCM (2).
	buf[20] = 2
	buf[21] = 0

	_, err := ParsePCMHeader(buf)
	if codecutil.CodeOf(err) != codecutil.InvalidFormat {
		t.Fatalf("expected InvalidFormat, got %v", err)
	}
}

// TestParsePCMHeaderSkipsUnknownChunk is scenario E4: an unknown chunk
// between fmt and data is skipped and the sample count still comes out
// correctly.
func TestParsePCMHeaderSkipsUnknownChunk(t *testing.T) {
	h := PCMHeader{NumChannels: 1, SampleRate: 8000, BitsPerSample: 16, NumSamples: 10}
	dataBytes := h.NumSamples * h.NumChannels * (h.BitsPerSample / 8)

	listSize := 38
	buf := make([]byte, fixedPCMHeaderSize+8+listSize+dataBytes)
	// Emit a normal header first, sized for no extra chunk, then splice
	// a LIST chunk in before the data chunk.
	tmp := make([]byte, fixedPCMHeaderSize+dataBytes)
	if _, err := EmitPCMHeader(tmp, h); err != nil {
		t.Fatal(err)
	}

	// Copy everything up to (not including) "data", insert the LIST
	// chunk, then copy "data" onward.
	const dataChunkOff = 36
	n := copy(buf, tmp[:dataChunkOff])
	n += copy(buf[n:], []byte("LIST"))
	sizeBuf := make([]byte, 4)
	codecutil.PutUint32LE(sizeBuf, 0, uint32(listSize))
	n += copy(buf[n:], sizeBuf)
	n += copy(buf[n:], make([]byte, listSize))
	n += copy(buf[n:], tmp[dataChunkOff:])

	got, err := ParsePCMHeader(buf[:n])
	if err != nil {
		t.Fatalf("ParsePCMHeader: %v", err)
	}
	if got.NumSamples != h.NumSamples {
		t.Errorf("NumSamples = %d, want %d", got.NumSamples, h.NumSamples)
	}
}

// TestParseADPCMHeaderFactFallback checks that when the fact chunk is
// absent, the documented (over-counting) estimate is used instead,
// see the over-counting note on ParseADPCMHeader's fact-missing fallback.
func TestParseADPCMHeaderFactFallback(t *testing.T) {
	blockSize := 256
	numChannels := 1
	samplesPerBlock := SamplesPerBlockFor(blockSize, numChannels)
	dataSize := blockSize * 3

	buf := make([]byte, 20+fixedPCMHeaderSize) // generous upper bound.
	buf = buf[:0]
	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("fmt ")...)
	fmtPayload := make([]byte, 20)
	codecutil.PutUint16LE(fmtPayload, 0, uint16(ImaAdpcmTag))
	codecutil.PutUint16LE(fmtPayload, 2, uint16(numChannels))
	codecutil.PutUint32LE(fmtPayload, 4, 8000)
	codecutil.PutUint32LE(fmtPayload, 8, uint32(BytesPerSecFor(blockSize, 8000, samplesPerBlock)))
	codecutil.PutUint16LE(fmtPayload, 12, uint16(blockSize))
	codecutil.PutUint16LE(fmtPayload, 14, 4)
	codecutil.PutUint16LE(fmtPayload, 16, 2)
	codecutil.PutUint16LE(fmtPayload, 18, uint16(samplesPerBlock))
	szBuf := make([]byte, 4)
	codecutil.PutUint32LE(szBuf, 0, uint32(len(fmtPayload)))
	buf = append(buf, szBuf...)
	buf = append(buf, fmtPayload...)
	buf = append(buf, []byte("data")...)
	codecutil.PutUint32LE(szBuf, 0, uint32(dataSize))
	buf = append(buf, szBuf...)
	buf = append(buf, make([]byte, dataSize)...)

	got, err := ParseADPCMHeader(buf)
	if err != nil {
		t.Fatalf("ParseADPCMHeader: %v", err)
	}
	want := (dataSize/blockSize + 1) * samplesPerBlock
	if got.NumSamples != want {
		t.Errorf("NumSamples = %d, want %d (fact-absent estimate)", got.NumSamples, want)
	}
}

func TestEmitPCMHeaderInsufficientBuffer(t *testing.T) {
	h := PCMHeader{NumChannels: 1, SampleRate: 8000, BitsPerSample: 16, NumSamples: 10}
	buf := make([]byte, 10) // too small for the fixed 44-byte header.
	_, err := EmitPCMHeader(buf, h)
	if codecutil.CodeOf(err) != codecutil.InsufficientBuffer {
		t.Fatalf("expected InsufficientBuffer, got %v", err)
	}
}
