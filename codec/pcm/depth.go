/*
NAME
  depth.go

DESCRIPTION
  depth.go converts packed N-bit PCM storage to the canonical signed
  32-bit internal sample used by codec/wav and codec/adpcm, and back.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pcm

import "github.com/pkg/errors"

// Depth is a tagged variant naming a packed PCM storage width, used in
// place of function-pointer dispatch so the hot conversion loop is a
// predictable switch rather than an indirect call.
type Depth int

const (
	Bits8 Depth = iota
	Bits16
	Bits24
	Bits32
)

// bits returns the storage width in bits for d.
func (d Depth) bits() int {
	switch d {
	case Bits8:
		return 8
	case Bits16:
		return 16
	case Bits24:
		return 24
	case Bits32:
		return 32
	default:
		return 0
	}
}

// DepthFromBits maps a bits-per-sample count to a Depth.
func DepthFromBits(n int) (Depth, error) {
	switch n {
	case 8:
		return Bits8, nil
	case 16:
		return Bits16, nil
	case 24:
		return Bits24, nil
	case 32:
		return Bits32, nil
	default:
		return 0, errors.Errorf("unsupported bits-per-sample: %d", n)
	}
}

// ToCanonical normalises a packed n-bit sample (held in the low n bits of
// raw) to a signed 32-bit internal sample: sign-extend, then left-shift
// so the storage MSB aligns with bit 31. 8-bit PCM is additionally
// unbiased by 128, per the WAVE convention that 8-bit PCM is unsigned.
func ToCanonical(d Depth, raw uint32) int32 {
	n := d.bits()
	var bias int32
	if d == Bits8 {
		bias = 128
	}
	// Sign-extend the low n bits.
	shift := uint(32 - n)
	signed := int32(raw<<shift) >> shift
	return (signed - bias) << shift
}

// FromCanonical is the inverse of ToCanonical: right-shift back to n
// bits and, for 8-bit, re-add the 128 bias. Values are truncated by the
// shift; no explicit clipping is performed here.
func FromCanonical(d Depth, x int32) uint32 {
	n := d.bits()
	shift := uint(32 - n)
	var bias int32
	if d == Bits8 {
		bias = 128
	}
	v := (x >> shift) + bias
	mask := uint32(1)<<uint(n) - 1
	return uint32(v) & mask
}

// Pack writes n-bit samples (one per element of samples) into little-
// endian packed PCM bytes of the given depth.
func Pack(d Depth, samples []int32) []byte {
	bytesPerSample := d.bits() / 8
	out := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		raw := FromCanonical(d, s)
		for b := 0; b < bytesPerSample; b++ {
			out[i*bytesPerSample+b] = byte(raw >> uint(8*b))
		}
	}
	return out
}

// Unpack reads little-endian packed PCM bytes of the given depth into
// canonical 32-bit samples.
func Unpack(d Depth, data []byte) []int32 {
	bytesPerSample := d.bits() / 8
	n := len(data) / bytesPerSample
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		var raw uint32
		for b := 0; b < bytesPerSample; b++ {
			raw |= uint32(data[i*bytesPerSample+b]) << uint(8*b)
		}
		out[i] = ToCanonical(d, raw)
	}
	return out
}
