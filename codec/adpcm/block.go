/*
NAME
  block.go

DESCRIPTION
  block.go implements the mono and stereo ADPCM block framing layouts
  per-channel block headers, nibble packing
  and the stereo 8-sample interleave, grounded on the teacher's
  header/nibble packing idiom in adpcm.go and on original_source's
  ima_adpcm.c for the exact interleave order.

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

import "github.com/ausocean/waveadpcm/codec/codecutil"

const (
	monoHeaderSize   = 4 // predictor(2) + step index(1) + reserved(1)
	stereoHeaderSize = 8 // one monoHeaderSize per channel
	stereoGroupSize  = 8 // samples per channel per interleaved 32-bit word
)

// MonoDecodableSamples returns the number of samples (including the
// header's verbatim sample 0) that can be decoded from a mono block
// whose on-wire size is dataSize bytes.
func MonoDecodableSamples(dataSize int) int {
	if dataSize < monoHeaderSize {
		return 0
	}
	return (dataSize-monoHeaderSize)*2 + 1
}

// StereoDecodableSamples returns the number of samples per channel
// (including the header's verbatim sample 0) that can be decoded from a
// stereo block whose on-wire size is dataSize bytes.
func StereoDecodableSamples(dataSize int) int {
	if dataSize < stereoHeaderSize {
		return 0
	}
	return (dataSize - stereoHeaderSize) + 1
}

// EncodeMonoBlockSize returns the number of bytes EncodeMonoBlock will
// write for a block of numSamples samples.
func EncodeMonoBlockSize(numSamples int) int {
	nibbles := numSamples - 1
	return monoHeaderSize + (nibbles+1)/2
}

// EncodeStereoBlockSize returns the number of bytes EncodeStereoBlock
// will write for a block of numSamples samples per channel.
func EncodeStereoBlockSize(numSamples int) int {
	nibbles := numSamples - 1
	groups := (nibbles + stereoGroupSize - 1) / stereoGroupSize
	return stereoHeaderSize + groups*(2*4)
}

// EncodeMonoBlock writes a mono block header plus packed nibbles for
// src into dst, seeding state's Predictor from src[0] and carrying its
// StepIndex into the block header. It returns the number of bytes
// written.
func EncodeMonoBlock(dst []byte, src []int16, state *State) (int, error) {
	if len(src) < 1 {
		return 0, newErr(InvalidArgument, "EncodeMonoBlock", nil)
	}
	need := EncodeMonoBlockSize(len(src))
	if len(dst) < need {
		return 0, newErr(InsufficientBuffer, "EncodeMonoBlock", nil)
	}

	c := codecutil.NewCursor(dst)
	state.Predictor = src[0]
	c.PutUint16LE(uint16(state.Predictor))
	c.PutUint8(uint8(state.StepIndex))
	c.PutUint8(0) // reserved, always 0 on encode.

	i := 1
	for i < len(src) {
		nib1 := state.EncodeSample(src[i])
		i++
		var nib2 byte
		if i < len(src) {
			nib2 = state.EncodeSample(src[i])
			i++
		}
		c.PutUint8(nib1 | (nib2 << 4))
	}
	return c.Off, nil
}

// DecodeMonoBlock decodes a mono block from src into dst, seeding state
// from the block header. Decoding stops when dst is full or src is
// exhausted, whichever comes first, and returns the number of samples
// produced.
func DecodeMonoBlock(dst []int16, src []byte, state *State) (int, error) {
	if len(src) < monoHeaderSize {
		return 0, newErr(InsufficientData, "DecodeMonoBlock", nil)
	}
	if len(dst) < 1 {
		return 0, newErr(InsufficientBuffer, "DecodeMonoBlock", nil)
	}

	c := codecutil.NewCursor(src)
	predictor := int16(c.Uint16LE())
	stepIndex := int8(c.Uint8())
	reserved := c.Uint8()
	if reserved != 0 {
		return 0, newErr(InvalidFormat, "DecodeMonoBlock", nil)
	}
	state.Reset(predictor, stepIndex)

	dst[0] = predictor
	produced := 1

	for c.Remaining() > 0 && produced < len(dst) {
		b := c.Uint8()
		dst[produced] = state.DecodeSample(b & 0xf)
		produced++
		if produced >= len(dst) {
			break
		}
		dst[produced] = state.DecodeSample(b >> 4)
		produced++
	}
	return produced, nil
}

// EncodeStereoBlock writes a stereo block header plus interleaved
// 8-sample-per-channel nibble groups for src (src[0], src[1] must be the
// same length) into dst, seeding states from src[ch][0]. When the
// number of samples minus one isn't a multiple of stereoGroupSize, the
// last group is completed by encoding zero-valued samples past the end
// of src, following the documented stereo tail behaviour; decoding bounds
// its output to the true sample count. It returns the number of bytes
// written.
func EncodeStereoBlock(dst []byte, src [2][]int16, states *[2]State) (int, error) {
	numSamples := len(src[0])
	if numSamples < 1 || len(src[1]) != numSamples {
		return 0, newErr(InvalidArgument, "EncodeStereoBlock", nil)
	}
	need := EncodeStereoBlockSize(numSamples)
	if len(dst) < need {
		return 0, newErr(InsufficientBuffer, "EncodeStereoBlock", nil)
	}

	c := codecutil.NewCursor(dst)
	for ch := 0; ch < 2; ch++ {
		states[ch].Predictor = src[ch][0]
		c.PutUint16LE(uint16(states[ch].Predictor))
		c.PutUint8(uint8(states[ch].StepIndex))
		c.PutUint8(0)
	}

	i := 1
	for i < numSamples {
		var w [2]uint32
		for k := 0; k < stereoGroupSize; k++ {
			idx := i + k
			for ch := 0; ch < 2; ch++ {
				var samp int16
				if idx < numSamples {
					samp = src[ch][idx]
				}
				nib := states[ch].EncodeSample(samp)
				w[ch] |= uint32(nib) << uint(4*k)
			}
		}
		c.PutUint32LE(w[0])
		c.PutUint32LE(w[1])
		i += stereoGroupSize
	}
	return c.Off, nil
}

// DecodeStereoBlock decodes a stereo block from src into dst[0]/dst[1],
// seeding states from the block header. Decoding stops when either
// output channel buffer is full or src is exhausted, and returns the
// number of samples produced per channel.
func DecodeStereoBlock(dst [2][]int16, src []byte, states *[2]State) (int, error) {
	if len(src) < stereoHeaderSize {
		return 0, newErr(InsufficientData, "DecodeStereoBlock", nil)
	}
	limit := len(dst[0])
	if len(dst[1]) < limit {
		limit = len(dst[1])
	}
	if limit < 1 {
		return 0, newErr(InsufficientBuffer, "DecodeStereoBlock", nil)
	}

	c := codecutil.NewCursor(src)
	var predictor [2]int16
	var stepIndex [2]int8
	for ch := 0; ch < 2; ch++ {
		predictor[ch] = int16(c.Uint16LE())
		stepIndex[ch] = int8(c.Uint8())
		reserved := c.Uint8()
		if reserved != 0 {
			return 0, newErr(InvalidFormat, "DecodeStereoBlock", nil)
		}
		states[ch].Reset(predictor[ch], stepIndex[ch])
		dst[ch][0] = predictor[ch]
	}
	produced := 1

	for c.Remaining() >= 2*4 && produced < limit {
		w0 := c.Uint32LE()
		w1 := c.Uint32LE()
		for k := 0; k < stereoGroupSize && produced < limit; k++ {
			nib0 := byte(w0>>uint(4*k)) & 0xf
			nib1 := byte(w1>>uint(4*k)) & 0xf
			dst[0][produced] = states[0].DecodeSample(nib0)
			dst[1][produced] = states[1].DecodeSample(nib1)
			produced++
		}
	}
	return produced, nil
}
