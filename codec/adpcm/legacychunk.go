/*
NAME
  legacychunk.go

DESCRIPTION
  legacychunk.go keeps the teacher's original self-delimiting ADPCM
  stream format (a length-prefixed chunk carrying its own predictor and
  step index, with no RIFF/WAVE envelope) alongside the RIFF/WAVE
  container codec. It shares core.State and the package's tables
  instead of redeclaring them, but keeps its own encodeSample/
  decodeSample step (sum-of-independently-truncated-shifts, matching
  the teacher's original arithmetic exactly) rather than State's
  canonical EncodeSample/DecodeSample, so this format's fixture-tested
  output stays bit-identical to the teacher's original encoder.

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
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	chunkByteDepth  = 2 // 16-bit samples.
	chunkInitSamps  = 2 // samples used to initialise the chunk encoder.
	chunkInitSize   = chunkInitSamps * chunkByteDepth
	chunkHeadSize   = 8 // chunk length(4) + predictor(2) + step index(1) + pad flag(1).
	chunkSampsPerB  = 2 // samples encoded per output byte.
	chunkBytesPerB  = chunkSampsPerB * chunkByteDepth
	chunkLenSize    = 4
	chunkCompFactor = 4
)

// ChunkEncoder encodes a stream of 16-bit PCM samples into the
// self-delimiting chunked ADPCM format: each chunk starts with its own
// byte length, predictor seed and step index, so chunks can be
// concatenated and decoded independently of any container.
type ChunkEncoder struct {
	dst   io.Writer
	state State
}

// NewChunkEncoder returns a ChunkEncoder writing to dst.
func NewChunkEncoder(dst io.Writer) *ChunkEncoder {
	return &ChunkEncoder{dst: dst}
}

// calcHead writes the chunk header (the chunk's first sample as the
// predictor, the current step index and the pad flag) to dst. The
// encoder's state itself is seeded beforehand by init.
func (e *ChunkEncoder) calcHead(sample []byte, pad bool) (int, error) {
	if len(sample) != chunkByteDepth {
		return 0, fmt.Errorf("length of given byte array is: %v, expected: %v", len(sample), chunkByteDepth)
	}
	n, err := e.dst.Write(sample)
	if err != nil {
		return n, err
	}
	_n, err := e.dst.Write([]byte{byte(e.state.StepIndex)})
	if err != nil {
		return n, err
	}
	n += _n
	if pad {
		_n, err = e.dst.Write([]byte{0x01})
	} else {
		_n, err = e.dst.Write([]byte{0x00})
	}
	n += _n
	if err != nil {
		return n, err
	}
	return n, nil
}

// init seeds the estimation to the first sample and the step index to
// the table entry closest to |(|first| - |second|/2)|, where first and
// second are the chunk's first two samples, matching the original
// heuristic.
func (e *ChunkEncoder) init(samples []byte) {
	int1 := int16(binary.LittleEndian.Uint16(samples[:chunkByteDepth]))
	int2 := int16(binary.LittleEndian.Uint16(samples[chunkByteDepth:chunkInitSize]))
	e.state.Predictor = int1

	halfDiff := math.Abs(math.Abs(float64(int1)) - math.Abs(float64(int2))/2)
	closest := math.Abs(float64(stepTable[0]) - halfDiff)
	var cInd int8
	for i, step := range stepTable {
		if math.Abs(float64(step)-halfDiff) < closest {
			closest = math.Abs(float64(step) - halfDiff)
			cInd = int8(i)
		}
	}
	e.state.StepIndex = cInd
}

// Write encodes b, a slice of little-endian 16-bit PCM samples, into one
// self-delimiting ADPCM chunk written to the encoder's dst.
func (e *ChunkEncoder) Write(b []byte) (int, error) {
	pcmLen := len(b)
	if pcmLen < chunkInitSize {
		return 0, fmt.Errorf("length of given byte array must be >= %v", chunkInitSize)
	}

	pad := (pcmLen-chunkByteDepth)%chunkBytesPerB != 0

	chunkLen := ChunkEncBytes(pcmLen)
	chunkLenBytes := make([]byte, chunkLenSize)
	binary.LittleEndian.PutUint32(chunkLenBytes, uint32(chunkLen))
	n, err := e.dst.Write(chunkLenBytes)
	if err != nil {
		return n, err
	}

	e.init(b[:chunkInitSize])
	_n, err := e.calcHead(b[:chunkByteDepth], pad)
	n += _n
	if err != nil {
		return n, err
	}

	for i := chunkByteDepth; i+chunkBytesPerB-1 < pcmLen; i += chunkBytesPerB {
		nib1 := e.state.chunkEncodeSample(int16(binary.LittleEndian.Uint16(b[i : i+chunkByteDepth])))
		nib2 := e.state.chunkEncodeSample(int16(binary.LittleEndian.Uint16(b[i+chunkByteDepth : i+chunkBytesPerB])))
		_n, err := e.dst.Write([]byte{nib1 | (nib2 << 4)})
		n += _n
		if err != nil {
			return n, err
		}
	}
	if pad {
		nib := e.state.chunkEncodeSample(int16(binary.LittleEndian.Uint16(b[pcmLen-chunkByteDepth : pcmLen])))
		_n, err := e.dst.Write([]byte{nib})
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ChunkDecoder decodes the chunked ADPCM stream format written by
// ChunkEncoder back into 16-bit PCM.
type ChunkDecoder struct {
	dst   io.Writer
	state State
}

// NewChunkDecoder returns a ChunkDecoder writing decoded PCM to dst.
func NewChunkDecoder(dst io.Writer) *ChunkDecoder {
	return &ChunkDecoder{dst: dst}
}

// Write decodes every complete chunk found in b and writes the resulting
// 16-bit PCM samples to the decoder's dst.
func (d *ChunkDecoder) Write(b []byte) (int, error) {
	var n int
	var chunkLen int
	for off := 0; off+chunkHeadSize <= len(b); off += chunkLen {
		chunkLen = int(binary.LittleEndian.Uint32(b[off : off+chunkLenSize]))
		if off+chunkLen > len(b) {
			break
		}

		predictor := int16(binary.LittleEndian.Uint16(b[off+chunkLenSize : off+chunkLenSize+chunkByteDepth]))
		stepIndex := int8(b[off+chunkLenSize+chunkByteDepth])
		d.state.Reset(predictor, stepIndex)
		_n, err := d.dst.Write(b[off+chunkLenSize : off+chunkLenSize+chunkByteDepth])
		n += _n
		if err != nil {
			return n, err
		}

		padFlag := b[off+chunkLenSize+3]
		for i := off + chunkHeadSize; i < off+chunkLen-int(padFlag); i++ {
			twoNibs := b[i]
			nib1 := twoNibs & 0xf
			nib2 := twoNibs >> 4

			firstBytes := make([]byte, chunkByteDepth)
			binary.LittleEndian.PutUint16(firstBytes, uint16(d.state.chunkDecodeSample(nib1)))
			_n, err := d.dst.Write(firstBytes)
			n += _n
			if err != nil {
				return n, err
			}

			secondBytes := make([]byte, chunkByteDepth)
			binary.LittleEndian.PutUint16(secondBytes, uint16(d.state.chunkDecodeSample(nib2)))
			_n, err = d.dst.Write(secondBytes)
			n += _n
			if err != nil {
				return n, err
			}
		}
		if padFlag == 0x01 {
			padNib := b[off+chunkLen-1]
			samp := make([]byte, chunkByteDepth)
			binary.LittleEndian.PutUint16(samp, uint16(d.state.chunkDecodeSample(padNib)))
			_n, err := d.dst.Write(samp)
			n += _n
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// chunkEncodeSample encodes one 16-bit sample the way the teacher's
// original Encoder.encodeSample did: the magnitude bits are chosen by
// successively comparing the remaining difference against the step
// size and its halvings, and diff is accumulated as the sum of the
// step fractions selected along the way, with every intermediate value
// passed through capAdd16 exactly as the original did.
func (s *State) chunkEncodeSample(sample int16) byte {
	delta := capAdd16(int32(sample), int32(-s.Predictor))

	var nib byte
	if delta < 0 {
		nib = 8
		delta = -delta
	}

	step := s.step()
	diff := step >> 3
	var mask byte = 4
	for i := 0; i < 3; i++ {
		if delta > step {
			nib |= mask
			delta = capAdd16(int32(delta), int32(-step))
			diff = capAdd16(int32(diff), int32(step))
		}
		mask >>= 1
		step >>= 1
	}
	if nib&8 != 0 {
		diff = -diff
	}

	s.Predictor = capAdd16(int32(s.Predictor), int32(diff))
	s.StepIndex = clampIndex(int32(s.StepIndex) + int32(indexTable[nib&7]))

	return nib
}

// chunkDecodeSample decodes one nibble the way the teacher's original
// Decoder.decodeSample did: diff is accumulated as the sum of
// independently truncated step fractions (step>>3, step>>2, step>>1,
// step), with every intermediate value passed through capAdd16 exactly
// as the original did.
func (s *State) chunkDecodeSample(nibble byte) int16 {
	step := s.step()
	var diff int16
	if nibble&4 != 0 {
		diff = capAdd16(int32(diff), int32(step))
	}
	if nibble&2 != 0 {
		diff = capAdd16(int32(diff), int32(step>>1))
	}
	if nibble&1 != 0 {
		diff = capAdd16(int32(diff), int32(step>>2))
	}
	diff = capAdd16(int32(diff), int32(step>>3))

	if nibble&8 != 0 {
		diff = -diff
	}

	s.Predictor = capAdd16(int32(s.Predictor), int32(diff))
	s.StepIndex = clampIndex(int32(s.StepIndex) + int32(indexTable[nibble]))

	return s.Predictor
}

// ChunkEncBytes returns the number of chunked-ADPCM bytes produced when
// encoding n bytes of 16-bit PCM.
func ChunkEncBytes(n int) int {
	if n%chunkBytesPerB == 0 {
		return (n-chunkByteDepth)/chunkCompFactor + chunkHeadSize + 1
	}
	return (n-chunkByteDepth)/chunkCompFactor + chunkHeadSize
}
