/*
NAME
  adpcm.go

DESCRIPTION
  adpcm.go implements the whole-file IMA-ADPCM drivers (component G of
  EncodeWhole/DecodeWhole loop over the block framer the
  way the teacher's Encoder.Write/Decoder.Write loop over chunks, but
  against an in-memory buffer and a RIFF/WAVE header (C) rather than an
  io.Writer sink and a self-delimiting chunk.

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
	"github.com/ausocean/waveadpcm/codec/wav"
)

// DefaultBlockSize is used by EncodeWhole when EncodeParams.BlockSize is
// left zero.
const DefaultBlockSize = 1024

// EncodeParams carries the encoder tunables for EncodeWhole as a
// structure rather than as positional arguments.
type EncodeParams struct {
	Channels   int
	SampleRate int
	BlockSize  int // bytes; 0 selects DefaultBlockSize.
}

// EncodeWhole derives an ADPCM header from params and the input sample
// counts, emits it, then loops over the block framer to encode samples
// into consecutive blocks. samples holds one slice per
// channel; all channels must be the same length. It returns the
// complete ADPCM RIFF/WAVE file.
func EncodeWhole(samples [][]int16, params EncodeParams) ([]byte, error) {
	const op = "adpcm.EncodeWhole"
	if params.Channels != 1 && params.Channels != 2 {
		return nil, newErr(InvalidArgument, op, nil)
	}
	if len(samples) != params.Channels {
		return nil, newErr(InvalidArgument, op, nil)
	}
	numSamples := len(samples[0])
	for _, ch := range samples {
		if len(ch) != numSamples {
			return nil, newErr(InvalidArgument, op, nil)
		}
	}
	if numSamples < 1 {
		return nil, newErr(InvalidArgument, op, nil)
	}

	blockSize := params.BlockSize
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize <= 4*params.Channels {
		return nil, newErr(InvalidArgument, op, nil)
	}
	samplesPerBlock := wav.SamplesPerBlockFor(blockSize, params.Channels)
	if samplesPerBlock < 1 {
		return nil, newErr(InvalidArgument, op, nil)
	}

	header := wav.ADPCMHeader{
		NumChannels:     params.Channels,
		SampleRate:      params.SampleRate,
		BlockSize:       blockSize,
		BitsPerSample:   4,
		SamplesPerBlock: samplesPerBlock,
		NumSamples:      numSamples,
	}
	header.BytesPerSec = wav.BytesPerSecFor(blockSize, params.SampleRate, samplesPerBlock)
	dataSize := wav.ADPCMDataSize(blockSize, samplesPerBlock, numSamples)

	// The declared data size can fall a few bytes short of what the block
	// framer writes for the final block, so the buffer holds the larger.
	need := 0
	for start := 0; start < numSamples; start += samplesPerBlock {
		n := min(samplesPerBlock, numSamples-start)
		if params.Channels == 1 {
			need += EncodeMonoBlockSize(n)
		} else {
			need += EncodeStereoBlockSize(n)
		}
	}
	dst := make([]byte, 60+max(dataSize, need))
	n, err := wav.EmitADPCMHeader(dst, header)
	if err != nil {
		return nil, newErr(CodeOf(err), op, err)
	}
	offset := n

	if params.Channels == 1 {
		var state State
		for start := 0; start < numSamples; {
			end := start + samplesPerBlock
			if end > numSamples {
				end = numSamples
			}
			written, err := EncodeMonoBlock(dst[offset:], samples[0][start:end], &state)
			if err != nil {
				return nil, newErr(CodeOf(err), op, err)
			}
			offset += written
			start = end
		}
	} else {
		var states [2]State
		for start := 0; start < numSamples; {
			end := start + samplesPerBlock
			if end > numSamples {
				end = numSamples
			}
			src := [2][]int16{samples[0][start:end], samples[1][start:end]}
			written, err := EncodeStereoBlock(dst[offset:], src, &states)
			if err != nil {
				return nil, newErr(CodeOf(err), op, err)
			}
			offset += written
			start = end
		}
	}

	// dst is returned at its full, pre-sized length rather than truncated
	// to offset: the 60-byte header plus the larger of the declared data
	// chunk size (written by EmitADPCMHeader, above) and the bytes the
	// block framer wrote. When the declared size is larger (for example
	// when numSamples divides evenly into blocks), the unused tail is
	// zero-padding within the declared data chunk; when it is smaller,
	// the last few bytes of the final block lie past the declared chunk.
	return dst, nil
}

// DecodeWhole parses an ADPCM RIFF/WAVE file and decodes every block in
// sequence. It returns the parsed header and one sample
// slice per channel, each of length header.NumSamples.
func DecodeWhole(src []byte) (wav.ADPCMHeader, [][]int16, error) {
	const op = "adpcm.DecodeWhole"
	header, err := wav.ParseADPCMHeader(src)
	if err != nil {
		return header, nil, newErr(CodeOf(err), op, err)
	}

	samples := make([][]int16, header.NumChannels)
	for ch := range samples {
		samples[ch] = make([]int16, 0, header.NumSamples)
	}

	offset := header.DataOffset
	remaining := header.NumSamples

	if header.NumChannels == 1 {
		var state State
		for remaining > 0 {
			want := header.SamplesPerBlock
			if want > remaining {
				want = remaining
			}
			blockEnd := offset + header.BlockSize
			if blockEnd > len(src) {
				blockEnd = len(src)
			}
			dst := make([]int16, want)
			n, err := DecodeMonoBlock(dst, src[offset:blockEnd], &state)
			if err != nil {
				return header, nil, newErr(CodeOf(err), op, err)
			}
			samples[0] = append(samples[0], dst[:n]...)
			offset += EncodeMonoBlockSize(n)
			remaining -= n
			if n == 0 {
				break
			}
		}
	} else {
		var states [2]State
		for remaining > 0 {
			want := header.SamplesPerBlock
			if want > remaining {
				want = remaining
			}
			blockEnd := offset + header.BlockSize
			if blockEnd > len(src) {
				blockEnd = len(src)
			}
			dst := [2][]int16{make([]int16, want), make([]int16, want)}
			n, err := DecodeStereoBlock(dst, src[offset:blockEnd], &states)
			if err != nil {
				return header, nil, newErr(CodeOf(err), op, err)
			}
			samples[0] = append(samples[0], dst[0][:n]...)
			samples[1] = append(samples[1], dst[1][:n]...)
			offset += EncodeStereoBlockSize(n)
			remaining -= n
			if n == 0 {
				break
			}
		}
	}

	return header, samples, nil
}
