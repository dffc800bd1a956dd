/*
NAME
  core.go

DESCRIPTION
  core.go implements the single-sample IMA-ADPCM encode/decode step and
  the per-channel codec State it operates on.
  This generalizes the teacher adpcm.go's inline est/idx fields into an
  explicit, re-seedable State so the block framer (block.go) can reset
  it at the start of every block.

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

// State is the per-channel IMA-ADPCM codec state: the last reconstructed
// sample (Predictor) and the index (StepIndex) into stepTable used to
// derive the current quantizer step size.
type State struct {
	Predictor int16
	StepIndex int8
}

// Reset seeds the state from a decoded block header.
func (s *State) Reset(predictor int16, stepIndex int8) {
	s.Predictor = predictor
	s.StepIndex = stepIndex
}

// step returns the quantizer step size for the current StepIndex.
func (s *State) step() int16 {
	return stepTable[s.StepIndex]
}

// DecodeSample decodes one nibble into one 16-bit sample, updating s in
// place and returning the reconstructed sample. The magnitude is
// (step*(2*(nibble&7)+1))>>3.
func (s *State) DecodeSample(nibble byte) int16 {
	step := int32(s.step())
	diffMag := (step * (2*int32(nibble&7) + 1)) >> 3

	pred := int32(s.Predictor)
	if nibble&8 != 0 {
		pred -= diffMag
	} else {
		pred += diffMag
	}
	s.Predictor = clampPredictor(pred)
	s.StepIndex = clampIndex(int32(s.StepIndex) + int32(indexTable[nibble]))

	return s.Predictor
}

// EncodeSample encodes one 16-bit sample into a nibble, updating s in
// place to mirror DecodeSample's post-state exactly so encoder and
// decoder remain in lock-step. The magnitude is
// min((abs_diff<<2)/step, 7), and the reconstruction mirrors
// DecodeSample's (step*(2*magnitude+1))>>3.
func (s *State) EncodeSample(sample int16) byte {
	delta := int32(sample) - int32(s.Predictor)

	var nib byte
	if delta < 0 {
		nib = 8
		delta = -delta
	}

	step := int32(s.step())
	magnitude := (delta << 2) / step
	if magnitude > 7 {
		magnitude = 7
	}
	nib |= byte(magnitude)
	diffMag := (step * (2*magnitude + 1)) >> 3

	pred := int32(s.Predictor)
	if nib&8 != 0 {
		pred -= diffMag
	} else {
		pred += diffMag
	}
	s.Predictor = clampPredictor(pred)
	s.StepIndex = clampIndex(int32(s.StepIndex) + int32(indexTable[nib]))

	return nib
}

// clampPredictor constrains a reconstructed predictor value to the
// 16-bit signed range.
func clampPredictor(p int32) int16 {
	switch {
	case p < -32768:
		return -32768
	case p > 32767:
		return 32767
	default:
		return int16(p)
	}
}
