/*
NAME
  tables.go

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

// indexTable holds the step-index adjustment applied for each possible
// 4-bit nibble.
var indexTable = [16]int8{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

// stepTable is the standard IMA ADPCM quantizer step size table.
var stepTable = [89]int16{
	7, 8, 9, 10, 11, 12, 13, 14,
	16, 17, 19, 21, 23, 25, 28, 31,
	34, 37, 41, 45, 50, 55, 60, 66,
	73, 80, 88, 97, 107, 118, 130, 143,
	157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658,
	724, 796, 876, 963, 1060, 1166, 1282, 1411,
	1552, 1707, 1878, 2066, 2272, 2499, 2749, 3024,
	3327, 3660, 4026, 4428, 4871, 5358, 5894, 6484,
	7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794,
	32767,
}

// maxStepIndex is the highest valid index into stepTable.
const maxStepIndex = int8(len(stepTable) - 1)

// capAdd16 adds two int16s together and caps at max/min int16 instead of
// overflowing.
func capAdd16(a, b int32) int16 {
	c := a + b
	switch {
	case c < -32768:
		return -32768
	case c > 32767:
		return 32767
	default:
		return int16(c)
	}
}

// clampIndex constrains idx to [0, 88].
func clampIndex(idx int32) int8 {
	switch {
	case idx < 0:
		return 0
	case idx > int32(maxStepIndex):
		return maxStepIndex
	default:
		return int8(idx)
	}
}
