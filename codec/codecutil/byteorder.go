/*
NAME
  byteorder.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package codecutil

import "encoding/binary"

// GetUint8 reads an unsigned 8-bit integer from b at off.
func GetUint8(b []byte, off int) uint8 { return b[off] }

// PutUint8 writes v into b at off.
func PutUint8(b []byte, off int, v uint8) { b[off] = v }

// GetUint16LE reads a little-endian unsigned 16-bit integer from b at off.
func GetUint16LE(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }

// PutUint16LE writes v into b at off in little-endian order.
func PutUint16LE(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:], v) }

// GetUint16BE reads a big-endian unsigned 16-bit integer from b at off.
func GetUint16BE(b []byte, off int) uint16 { return binary.BigEndian.Uint16(b[off:]) }

// PutUint16BE writes v into b at off in big-endian order.
func PutUint16BE(b []byte, off int, v uint16) { binary.BigEndian.PutUint16(b[off:], v) }

// GetUint32LE reads a little-endian unsigned 32-bit integer from b at off.
func GetUint32LE(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }

// PutUint32LE writes v into b at off in little-endian order.
func PutUint32LE(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }

// GetUint32BE reads a big-endian unsigned 32-bit integer from b at off.
func GetUint32BE(b []byte, off int) uint32 { return binary.BigEndian.Uint32(b[off:]) }

// PutUint32BE writes v into b at off in big-endian order.
func PutUint32BE(b []byte, off int, v uint32) { binary.BigEndian.PutUint32(b[off:], v) }

// Cursor is an advancing byte cursor over a fixed buffer, used by readers
// that consume a sequence of fields without tracking offsets by hand.
type Cursor struct {
	Buf []byte
	Off int
}

// NewCursor returns a Cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor { return &Cursor{Buf: buf} }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.Buf) - c.Off }

// Uint8 reads one byte and advances the cursor.
func (c *Cursor) Uint8() uint8 {
	v := GetUint8(c.Buf, c.Off)
	c.Off++
	return v
}

// Uint16LE reads a little-endian uint16 and advances the cursor.
func (c *Cursor) Uint16LE() uint16 {
	v := GetUint16LE(c.Buf, c.Off)
	c.Off += 2
	return v
}

// Uint32LE reads a little-endian uint32 and advances the cursor.
func (c *Cursor) Uint32LE() uint32 {
	v := GetUint32LE(c.Buf, c.Off)
	c.Off += 4
	return v
}

// Bytes reads n raw bytes and advances the cursor.
func (c *Cursor) Bytes(n int) []byte {
	v := c.Buf[c.Off : c.Off+n]
	c.Off += n
	return v
}

// Skip advances the cursor by n bytes without reading.
func (c *Cursor) Skip(n int) { c.Off += n }

// PutUint8 writes one byte and advances the cursor.
func (c *Cursor) PutUint8(v uint8) {
	PutUint8(c.Buf, c.Off, v)
	c.Off++
}

// PutUint16LE writes a little-endian uint16 and advances the cursor.
func (c *Cursor) PutUint16LE(v uint16) {
	PutUint16LE(c.Buf, c.Off, v)
	c.Off += 2
}

// PutUint32LE writes a little-endian uint32 and advances the cursor.
func (c *Cursor) PutUint32LE(v uint32) {
	PutUint32LE(c.Buf, c.Off, v)
	c.Off += 4
}

// PutBytes copies p into the buffer and advances the cursor.
func (c *Cursor) PutBytes(p []byte) {
	copy(c.Buf[c.Off:], p)
	c.Off += len(p)
}
