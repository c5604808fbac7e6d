// Package endian provides byte order utilities for the typedkv wire format.
//
// Every multi-byte number typedkv writes into a blob is canonical little-endian,
// regardless of the host. The EndianEngine interface combines the ByteOrder and
// AppendByteOrder interfaces of encoding/binary; WordCodec builds on it to move
// 32-bit ints and floats between the host's natural representation and the
// canonical 4-byte block.
//
// # Basic Usage
//
//	codec := endian.NativeWordCodec()
//	block := codec.EncodeF32(1.5)
//
//	cursor := 0
//	v, err := codec.DecodeF32(block[:], &cursor) // cursor == 4
//
// Tests can simulate a big-endian host with NewWordCodec(endian.GetBigEndianEngine()).
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine and WordCodec values are immutable and stateless;
// the read cursor is always owned by the caller.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// NativeEngine returns the engine matching the host's byte order.
//
// The host is probed by looking at the first byte of a uint16 in memory:
// 0x0100 starts with 0x01 only on a big-endian machine.
func NativeEngine() EndianEngine {
	var probe uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
