// Package endian provides byte order utilities for binary encoding and
// decoding.
//
// It extends the standard encoding/binary package by combining ByteOrder
// and AppendByteOrder into a single EndianEngine interface.
//
// # Basic usage
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint64(word[:])
//
// Both the .fil wire format (spec §6.1) and the EnSight Gold binary format
// (spec §6.2) are fixed little-endian regardless of host byte order, so
// GetLittleEndianEngine is the only engine this module ever constructs;
// GetBigEndianEngine is kept for symmetry and for tests that want to
// exercise the decoder against a deliberately wrong byte order.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian
// from the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
