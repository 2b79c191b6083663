// Package endian provides byte order utilities for the npy writer.
//
// Element data is always written in the producing machine's native byte order,
// and the header records which order that was with a single character tag:
// '<' for little-endian and '>' for big-endian. The tag is determined once, at
// package initialization, and never changes for the lifetime of the process.
//
// # Basic Usage
//
//	tag := endian.NativeTag()         // '<' on x86/x64/ARM
//	descr := string(tag) + "f8"       // "<f8"
//
// The header length field itself is always little-endian regardless of the
// host, so the header codec uses GetLittleEndianEngine() for it:
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint16(header[8:10], uint16(dictLen))
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

const (
	LittleTag byte = '<' // LittleTag marks little-endian element data.
	BigTag    byte = '>' // BigTag marks big-endian element data.
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeTag = tagOf(CheckEndianness())

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// NativeTag returns the endianness tag of the host: '<' or '>'.
func NativeTag() byte {
	return nativeTag
}

// NativeEngine returns the engine matching the host byte order.
func NativeEngine() EndianEngine {
	if nativeTag == BigTag {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

func tagOf(order binary.ByteOrder) byte {
	if order == binary.BigEndian {
		return BigTag
	}

	return LittleTag
}
