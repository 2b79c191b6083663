package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckEndianness()

	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result, "CheckEndianness() should return BigEndian")
	case 0x02:
		require.Equal(binary.LittleEndian, result, "CheckEndianness() should return LittleEndian")
	default:
		require.Failf("Unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestNativeTag(t *testing.T) {
	tag := NativeTag()

	require.Contains(t, []byte{LittleTag, BigTag}, tag)

	if CheckEndianness() == binary.LittleEndian {
		require.Equal(t, LittleTag, tag)
	} else {
		require.Equal(t, BigTag, tag)
	}
}

func TestNativeTagConsistency(t *testing.T) {
	first := NativeTag()
	for i := range 100 {
		if NativeTag() != first {
			t.Fatalf("NativeTag() changed at iteration %d", i)
		}
	}
}

func TestNativeEngine(t *testing.T) {
	engine := NativeEngine()

	var v uint32 = 0x01020304
	buf := make([]byte, 4)
	engine.PutUint32(buf, v)

	// the engine must reproduce the in-memory layout of v
	mem := (*[4]byte)(unsafe.Pointer(&v))
	require.Equal(t, mem[:], buf)
}

func TestLittleEndianEngine(t *testing.T) {
	little := GetLittleEndianEngine()

	require.Equal(t, []byte{0x02, 0x01}, little.AppendUint16(nil, 0x0102))
}

func TestTagOf(t *testing.T) {
	require.Equal(t, LittleTag, tagOf(binary.LittleEndian))
	require.Equal(t, BigTag, tagOf(binary.BigEndian))
}
