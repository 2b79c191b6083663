package stream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/arloliu/npystream/endian"
	"github.com/stretchr/testify/require"
)

// npyFile is the test-side view of a written .npy file.
type npyFile struct {
	raw       []byte
	dict      string // dictionary without padding
	headerLen int
	data      []byte
}

func readNpy(t *testing.T, path string) npyFile {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	return parseNpy(t, raw)
}

func parseNpy(t *testing.T, raw []byte) npyFile {
	t.Helper()

	require.GreaterOrEqual(t, len(raw), 10)
	require.Equal(t, "\x93NUMPY\x01\x00", string(raw[:8]))

	headerLen := 10 + int(binary.LittleEndian.Uint16(raw[8:10]))
	require.LessOrEqual(t, headerLen, len(raw))
	require.Equal(t, 0, headerLen%16, "header length must be a multiple of 16")
	require.Equal(t, byte('\n'), raw[headerLen-1])

	return npyFile{
		raw:       raw,
		dict:      strings.TrimRight(string(raw[10:headerLen]), " \n"),
		headerLen: headerLen,
		data:      raw[headerLen:],
	}
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// tag prefixes a type code with the host endianness tag.
func tag(code string) string {
	return string(endian.NativeTag()) + code
}

func nativeUint32s(data []byte) []uint32 {
	engine := endian.NativeEngine()
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = engine.Uint32(data[i*4:])
	}

	return out
}

var errDiskFull = errors.New("disk full")

// flakyFile is an in-memory io.WriteSeeker that can be told to fail.
type flakyFile struct {
	mu        sync.Mutex
	buf       []byte
	pos       int64
	failWrite bool
	failSeek  bool
}

func (f *flakyFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWrite {
		return 0, errDiskFull
	}

	end := f.pos + int64(len(p))
	if end > int64(len(f.buf)) {
		f.buf = append(f.buf, make([]byte, end-int64(len(f.buf)))...)
	}
	copy(f.buf[f.pos:], p)
	f.pos = end

	return len(p), nil
}

func (f *flakyFile) Seek(offset int64, whence int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSeek {
		return 0, errors.New("seek failed")
	}

	switch whence {
	case 0:
		f.pos = offset
	case 1:
		f.pos += offset
	case 2:
		f.pos = int64(len(f.buf)) + offset
	}

	return f.pos, nil
}

// snapshot copies the current contents; safe against a concurrent cleanup.
func (f *flakyFile) snapshot() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	return bytes.Clone(f.buf)
}
