package section

import (
	"math"
	"strings"
	"testing"

	"github.com/arloliu/npystream/dtype"
	"github.com/arloliu/npystream/endian"
	"github.com/arloliu/npystream/errs"
	"github.com/arloliu/npystream/format"
	"github.com/arloliu/npystream/layout"
	"github.com/stretchr/testify/require"
)

func mustSchema(t *testing.T, descs []dtype.Descriptor, labels []string) *layout.Schema {
	t.Helper()

	s, err := layout.NewSchema(descs, labels)
	require.NoError(t, err)

	return s
}

// requireWellFormed checks the invariants shared by every rendered header.
func requireWellFormed(t *testing.T, h Header) {
	t.Helper()

	require.GreaterOrEqual(t, h.Len(), PreambleSize+1)
	require.Equal(t, byte(MagicByte), h[0])
	require.Equal(t, MagicString, string(h[1:6]))
	require.Equal(t, byte(MajorVersion), h[6])
	require.Equal(t, byte(MinorVersion), h[7])
	require.Equal(t, h.Len()-PreambleSize, h.DictLen())
	require.Equal(t, 0, h.Len()%HeaderAlignment)
	require.Equal(t, byte('\n'), h[h.Len()-1])
}

func dictText(h Header) string {
	return strings.TrimRight(string(h.Dict()), " \n")
}

func TestRender_SingleDtype(t *testing.T) {
	s := mustSchema(t, []dtype.Descriptor{dtype.Of[float32]()}, nil)

	h, err := render([]uint64{1000}, s, format.OrderC, '<')
	require.NoError(t, err)
	requireWellFormed(t, h)
	require.Equal(t, "{'descr': '<f4', 'fortran_order': False, 'shape': (1000,), }", dictText(h))
}

func TestRender_Structured(t *testing.T) {
	i4 := dtype.Of[int32]()
	s := mustSchema(t, []dtype.Descriptor{i4, i4, i4}, []string{"x", "y", "z"})

	h, err := render([]uint64{1023}, s, format.OrderC, '<')
	require.NoError(t, err)
	requireWellFormed(t, h)
	require.Equal(t,
		"{'descr': [('x', '<i4'), ('y', '<i4'), ('z', '<i4')], 'fortran_order': False, 'shape': (1023,), }",
		dictText(h))
}

func TestRender_SingleColumnStructured(t *testing.T) {
	s := mustSchema(t, []dtype.Descriptor{dtype.Of[uint16]()}, []string{"v"})

	h, err := render([]uint64{3}, s, format.OrderC, '>')
	require.NoError(t, err)
	requireWellFormed(t, h)
	require.Equal(t, "{'descr': [('v', '>u2'),], 'fortran_order': False, 'shape': (3,), }", dictText(h))
}

func TestRender_FortranOrderAndRank2(t *testing.T) {
	s := mustSchema(t, []dtype.Descriptor{dtype.Of[complex128]()}, nil)

	h, err := render([]uint64{2, 3}, s, format.OrderFortran, '<')
	require.NoError(t, err)
	requireWellFormed(t, h)
	require.Equal(t, "{'descr': '<c16', 'fortran_order': True, 'shape': (2, 3), }", dictText(h))
}

func TestRender_NativeTag(t *testing.T) {
	s := mustSchema(t, []dtype.Descriptor{dtype.Of[bool]()}, nil)

	h, err := Render([]uint64{0}, s, format.OrderC)
	require.NoError(t, err)
	require.Equal(t, "{'descr': '"+string(endian.NativeTag())+"b1', 'fortran_order': False, 'shape': (0,), }", dictText(h))
}

func TestRender_AlignmentAlwaysAddsNewline(t *testing.T) {
	s := mustSchema(t, []dtype.Descriptor{dtype.Of[int8]()}, nil)

	// sweep counts so the unpadded length hits every residue mod 16
	for n := uint64(1); n < 1e17; n *= 10 {
		h, err := Render([]uint64{n}, s, format.OrderC)
		require.NoError(t, err)
		requireWellFormed(t, h)
	}
}

func TestRender_Errors(t *testing.T) {
	s := mustSchema(t, []dtype.Descriptor{dtype.Of[int8]()}, nil)

	_, err := Render(nil, s, format.OrderC)
	require.ErrorIs(t, err, errs.ErrInvalidShape)

	_, err = Render([]uint64{1}, nil, format.OrderC)
	require.ErrorIs(t, err, errs.ErrEmptySchema)

	_, err = Render([]uint64{1}, s, format.MemoryOrder(0))
	require.ErrorIs(t, err, errs.ErrInvalidMemoryOrder)
}

func TestRender_TooLarge(t *testing.T) {
	f8 := dtype.Of[float64]()
	s := mustSchema(t, []dtype.Descriptor{f8, f8}, []string{strings.Repeat("a", 40000), strings.Repeat("b", 40000)})

	_, err := Render([]uint64{1}, s, format.OrderC)
	require.ErrorIs(t, err, errs.ErrHeaderTooLarge)
}

func TestRenderPlaceholder_IsUpperBound(t *testing.T) {
	f8 := dtype.Of[float64]()
	schemas := []*layout.Schema{
		mustSchema(t, []dtype.Descriptor{f8}, nil),
		mustSchema(t, []dtype.Descriptor{f8, f8, dtype.Of[bool]()}, []string{"alpha", "beta", "gamma"}),
	}
	counts := []uint64{0, 1, 9, 10, 1023, 1 << 32, math.MaxUint64 - 1, math.MaxUint64}

	for _, s := range schemas {
		reserved, err := RenderPlaceholder(s, format.OrderC)
		require.NoError(t, err)
		requireWellFormed(t, reserved)
		require.Contains(t, dictText(reserved), "(18446744073709551615,)")

		for _, n := range counts {
			h, err := Render([]uint64{n}, s, format.OrderC)
			require.NoError(t, err)
			require.LessOrEqual(t, h.Len(), reserved.Len())

			padded, err := h.PadTo(reserved.Len())
			require.NoError(t, err)
			requireWellFormed(t, padded)
			require.Equal(t, reserved.Len(), padded.Len())
			require.Equal(t, dictText(h), dictText(padded))
		}
	}
}

func TestHeader_PadTo(t *testing.T) {
	s := mustSchema(t, []dtype.Descriptor{dtype.Of[int32]()}, nil)
	h, err := Render([]uint64{5}, s, format.OrderC)
	require.NoError(t, err)

	t.Run("same size is a copy", func(t *testing.T) {
		p, err := h.PadTo(h.Len())
		require.NoError(t, err)
		require.Equal(t, h, p)

		p[PreambleSize] = 'X'
		require.NotEqual(t, h[PreambleSize], p[PreambleSize])
	})

	t.Run("widens before newline", func(t *testing.T) {
		p, err := h.PadTo(h.Len() + 32)
		require.NoError(t, err)
		requireWellFormed(t, p)
		require.Equal(t, string(h[:DictLenOffset]), string(p[:DictLenOffset]))
		require.Equal(t, h.DictLen()+32, p.DictLen())
		require.Equal(t, string(h[PreambleSize:h.Len()-1]), string(p[PreambleSize:h.Len()-1]))
		require.Equal(t, strings.Repeat(" ", 32), string(p[h.Len()-1:p.Len()-1]))
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := h.PadTo(h.Len() - 16)
		require.ErrorIs(t, err, errs.ErrHeaderOverflow)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := h.PadTo(PreambleSize + MaxDictLen + 1)
		require.ErrorIs(t, err, errs.ErrHeaderTooLarge)
	})
}
