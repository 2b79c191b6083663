package dtype

import (
	"fmt"
	"math"
	"reflect"

	"github.com/arloliu/npystream/endian"
	"github.com/arloliu/npystream/errs"
)

// PutValue writes the native in-memory representation of v into dst.
//
// dst must be exactly as long as the width of v's descriptor. The bytes match
// what a direct memory copy of v would produce on this host.
func PutValue(dst []byte, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return fmt.Errorf("%w: <nil>", errs.ErrUnsupportedType)
	}

	if _, ok := classOf(rv.Kind()); !ok {
		return fmt.Errorf("%w: %v", errs.ErrUnsupportedType, rv.Type())
	}

	if size := int(rv.Type().Size()); len(dst) != size {
		return fmt.Errorf("destination is %d bytes, %v needs %d", len(dst), rv.Type(), size)
	}

	engine := endian.NativeEngine()

	switch rv.Kind() { //nolint: exhaustive
	case reflect.Bool:
		dst[0] = 0
		if rv.Bool() {
			dst[0] = 1
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		putUint(engine, dst, uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		putUint(engine, dst, rv.Uint())
	case reflect.Float32:
		engine.PutUint32(dst, math.Float32bits(float32(rv.Float())))
	case reflect.Float64:
		engine.PutUint64(dst, math.Float64bits(rv.Float()))
	case reflect.Complex64:
		c := rv.Complex()
		engine.PutUint32(dst[0:4], math.Float32bits(float32(real(c))))
		engine.PutUint32(dst[4:8], math.Float32bits(float32(imag(c))))
	case reflect.Complex128:
		c := rv.Complex()
		engine.PutUint64(dst[0:8], math.Float64bits(real(c)))
		engine.PutUint64(dst[8:16], math.Float64bits(imag(c)))
	default:
		return fmt.Errorf("%w: %v", errs.ErrUnsupportedType, rv.Type())
	}

	return nil
}

func putUint(engine endian.EndianEngine, dst []byte, u uint64) {
	switch len(dst) {
	case 1:
		dst[0] = byte(u)
	case 2:
		engine.PutUint16(dst, uint16(u))
	case 4:
		engine.PutUint32(dst, uint32(u))
	case 8:
		engine.PutUint64(dst, u)
	}
}
