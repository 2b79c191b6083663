package format

type (
	TypeClass   byte
	MemoryOrder uint8
)

const (
	ClassBool     TypeClass = 'b' // ClassBool represents a boolean value.
	ClassSigned   TypeClass = 'i' // ClassSigned represents a signed integer.
	ClassUnsigned TypeClass = 'u' // ClassUnsigned represents an unsigned integer.
	ClassFloat    TypeClass = 'f' // ClassFloat represents an IEEE 754 floating point value.
	ClassComplex  TypeClass = 'c' // ClassComplex represents a complex number of two floats.

	OrderC       MemoryOrder = 0x1 // OrderC represents row-major (C) memory order.
	OrderFortran MemoryOrder = 0x2 // OrderFortran represents column-major (Fortran) memory order.

	RowMajor    = OrderC
	ColumnMajor = OrderFortran
)

// Valid reports whether c is one of the supported type classes.
func (c TypeClass) Valid() bool {
	switch c {
	case ClassBool, ClassSigned, ClassUnsigned, ClassFloat, ClassComplex:
		return true
	default:
		return false
	}
}

func (c TypeClass) String() string {
	switch c {
	case ClassBool:
		return "Bool"
	case ClassSigned:
		return "Signed"
	case ClassUnsigned:
		return "Unsigned"
	case ClassFloat:
		return "Float"
	case ClassComplex:
		return "Complex"
	default:
		return "Unknown"
	}
}

// Valid reports whether o is one of the supported memory orders.
func (o MemoryOrder) Valid() bool {
	return o == OrderC || o == OrderFortran
}

// FortranOrder returns the literal used for the 'fortran_order' header key.
func (o MemoryOrder) FortranOrder() string {
	if o == OrderFortran {
		return "True"
	}

	return "False"
}

func (o MemoryOrder) String() string {
	switch o {
	case OrderC:
		return "C"
	case OrderFortran:
		return "Fortran"
	default:
		return "Unknown"
	}
}
