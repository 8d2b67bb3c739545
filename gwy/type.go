package gwy

// Type identifies the wire type of an item: one of 13 single-byte ASCII
// tags. Atomic types carry an inline value; array types are always
// preceded on the wire by a nonzero 32-bit length.
type Type byte

const (
	TypeBool        Type = 'b'
	TypeChar        Type = 'c'
	TypeInt32       Type = 'i'
	TypeInt64       Type = 'q'
	TypeDouble      Type = 'd'
	TypeString      Type = 's'
	TypeObject      Type = 'o'
	TypeCharArray   Type = 'C'
	TypeInt32Array  Type = 'I'
	TypeInt64Array  Type = 'Q'
	TypeDoubleArray Type = 'D'
	TypeStringArray Type = 'S'
	TypeObjectArray Type = 'O'
)

// IsArray reports whether t is one of the length-prefixed array types.
func (t Type) IsArray() bool {
	switch t {
	case TypeCharArray, TypeInt32Array, TypeInt64Array, TypeDoubleArray, TypeStringArray, TypeObjectArray:
		return true
	}
	return false
}

// Valid reports whether t is one of the 13 recognized type tags.
func (t Type) Valid() bool {
	switch t {
	case TypeBool, TypeChar, TypeInt32, TypeInt64, TypeDouble, TypeString, TypeObject,
		TypeCharArray, TypeInt32Array, TypeInt64Array, TypeDoubleArray, TypeStringArray, TypeObjectArray:
		return true
	}
	return false
}

// String names the type the way the Gwyddion C API names it, for use in
// diagnostics.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeChar:
		return "char"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeCharArray:
		return "char-array"
	case TypeInt32Array:
		return "int32-array"
	case TypeInt64Array:
		return "int64-array"
	case TypeDoubleArray:
		return "double-array"
	case TypeStringArray:
		return "string-array"
	case TypeObjectArray:
		return "object-array"
	default:
		return "unknown(" + string(byte(t)) + ")"
	}
}
