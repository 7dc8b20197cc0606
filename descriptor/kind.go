package descriptor

import "strconv"

// Kind is the shape tag of a Descriptor.
type Kind uint8

const (
	Invalid Kind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	String
	Bytes
	// Composite is an aggregate with an ordered list of named fields.
	Composite
	// List is a homogeneous sequence of elements sharing one descriptor.
	List
)

var kindNames = [...]string{
	Invalid:   "invalid",
	Bool:      "bool",
	Int8:      "int8",
	Int16:     "int16",
	Int32:     "int32",
	Int64:     "int64",
	Uint8:     "uint8",
	Uint16:    "uint16",
	Uint32:    "uint32",
	Uint64:    "uint64",
	Float32:   "float32",
	Float64:   "float64",
	String:    "string",
	Bytes:     "bytes",
	Composite: "composite",
	List:      "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsPrimitive reports whether values of this kind are written with a single
// primitive call on the sink rather than inside a structure.
func (k Kind) IsPrimitive() bool {
	return k > Invalid && k < Composite
}

// IsSigned reports whether k is one of the signed integer kinds.
func (k Kind) IsSigned() bool {
	return k >= Int8 && k <= Int64
}

// IsUnsigned reports whether k is one of the unsigned integer kinds.
func (k Kind) IsUnsigned() bool {
	return k >= Uint8 && k <= Uint64
}

// Bits returns the width of the numeric kinds, and 0 for everything else.
func (k Kind) Bits() int {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64:
		return 64
	}
	return 0
}
