package codec

import (
	"fmt"

	"tessera/descriptor"
)

// FieldSpec is one field of a composite over owner type T, with the field's
// own type erased. The only implementation is Field.
type FieldSpec[T any] interface {
	Name() string
	Descriptor() *descriptor.Descriptor

	encodeFrom(s StructureEncoder, d *descriptor.Descriptor, index int, owner T) error
	decodeAt(s StructureDecoder, d *descriptor.Descriptor, index int) (any, error)
}

// Field binds a field name to the codec of its values and to the accessor
// projecting the field out of its owner.
type Field[T, F any] struct {
	name  string
	codec Codec[F]
	get   func(T) F
}

// NewField returns the field called name, read from owners with get and
// encoded with c. get must be free of side effects; it runs once per field on
// every encode.
func NewField[T, F any](name string, c Codec[F], get func(T) F) Field[T, F] {
	return Field[T, F]{name: name, codec: c, get: get}
}

func (f Field[T, F]) Name() string                       { return f.name }
func (f Field[T, F]) Codec() Codec[F]                    { return f.codec }
func (f Field[T, F]) Descriptor() *descriptor.Descriptor { return f.codec.Descriptor() }

// From returns this field's decoded value out of the values handed to a
// composite's build function.
func (f Field[T, F]) From(v Values) F {
	i, ok := v.d.FieldIndex(f.name)
	if !ok {
		panic(fmt.Sprintf("codec: %s has no field %q", v.d.Name(), f.name))
	}
	return Value[F](v, i)
}

func (f Field[T, F]) encodeFrom(s StructureEncoder, d *descriptor.Descriptor, index int, owner T) error {
	return EncodeElement(s, d, index, f.codec, f.get(owner))
}

func (f Field[T, F]) decodeAt(s StructureDecoder, d *descriptor.Descriptor, index int) (any, error) {
	return DecodeElement(s, d, index, f.codec)
}

// Values are the decoded field values of one composite, in declared order.
type Values struct {
	d     *descriptor.Descriptor
	slots []any
}

// Len returns the number of fields.
func (v Values) Len() int { return len(v.slots) }

// At returns the value of the i'th field.
func (v Values) At(i int) any { return v.slots[i] }

// Value returns the i'th value of v as an F. It panics if the field's codec
// does not produce F values.
func Value[F any](v Values, i int) F {
	if v.slots[i] == nil {
		var zero F
		return zero
	}
	f, ok := v.slots[i].(F)
	if !ok {
		panic(fmt.Sprintf("codec: %s field %d holds %T, not %T", v.d.Name(), i, v.slots[i], f))
	}
	return f
}
