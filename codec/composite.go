package codec

import (
	"github.com/samber/mo"

	"tessera/descriptor"
)

// BuildFunc reconstructs an owner from its decoded field values, which are
// given in declared order regardless of the order they arrived in.
type BuildFunc[T any] func(v Values) (T, error)

// CompositeCodec encodes T as an ordered set of named fields.
type CompositeCodec[T any] struct {
	d      *descriptor.Descriptor
	fields []FieldSpec[T]
	build  BuildFunc[T]
}

// NewComposite returns the codec of the aggregate called name made of fields,
// in order. Decoding hands the field values to build. The returned error
// matches ErrInvalidComposite when two fields share a name.
func NewComposite[T any](name string, build BuildFunc[T], fields ...FieldSpec[T]) (*CompositeCodec[T], error) {
	df := make([]descriptor.Field, len(fields))
	for i, f := range fields {
		df[i] = descriptor.Field{Name: f.Name(), Descriptor: f.Descriptor()}
	}
	d, err := descriptor.NewComposite(name, df...)
	if err != nil {
		return nil, err
	}

	owned := make([]FieldSpec[T], len(fields))
	copy(owned, fields)
	return &CompositeCodec[T]{d: d, fields: owned, build: build}, nil
}

// MustComposite is like NewComposite but panics on error. It suits codecs
// held in package-level variables.
func MustComposite[T any](name string, build BuildFunc[T], fields ...FieldSpec[T]) *CompositeCodec[T] {
	c, err := NewComposite(name, build, fields...)
	if err != nil {
		panic("codec: " + err.Error())
	}
	return c
}

func (c *CompositeCodec[T]) Descriptor() *descriptor.Descriptor { return c.d }

// Encode writes every field of value in declared order.
func (c *CompositeCodec[T]) Encode(e Encoder, value T) error {
	return EncodeStructure(e, c.d, func(s StructureEncoder) error {
		for i, f := range c.fields {
			if err := f.encodeFrom(s, c.d, i, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Decode reads a T, picking the sequential or the indexed strategy according
// to what the source supports.
func (c *CompositeCodec[T]) Decode(d Decoder) (T, error) {
	return DecodeStructure(d, c.d, func(s StructureDecoder) (T, error) {
		if len(c.fields) == 0 {
			return c.build(Values{d: c.d})
		}
		if s.DecodeSequentially() {
			return c.decodeSequential(s)
		}
		return c.decodeIndexed(s)
	})
}

func (c *CompositeCodec[T]) decodeSequential(s StructureDecoder) (T, error) {
	slots := make([]any, len(c.fields))
	for i, f := range c.fields {
		v, err := f.decodeAt(s, c.d, i)
		if err != nil {
			var zero T
			return zero, err
		}
		slots[i] = v
	}
	return c.build(Values{d: c.d, slots: slots})
}

func (c *CompositeCodec[T]) decodeIndexed(s StructureDecoder) (T, error) {
	var zero T
	arena := make([]mo.Option[any], len(c.fields))
	for {
		index, err := s.NextElementIndex(c.d)
		if err != nil {
			return zero, err
		}
		if index == Done {
			break
		}
		if index < 0 || index >= len(c.fields) {
			return zero, &UnknownFieldError{Composite: c.d.Name(), Index: index}
		}
		v, err := c.fields[index].decodeAt(s, c.d, index)
		if err != nil {
			return zero, err
		}
		arena[index] = mo.Some(v)
	}

	slots := make([]any, len(c.fields))
	for i, slot := range arena {
		v, ok := slot.Get()
		if !ok {
			return zero, &MissingFieldError{Composite: c.d.Name(), Field: c.fields[i].Name()}
		}
		slots[i] = v
	}
	return c.build(Values{d: c.d, slots: slots})
}
