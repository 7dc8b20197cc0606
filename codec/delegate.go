package codec

import (
	"strings"

	"github.com/samber/mo"

	"tessera/descriptor"
)

// DelegateCodec presents a Codec[R] as a Codec[T] through a pair of inverse
// functions.
type DelegateCodec[T, R any] struct {
	inner   Codec[R]
	save    func(T) R
	restore func(R) T
	d       *descriptor.Descriptor
}

// Delegate returns a codec that encodes a T as save(T) with inner and decodes
// it as restore of what inner decodes. save and restore are trusted to be
// inverses of each other.
//
// With no name, a blank name or inner's own name the delegate shares inner's
// descriptor. Otherwise a primitive inner descriptor is renamed keeping its
// kind, and any other descriptor is wrapped under the new name.
func Delegate[T, R any](inner Codec[R], save func(T) R, restore func(R) T, name mo.Option[string]) *DelegateCodec[T, R] {
	return &DelegateCodec[T, R]{
		inner:   inner,
		save:    save,
		restore: restore,
		d:       delegateDescriptor(inner.Descriptor(), name),
	}
}

func delegateDescriptor(inner *descriptor.Descriptor, name mo.Option[string]) *descriptor.Descriptor {
	n, ok := name.Get()
	if !ok || strings.TrimSpace(n) == "" || n == inner.Name() {
		return inner
	}
	if inner.Kind().IsPrimitive() {
		return descriptor.Primitive(inner.Kind(), n)
	}
	return descriptor.Wrap(n, inner)
}

func (c *DelegateCodec[T, R]) Descriptor() *descriptor.Descriptor { return c.d }

func (c *DelegateCodec[T, R]) Encode(e Encoder, value T) error {
	return c.inner.Encode(e, c.save(value))
}

func (c *DelegateCodec[T, R]) Decode(d Decoder) (T, error) {
	r, err := c.inner.Decode(d)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.restore(r), nil
}

// Erase returns c as a codec of untyped values, sharing c's descriptor.
// Encoding a value that is not a T panics.
func Erase[T any](c Codec[T]) Codec[any] {
	return Delegate(c,
		func(v any) T { return v.(T) },
		func(t T) any { return t },
		mo.None[string](),
	)
}
