package codec

import (
	"tessera/descriptor"
)

// ListCodec encodes slices whose elements share one codec.
type ListCodec[E any] struct {
	elem Codec[E]
	d    *descriptor.Descriptor
}

// List returns the codec for []E built on elem.
func List[E any](elem Codec[E]) *ListCodec[E] {
	ed := elem.Descriptor()
	return &ListCodec[E]{
		elem: elem,
		d:    descriptor.NewList("list<"+ed.Name()+">", ed),
	}
}

func (c *ListCodec[E]) Descriptor() *descriptor.Descriptor { return c.d }

func (c *ListCodec[E]) Encode(e Encoder, value []E) error {
	s, err := e.BeginCollection(c.d, len(value))
	if err != nil {
		return err
	}
	for i, v := range value {
		if err := EncodeElement(s, c.d, i, c.elem, v); err != nil {
			return err
		}
	}
	return s.End()
}

func (c *ListCodec[E]) Decode(d Decoder) ([]E, error) {
	return DecodeStructure(d, c.d, func(s StructureDecoder) ([]E, error) {
		if s.DecodeSequentially() {
			return c.decodeSequential(s)
		}
		return c.decodeIndexed(s)
	})
}

func (c *ListCodec[E]) decodeSequential(s StructureDecoder) ([]E, error) {
	n := s.CollectionSize(c.d)
	if n < 0 {
		return nil, Malformed("%s: sequential source did not report a size", c.d.Name())
	}
	out := make([]E, 0, n)
	for i := 0; i < n; i++ {
		v, err := DecodeElement(s, c.d, i, c.elem)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *ListCodec[E]) decodeIndexed(s StructureDecoder) ([]E, error) {
	var out []E
	if n := s.CollectionSize(c.d); n > 0 {
		out = make([]E, 0, n)
	}
	for {
		index, err := s.NextElementIndex(c.d)
		if err != nil {
			return nil, err
		}
		if index == Done {
			break
		}
		if index != len(out) {
			return nil, Malformed("%s: element %d arrived at position %d", c.d.Name(), index, len(out))
		}
		v, err := DecodeElement(s, c.d, index, c.elem)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if out == nil {
		out = []E{}
	}
	return out, nil
}
