// Package codec builds bidirectional encoders/decoders for Go values by
// composing codecs for their parts.
//
// A Codec never talks to a concrete data format. It drives an Encoder (the
// sink) and a Decoder (the source) supplied per call by a format package, so
// the same codec value can be written as JSON, YAML, CBOR or anything else
// implementing the structural protocol below.
//
// Codecs hold no mutable state and are safe for concurrent use.
package codec

import (
	"tessera/descriptor"
)

// Done is returned by StructureDecoder.NextElementIndex when no elements are
// left in the structure.
const Done = -1

// Codec encodes and decodes values of type T.
type Codec[T any] interface {
	Descriptor() *descriptor.Descriptor
	Encode(e Encoder, value T) error
	Decode(d Decoder) (T, error)
}

// Encoder is the sink a codec writes to. Leaf codecs call one of the
// primitive methods; aggregate codecs open a structure.
type Encoder interface {
	EncodeBool(v bool) error
	EncodeInt(v int64) error
	EncodeUint(v uint64) error
	EncodeFloat(v float64) error
	EncodeString(v string) error
	EncodeBytes(v []byte) error

	// BeginStructure opens a composite described by d.
	BeginStructure(d *descriptor.Descriptor) (StructureEncoder, error)
	// BeginCollection opens a list of size elements described by d.
	BeginCollection(d *descriptor.Descriptor, size int) (StructureEncoder, error)
}

// StructureEncoder writes the elements of one open structure.
type StructureEncoder interface {
	// Element returns the encoder for the element at index. Elements are
	// requested in increasing index order.
	Element(d *descriptor.Descriptor, index int) (Encoder, error)
	End() error
}

// Decoder is the source a codec reads from.
type Decoder interface {
	DecodeBool() (bool, error)
	DecodeInt() (int64, error)
	DecodeUint() (uint64, error)
	DecodeFloat() (float64, error)
	DecodeString() (string, error)
	DecodeBytes() ([]byte, error)

	// BeginStructure opens the composite or list described by d.
	BeginStructure(d *descriptor.Descriptor) (StructureDecoder, error)
}

// StructureDecoder reads the elements of one open structure.
//
// When DecodeSequentially reports true the source commits to delivering
// exactly the declared elements in declared order, and the caller requests
// them with Element without consulting NextElementIndex. Otherwise the caller
// loops on NextElementIndex until it returns Done, reading each announced
// element with Element.
type StructureDecoder interface {
	DecodeSequentially() bool
	// CollectionSize returns the number of elements of a list, or -1 when the
	// source cannot tell in advance.
	CollectionSize(d *descriptor.Descriptor) int
	NextElementIndex(d *descriptor.Descriptor) (int, error)
	Element(d *descriptor.Descriptor, index int) (Decoder, error)
	End() error
}

// EncodeStructure opens a structure for d on e, runs fn and closes it.
func EncodeStructure(e Encoder, d *descriptor.Descriptor, fn func(StructureEncoder) error) error {
	s, err := e.BeginStructure(d)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.End()
}

// DecodeStructure opens a structure for d on dec, runs fn and closes it.
func DecodeStructure[T any](dec Decoder, d *descriptor.Descriptor, fn func(StructureDecoder) (T, error)) (T, error) {
	var zero T
	s, err := dec.BeginStructure(d)
	if err != nil {
		return zero, err
	}
	v, err := fn(s)
	if err != nil {
		return zero, err
	}
	if err := s.End(); err != nil {
		return zero, err
	}
	return v, nil
}

// EncodeElement writes value with c as element index of the open structure.
func EncodeElement[V any](s StructureEncoder, d *descriptor.Descriptor, index int, c Codec[V], value V) error {
	e, err := s.Element(d, index)
	if err != nil {
		return err
	}
	return c.Encode(e, value)
}

// DecodeElement reads element index of the open structure with c.
func DecodeElement[V any](s StructureDecoder, d *descriptor.Descriptor, index int, c Codec[V]) (V, error) {
	dec, err := s.Element(d, index)
	if err != nil {
		var zero V
		return zero, err
	}
	return c.Decode(dec)
}
