package codec

import (
	"fmt"

	"tessera/descriptor"
)

// script is a Decoder replaying a fixed tree of values. Structures list their
// elements in arrival order; a sequential script must list them in declared
// order.
type script struct {
	sequential bool
	leaf       any
	elems      []step

	pos        int
	begun      int
	ended      int
	nextCalls  int
	readByElem int
}

type step struct {
	index int
	value *script
}

func leaf(v any) *script { return &script{leaf: v} }

func seq(values ...*script) *script {
	s := &script{sequential: true}
	for i, v := range values {
		s.elems = append(s.elems, step{i, v})
	}
	return s
}

func keyed(steps ...step) *script { return &script{elems: steps} }

func at(index int, v *script) step { return step{index, v} }

func (s *script) DecodeBool() (bool, error)     { return as[bool](s.leaf) }
func (s *script) DecodeInt() (int64, error)     { return as[int64](s.leaf) }
func (s *script) DecodeUint() (uint64, error)   { return as[uint64](s.leaf) }
func (s *script) DecodeFloat() (float64, error) { return as[float64](s.leaf) }
func (s *script) DecodeString() (string, error) { return as[string](s.leaf) }
func (s *script) DecodeBytes() ([]byte, error)  { return as[[]byte](s.leaf) }

func as[V any](v any) (V, error) {
	t, ok := v.(V)
	if !ok {
		return t, Malformed("want %T, have %T", t, v)
	}
	return t, nil
}

func (s *script) BeginStructure(*descriptor.Descriptor) (StructureDecoder, error) {
	s.begun++
	s.pos = 0
	return s, nil
}

func (s *script) DecodeSequentially() bool                  { return s.sequential }
func (s *script) CollectionSize(*descriptor.Descriptor) int { return len(s.elems) }

func (s *script) NextElementIndex(*descriptor.Descriptor) (int, error) {
	s.nextCalls++
	if s.pos >= len(s.elems) {
		return Done, nil
	}
	s.pos++
	return s.elems[s.pos-1].index, nil
}

func (s *script) Element(d *descriptor.Descriptor, index int) (Decoder, error) {
	s.readByElem++
	if s.sequential {
		if index >= len(s.elems) {
			return nil, Malformed("%s: only %d elements", d.Name(), len(s.elems))
		}
		return s.elems[index].value, nil
	}
	return s.elems[s.pos-1].value, nil
}

func (s *script) End() error {
	s.ended++
	return nil
}

// recorder is an Encoder logging every call it receives.
type recorder struct {
	log *[]string
}

func newRecorder() (*recorder, *[]string) {
	var log []string
	return &recorder{log: &log}, &log
}

func (r *recorder) add(format string, args ...any) error {
	*r.log = append(*r.log, fmt.Sprintf(format, args...))
	return nil
}

func (r *recorder) EncodeBool(v bool) error     { return r.add("bool %v", v) }
func (r *recorder) EncodeInt(v int64) error     { return r.add("int %d", v) }
func (r *recorder) EncodeUint(v uint64) error   { return r.add("uint %d", v) }
func (r *recorder) EncodeFloat(v float64) error { return r.add("float %g", v) }
func (r *recorder) EncodeString(v string) error { return r.add("string %q", v) }
func (r *recorder) EncodeBytes(v []byte) error  { return r.add("bytes %x", v) }

func (r *recorder) BeginStructure(d *descriptor.Descriptor) (StructureEncoder, error) {
	return r, r.add("begin %s", d.Name())
}

func (r *recorder) BeginCollection(d *descriptor.Descriptor, size int) (StructureEncoder, error) {
	return r, r.add("begin %s[%d]", d.Name(), size)
}

func (r *recorder) Element(d *descriptor.Descriptor, index int) (Encoder, error) {
	if d.Kind() != descriptor.Composite {
		return r, r.add("element %d", index)
	}
	return r, r.add("element %d %s", index, d.Field(index).Name)
}

func (r *recorder) End() error { return r.add("end") }
