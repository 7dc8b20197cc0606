package tree

import (
	"tessera/codec"
	"tessera/descriptor"
)

type encoder struct {
	cfg *Config
	put func(any)
}

var _ codec.Encoder = (*encoder)(nil)

func (e *encoder) EncodeBool(v bool) error     { e.put(v); return nil }
func (e *encoder) EncodeInt(v int64) error     { e.put(v); return nil }
func (e *encoder) EncodeUint(v uint64) error   { e.put(v); return nil }
func (e *encoder) EncodeFloat(v float64) error { e.put(v); return nil }
func (e *encoder) EncodeString(v string) error { e.put(v); return nil }
func (e *encoder) EncodeBytes(v []byte) error  { e.put(append([]byte{}, v...)); return nil }

func (e *encoder) BeginStructure(d *descriptor.Descriptor) (codec.StructureEncoder, error) {
	if d.Kind() == descriptor.List {
		return e.BeginCollection(d, 0)
	}
	if e.cfg.Mode == Keyed {
		return &objectEncoder{cfg: e.cfg, put: e.put, obj: make(Object, 0, d.NumFields())}, nil
	}
	return &arrayEncoder{cfg: e.cfg, put: e.put, items: make([]any, 0, d.NumFields())}, nil
}

func (e *encoder) BeginCollection(_ *descriptor.Descriptor, size int) (codec.StructureEncoder, error) {
	return &arrayEncoder{cfg: e.cfg, put: e.put, items: make([]any, 0, size)}, nil
}

type arrayEncoder struct {
	cfg   *Config
	put   func(any)
	items []any
}

func (a *arrayEncoder) Element(_ *descriptor.Descriptor, index int) (codec.Encoder, error) {
	if index != len(a.items) {
		return nil, codec.Malformed("element %d written at position %d", index, len(a.items))
	}
	a.items = append(a.items, nil)
	return &encoder{cfg: a.cfg, put: func(v any) { a.items[index] = v }}, nil
}

func (a *arrayEncoder) End() error {
	a.put(a.items)
	return nil
}

type objectEncoder struct {
	cfg *Config
	put func(any)
	obj Object
}

func (o *objectEncoder) Element(d *descriptor.Descriptor, index int) (codec.Encoder, error) {
	if index < 0 || index >= d.NumFields() {
		return nil, &codec.UnknownFieldError{Composite: d.Name(), Index: index}
	}
	at := len(o.obj)
	o.obj = append(o.obj, Member{Key: d.Field(index).Name})
	return &encoder{cfg: o.cfg, put: func(v any) { o.obj[at].Value = v }}, nil
}

func (o *objectEncoder) End() error {
	o.put(o.obj)
	return nil
}
