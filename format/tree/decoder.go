package tree

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"

	"tessera/codec"
	"tessera/descriptor"
)

type decoder struct {
	cfg  *Config
	node any
}

var _ codec.Decoder = (*decoder)(nil)

func (d *decoder) DecodeBool() (bool, error) {
	if b, ok := d.node.(bool); ok {
		return b, nil
	}
	return false, unexpected("bool", d.node)
}

func (d *decoder) DecodeInt() (int64, error) {
	switch v := d.node.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint, uint8, uint16, uint32, uint64:
		u, _ := toUint(v)
		if u > math.MaxInt64 {
			return 0, codec.Malformed("%d overflows int64", u)
		}
		return int64(u), nil
	case float32, float64:
		f, _ := toFloat(v)
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, codec.Malformed("%g is not an integer", f)
		}
		return int64(f), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, codec.WrapMalformed(err, "integer")
		}
		return n, nil
	}
	return 0, unexpected("integer", d.node)
}

func (d *decoder) DecodeUint() (uint64, error) {
	if u, ok := toUint(d.node); ok {
		return u, nil
	}
	switch v := d.node.(type) {
	case json.Number:
		n, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return 0, codec.WrapMalformed(err, "unsigned integer")
		}
		return n, nil
	case float32, float64:
		f, _ := toFloat(v)
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, codec.Malformed("%g is not an unsigned integer", f)
		}
		return uint64(f), nil
	}
	n, err := d.DecodeInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, codec.Malformed("%d is negative", n)
	}
	return uint64(n), nil
}

func (d *decoder) DecodeFloat() (float64, error) {
	if f, ok := toFloat(d.node); ok {
		return f, nil
	}
	switch v := d.node.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, codec.WrapMalformed(err, "float")
		}
		return f, nil
	case int, int8, int16, int32, int64:
		n, _ := d.DecodeInt()
		return float64(n), nil
	}
	if u, ok := toUint(d.node); ok {
		return float64(u), nil
	}
	return 0, unexpected("float", d.node)
}

func (d *decoder) DecodeString() (string, error) {
	if s, ok := d.node.(string); ok {
		return s, nil
	}
	return "", unexpected("string", d.node)
}

func (d *decoder) DecodeBytes() ([]byte, error) {
	switch v := d.node.(type) {
	case []byte:
		return v, nil
	case string:
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, codec.WrapMalformed(err, "base64 bytes")
		}
		return b, nil
	}
	return nil, unexpected("bytes", d.node)
}

func (d *decoder) BeginStructure(desc *descriptor.Descriptor) (codec.StructureDecoder, error) {
	switch v := d.node.(type) {
	case []any:
		if desc.Kind() == descriptor.Composite && len(v) != desc.NumFields() {
			return nil, codec.Malformed("%s: got %d elements, want %d", desc.Name(), len(v), desc.NumFields())
		}
		return &arrayDecoder{cfg: d.cfg, items: v, sequential: d.cfg.Mode == Sequential}, nil
	case Object:
		if desc.Kind() != descriptor.Composite {
			return nil, unexpected(desc.Kind().String(), v)
		}
		return &objectDecoder{cfg: d.cfg, desc: desc, obj: v}, nil
	}
	return nil, unexpected(desc.Kind().String(), d.node)
}

// arrayDecoder serves lists in both modes and composites in Sequential mode.
type arrayDecoder struct {
	cfg        *Config
	items      []any
	sequential bool
	next       int
	read       int
}

func (a *arrayDecoder) DecodeSequentially() bool { return a.sequential }

func (a *arrayDecoder) CollectionSize(*descriptor.Descriptor) int { return len(a.items) }

func (a *arrayDecoder) NextElementIndex(*descriptor.Descriptor) (int, error) {
	if a.next >= len(a.items) {
		return codec.Done, nil
	}
	a.next++
	return a.next - 1, nil
}

func (a *arrayDecoder) Element(desc *descriptor.Descriptor, index int) (codec.Decoder, error) {
	if index < 0 || index >= len(a.items) {
		return nil, codec.Malformed("%s: no element %d in %d", desc.Name(), index, len(a.items))
	}
	a.read++
	return &decoder{cfg: a.cfg, node: a.items[index]}, nil
}

func (a *arrayDecoder) End() error {
	if a.read < len(a.items) {
		return codec.Malformed("%d trailing elements", len(a.items)-a.read)
	}
	return nil
}

// objectDecoder serves composites in Keyed mode with the indexed strategy.
type objectDecoder struct {
	cfg     *Config
	desc    *descriptor.Descriptor
	obj     Object
	next    int
	current any
}

func (o *objectDecoder) DecodeSequentially() bool { return false }

func (o *objectDecoder) CollectionSize(*descriptor.Descriptor) int { return -1 }

func (o *objectDecoder) NextElementIndex(desc *descriptor.Descriptor) (int, error) {
	for o.next < len(o.obj) {
		m := o.obj[o.next]
		o.next++
		index, ok := desc.FieldIndex(m.Key)
		if ok {
			o.current = m.Value
			return index, nil
		}
		if err := o.skip(m.Key); err != nil {
			return 0, err
		}
	}
	return codec.Done, nil
}

func (o *objectDecoder) skip(key string) error {
	if !o.cfg.IgnoreUnknownKeys {
		return &codec.UnknownFieldError{Composite: o.desc.Name(), Index: -1, Key: key}
	}
	o.cfg.logger().Debug("skipping unknown member", "composite", o.desc.Name(), "key", key)
	return nil
}

func (o *objectDecoder) Element(desc *descriptor.Descriptor, index int) (codec.Decoder, error) {
	if o.next == 0 || index < 0 || index >= desc.NumFields() || desc.Field(index).Name != o.obj[o.next-1].Key {
		return nil, codec.Malformed("%s: element %d was not announced", desc.Name(), index)
	}
	return &decoder{cfg: o.cfg, node: o.current}, nil
}

// End rejects members left unread, which only a composite without fields
// leaves behind.
func (o *objectDecoder) End() error {
	for ; o.next < len(o.obj); o.next++ {
		if _, ok := o.desc.FieldIndex(o.obj[o.next].Key); ok {
			continue
		}
		if err := o.skip(o.obj[o.next].Key); err != nil {
			return err
		}
	}
	return nil
}

func toUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func unexpected(want string, got any) error {
	return codec.Malformed("expected %s, got %T", want, got)
}
