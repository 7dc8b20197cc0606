// Package descriptor describes the shape of encodable types without describing
// how they are encoded.
//
// A Descriptor is either primitive (a Kind and a name), a composite (a name and
// an ordered list of named child descriptors) or a list (a name and the
// descriptor of its elements). Descriptors are immutable once built and may be
// shared freely between goroutines.
package descriptor

import (
	"strings"

	"github.com/s0rg/trie"
)

// Field is a name/descriptor pair for one field of a composite.
type Field struct {
	Name       string
	Descriptor *Descriptor
}

// Descriptor is the shape metadata of one type.
type Descriptor struct {
	kind   Kind
	name   string
	fields []Field
	index  *trie.Trie[int]
	elem   *Descriptor
	// wrapped is the descriptor this one renames, if any.
	wrapped *Descriptor
}

// Primitive returns the descriptor of a primitive kind. It panics if kind is
// not primitive.
func Primitive(kind Kind, name string) *Descriptor {
	if !kind.IsPrimitive() {
		panic("descriptor: " + kind.String() + " is not a primitive kind")
	}
	return &Descriptor{kind: kind, name: name}
}

// NewComposite returns the descriptor of an aggregate with the given fields, in
// order. Field names must be non-empty and unique within the composite.
func NewComposite(name string, fields ...Field) (*Descriptor, error) {
	index := trie.New[int]()
	for i, f := range fields {
		switch {
		case f.Name == "":
			return nil, &InvalidCompositeError{Composite: name, Position: i, Reason: "empty field name"}
		case f.Descriptor == nil:
			return nil, &InvalidCompositeError{Composite: name, Field: f.Name, Position: i, Reason: "no descriptor"}
		}
		if _, ok := index.Find(f.Name); ok {
			return nil, &InvalidCompositeError{Composite: name, Field: f.Name, Position: i, Reason: "duplicate field name"}
		}
		index.Add(f.Name, i)
	}

	owned := make([]Field, len(fields))
	copy(owned, fields)
	return &Descriptor{kind: Composite, name: name, fields: owned, index: index}, nil
}

// NewList returns the descriptor of a homogeneous sequence of elem.
func NewList(name string, elem *Descriptor) *Descriptor {
	if elem == nil {
		panic("descriptor: list " + name + " has no element descriptor")
	}
	return &Descriptor{kind: List, name: name, elem: elem}
}

// Wrap returns a descriptor named name with exactly the shape of d. Wrapping a
// primitive yields a plain primitive of the same kind.
func Wrap(name string, d *Descriptor) *Descriptor {
	if d.kind.IsPrimitive() {
		return Primitive(d.kind, name)
	}
	return &Descriptor{
		kind:    d.kind,
		name:    name,
		fields:  d.fields,
		index:   d.index,
		elem:    d.elem,
		wrapped: d,
	}
}

func (d *Descriptor) Kind() Kind   { return d.kind }
func (d *Descriptor) Name() string { return d.name }

// NumFields returns the number of fields of a composite, or 0.
func (d *Descriptor) NumFields() int { return len(d.fields) }

// Field returns the i'th field of a composite.
func (d *Descriptor) Field(i int) Field { return d.fields[i] }

// Fields returns a copy of the field list.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// FieldIndex returns the position of the field called name.
func (d *Descriptor) FieldIndex(name string) (int, bool) {
	if d.index == nil || name == "" {
		return -1, false
	}
	i, ok := d.index.Find(name)
	if !ok || d.fields[i].Name != name {
		return -1, false
	}
	return i, true
}

// Elem returns the element descriptor of a list, or nil.
func (d *Descriptor) Elem() *Descriptor { return d.elem }

// Unwrap returns the descriptor d was renamed from by Wrap, or nil.
func (d *Descriptor) Unwrap() *Descriptor { return d.wrapped }

// Equal reports whether a and b describe the same wire shape. Names of the
// descriptors themselves are ignored; field names are not.
func Equal(a, b *Descriptor) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Composite:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Name != b.fields[i].Name ||
				!Equal(a.fields[i].Descriptor, b.fields[i].Descriptor) {
				return false
			}
		}
		return true
	case List:
		return Equal(a.elem, b.elem)
	}
	return true
}

// String returns a readable signature, e.g. "Color{r uint8, g uint8, b uint8}".
func (d *Descriptor) String() string {
	var sb strings.Builder
	d.format(&sb)
	return sb.String()
}

func (d *Descriptor) format(sb *strings.Builder) {
	switch d.kind {
	case Composite:
		sb.WriteString(d.name)
		sb.WriteByte('{')
		for i, f := range d.fields {
			if i != 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteByte(' ')
			f.Descriptor.format(sb)
		}
		sb.WriteByte('}')
	case List:
		sb.WriteString(d.name)
		sb.WriteByte('[')
		d.elem.format(sb)
		sb.WriteByte(']')
	default:
		sb.WriteString(d.name)
	}
}
