// Package tessera composes codecs and formats into a catalog that can encode,
// decode and transcode named types.
//
// The building blocks live in subpackages: descriptor models type shapes,
// codec composes codecs from fields and delegates, and format with its
// subpackages maps codec output onto JSON, YAML, BSON, CBOR and MessagePack.
package tessera

import (
	"tessera/codec"
	"tessera/descriptor"
	"tessera/format"
	"tessera/format/bson"
	"tessera/format/cbor"
	"tessera/format/json"
	"tessera/format/msgpack"
	"tessera/format/yaml"
	"tessera/registry"
)

// Catalog holds formats and type-erased codecs by name. It is safe for
// concurrent use.
type Catalog struct {
	formats *registry.Registry[format.Format]
	codecs  *registry.Registry[codec.Codec[any]]
}

// NewCatalog returns a catalog preloaded with every built-in format, each
// configured with opts.
func NewCatalog(opts ...format.Option) *Catalog {
	c := &Catalog{
		formats: registry.New[format.Format]("format"),
		codecs:  registry.New[codec.Codec[any]]("type"),
	}
	for _, f := range []format.Format{
		json.New(opts...),
		yaml.New(opts...),
		bson.New(opts...),
		cbor.New(opts...),
		msgpack.New(opts...),
	} {
		c.formats.MustRegister(f.Name(), f)
	}
	return c
}

// AddFormat registers f under its name.
func (c *Catalog) AddFormat(f format.Format) error {
	return c.formats.Register(f.Name(), f)
}

// Use registers cd under the name of its descriptor.
func Use[T any](c *Catalog, cd codec.Codec[T]) error {
	return c.codecs.Register(cd.Descriptor().Name(), codec.Erase(cd))
}

func (c *Catalog) Format(name string) (format.Format, error) {
	return c.formats.Get(name)
}

func (c *Catalog) Codec(name string) (codec.Codec[any], error) {
	return c.codecs.Get(name)
}

func (c *Catalog) Formats() []string { return c.formats.Names() }
func (c *Catalog) Types() []string   { return c.codecs.Names() }

// Describe returns the descriptor of the type registered as name.
func (c *Catalog) Describe(name string) (*descriptor.Descriptor, error) {
	cd, err := c.codecs.Get(name)
	if err != nil {
		return nil, err
	}
	return cd.Descriptor(), nil
}

// Transcode decodes data in format from as the type registered under
// typeName and encodes the result in format to.
func (c *Catalog) Transcode(typeName, from, to string, data []byte) ([]byte, error) {
	cd, err := c.codecs.Get(typeName)
	if err != nil {
		return nil, err
	}
	src, err := c.formats.Get(from)
	if err != nil {
		return nil, err
	}
	dst, err := c.formats.Get(to)
	if err != nil {
		return nil, err
	}

	v, err := format.Decode(src, cd, data)
	if err != nil {
		return nil, err
	}
	return format.Encode(dst, cd, v)
}
