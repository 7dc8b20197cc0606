// Package format ties a wire representation to the codec protocol.
//
// A Format turns codec output into bytes in two steps: the codec runs
// against a format/tree encoder, and the format's marshal function writes the
// resulting tree with a third-party library. Decoding runs the same steps in
// reverse. The subpackages json, yaml, bson, cbor and msgpack each provide a
// constructor returning a Format.
package format

import (
	"log/slog"

	"tessera/codec"
	"tessera/format/tree"
)

type (
	// MarshalFunc writes a value tree.
	MarshalFunc func(node any) ([]byte, error)
	// UnmarshalFunc reads a value tree.
	UnmarshalFunc func(data []byte) (any, error)
)

// Format is a named wire representation.
type Format struct {
	name      string
	config    tree.Config
	marshal   MarshalFunc
	unmarshal UnmarshalFunc
}

// Option adjusts a Format.
type Option func(*tree.Config)

// IgnoreUnknownKeys makes keyed decoding skip members that match no field.
func IgnoreUnknownKeys() Option {
	return func(c *tree.Config) { c.IgnoreUnknownKeys = true }
}

// WithLogger sets the logger that records skipped members.
func WithLogger(l *slog.Logger) Option {
	return func(c *tree.Config) { c.Logger = l }
}

// New returns a Format laying out composites in mode.
func New(name string, mode tree.Mode, m MarshalFunc, u UnmarshalFunc, opts ...Option) Format {
	cfg := tree.Config{Mode: mode}
	for _, opt := range opts {
		opt(&cfg)
	}
	return Format{name: name, config: cfg, marshal: m, unmarshal: u}
}

func (f Format) Name() string    { return f.name }
func (f Format) Mode() tree.Mode { return f.config.Mode }

// Encode writes value with c in format f.
func Encode[T any](f Format, c codec.Codec[T], value T) ([]byte, error) {
	node, err := tree.Encode(f.config, c, value)
	if err != nil {
		return nil, err
	}
	return f.marshal(node)
}

// Decode reads a value with c from data in format f.
func Decode[T any](f Format, c codec.Codec[T], data []byte) (T, error) {
	node, err := f.unmarshal(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return tree.Decode(f.config, c, node)
}
