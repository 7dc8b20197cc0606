// Package tree is a format collaborator that writes codec output into an
// in-memory value tree and reads it back.
//
// Leaves are bool, int64, uint64, float64, string and []byte. Lists are []any.
// Composites are []any in Sequential mode and Object in Keyed mode. Format
// packages translate between a tree and their own wire representation.
//
// When decoding, leaves are accepted more loosely: any Go integer or float
// type, json.Number and base64 text where bytes are expected, so that trees
// produced by third-party decoders can be read directly.
package tree

import (
	"log/slog"

	"tessera/codec"
)

// Mode selects how composites are laid out.
type Mode int

const (
	// Sequential lays out composites as arrays in declared field order. The
	// decoder serves them with the sequential strategy.
	Sequential Mode = iota
	// Keyed lays out composites as Objects keyed by field name. The decoder
	// serves them with the indexed strategy.
	Keyed
)

func (m Mode) String() string {
	if m == Keyed {
		return "keyed"
	}
	return "sequential"
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is an ordered key/value aggregate.
type Object []Member

// Config controls an encode or decode.
type Config struct {
	Mode Mode
	// IgnoreUnknownKeys skips Object members that name no field instead of
	// failing the decode.
	IgnoreUnknownKeys bool
	// Logger receives debug records about skipped members. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Encode runs c over value and returns the resulting tree.
func Encode[T any](cfg Config, c codec.Codec[T], value T) (any, error) {
	var root any
	e := &encoder{cfg: &cfg, put: func(v any) { root = v }}
	if err := c.Encode(e, value); err != nil {
		return nil, err
	}
	return root, nil
}

// Decode runs c over node.
func Decode[T any](cfg Config, c codec.Codec[T], node any) (T, error) {
	return c.Decode(&decoder{cfg: &cfg, node: node})
}
