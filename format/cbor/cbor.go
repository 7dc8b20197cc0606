// Package cbor reads and writes values as deterministic CBOR.
//
// Composites are CBOR arrays in declared field order, so decoding always
// takes the sequential path and field names never reach the wire.
package cbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"tessera/codec"
	"tessera/format"
	"tessera/format/tree"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): the same tree
// always produces the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor: encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Only reached by foreign input: trees never contain maps.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cbor: decoder initialization failed: " + err.Error())
	}
}

// New returns the CBOR format.
func New(opts ...format.Option) format.Format {
	return format.New("cbor", tree.Sequential, Marshal, Unmarshal, opts...)
}

// Marshal writes a value tree as CBOR.
func Marshal(node any) ([]byte, error) {
	out, err := encMode.Marshal(node)
	if err != nil {
		return nil, errors.Wrap(err, "cbor: marshal")
	}
	return out, nil
}

// Unmarshal reads one CBOR data item into a value tree.
func Unmarshal(data []byte) (any, error) {
	var node any
	if err := decMode.Unmarshal(data, &node); err != nil {
		return nil, codec.WrapMalformed(err, "cbor")
	}
	return node, nil
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
