// Package msgpack reads and writes values as MessagePack.
//
// Like cbor, composites are arrays in declared field order and decode on the
// sequential path.
package msgpack

import (
	"github.com/pkg/errors"
	ugorji "github.com/ugorji/go/codec"

	"tessera/codec"
	"tessera/format"
	"tessera/format/tree"
)

var handle ugorji.MsgpackHandle

func init() {
	// str and bin stay distinct on the wire, so strings come back as
	// strings and bytes as bytes. RawToString must stay off: it turns bin
	// into string as well.
	handle.WriteExt = true
}

// New returns the MessagePack format.
func New(opts ...format.Option) format.Format {
	return format.New("msgpack", tree.Sequential, Marshal, Unmarshal, opts...)
}

// Marshal writes a value tree as MessagePack.
func Marshal(node any) ([]byte, error) {
	var out []byte
	if err := ugorji.NewEncoderBytes(&out, &handle).Encode(node); err != nil {
		return nil, errors.Wrap(err, "msgpack: marshal")
	}
	return out, nil
}

// Unmarshal reads one MessagePack value into a value tree.
func Unmarshal(data []byte) (any, error) {
	var node any
	if err := ugorji.NewDecoderBytes(data, &handle).Decode(&node); err != nil {
		return nil, codec.WrapMalformed(err, "msgpack")
	}
	return node, nil
}
