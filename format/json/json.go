// Package json reads and writes values as JSON objects keyed by field name.
//
// Output is compact and keeps declared field order. Input may carry comments
// and trailing commas; members may come in any order.
package json

import (
	"bytes"
	stdjson "encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"

	"tessera/codec"
	"tessera/format"
	"tessera/format/tree"
)

// New returns the JSON format.
func New(opts ...format.Option) format.Format {
	return format.New("json", tree.Keyed, Marshal, Unmarshal, opts...)
}

// Marshal writes a value tree as JSON.
func Marshal(node any) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func write(buf *bytes.Buffer, node any) error {
	switch v := node.(type) {
	case tree.Object:
		buf.WriteByte('{')
		for i, m := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := write(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := write(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return writeScalar(buf, v)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, v any) error {
	b, err := stdjson.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "json: marshal %T", v)
	}
	buf.Write(b)
	return nil
}

// Unmarshal reads JSON, with comments allowed, into a value tree.
func Unmarshal(data []byte) (any, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	node, err := read(dec)
	if err != nil {
		return nil, codec.WrapMalformed(err, "json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, codec.Malformed("json: trailing data after value")
	}
	return node, nil
}

func read(dec *stdjson.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(stdjson.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := tree.Object{}
		for dec.More() {
			key, err := dec.Token()
			if err != nil {
				return nil, err
			}
			v, err := read(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, tree.Member{Key: key.(string), Value: v})
		}
		_, err = dec.Token()
		return obj, err
	case '[':
		items := []any{}
		for dec.More() {
			v, err := read(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		_, err = dec.Token()
		return items, err
	}
	return nil, errors.Errorf("unexpected %v", delim)
}
