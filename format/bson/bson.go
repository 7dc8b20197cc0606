// Package bson reads and writes values as BSON documents keyed by field name.
//
// BSON only admits documents at the top level, so every value is stored
// under the single key "v" of an outer document.
package bson

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	mgobson "gopkg.in/mgo.v2/bson"

	"tessera/codec"
	"tessera/format"
	"tessera/format/tree"
)

const rootKey = "v"

// New returns the BSON format.
func New(opts ...format.Option) format.Format {
	return format.New("bson", tree.Keyed, Marshal, Unmarshal, opts...)
}

// Marshal writes a value tree as a BSON document.
func Marshal(node any) ([]byte, error) {
	v, err := toBSON(node)
	if err != nil {
		return nil, err
	}
	out, err := mgobson.Marshal(mgobson.D{{Name: rootKey, Value: v}})
	if err != nil {
		return nil, errors.Wrap(err, "bson: marshal")
	}
	return out, nil
}

func toBSON(node any) (any, error) {
	switch v := node.(type) {
	case tree.Object:
		doc := make(mgobson.D, 0, len(v))
		for _, m := range v {
			val, err := toBSON(m.Value)
			if err != nil {
				return nil, err
			}
			doc = append(doc, mgobson.DocElem{Name: m.Key, Value: val})
		}
		return doc, nil
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			val, err := toBSON(item)
			if err != nil {
				return nil, err
			}
			items[i] = val
		}
		return items, nil
	case uint64:
		// BSON has no unsigned integers.
		if v > math.MaxInt64 {
			return nil, errors.Errorf("bson: %d does not fit in int64", v)
		}
		return int64(v), nil
	}
	return node, nil
}

// Unmarshal reads a BSON document written by Marshal into a value tree.
func Unmarshal(data []byte) (any, error) {
	var doc mgobson.D
	if err := mgobson.Unmarshal(data, &doc); err != nil {
		return nil, codec.WrapMalformed(err, "bson")
	}
	if len(doc) != 1 || doc[0].Name != rootKey {
		return nil, codec.Malformed("bson: want a single %q element, got %d elements", rootKey, len(doc))
	}
	return fromBSON(doc[0].Value), nil
}

func fromBSON(v any) any {
	switch t := v.(type) {
	case mgobson.D:
		obj := make(tree.Object, 0, len(t))
		for _, e := range t {
			obj = append(obj, tree.Member{Key: e.Name, Value: fromBSON(e.Value)})
		}
		return obj
	case mgobson.M:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(tree.Object, 0, len(t))
		for _, k := range keys {
			obj = append(obj, tree.Member{Key: k, Value: fromBSON(t[k])})
		}
		return obj
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = fromBSON(item)
		}
		return items
	case mgobson.Binary:
		return t.Data
	}
	return v
}
