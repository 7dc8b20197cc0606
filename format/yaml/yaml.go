// Package yaml reads and writes values as YAML mappings keyed by field name.
package yaml

import (
	"encoding/base64"
	"strconv"

	"github.com/pkg/errors"
	yamlv3 "gopkg.in/yaml.v3"

	"tessera/codec"
	"tessera/format"
	"tessera/format/tree"
)

const binaryTag = "!!binary"

// New returns the YAML format.
func New(opts ...format.Option) format.Format {
	return format.New("yaml", tree.Keyed, Marshal, Unmarshal, opts...)
}

// Marshal writes a value tree as a YAML document.
func Marshal(node any) ([]byte, error) {
	n, err := toNode(node)
	if err != nil {
		return nil, err
	}
	out, err := yamlv3.Marshal(n)
	if err != nil {
		return nil, errors.Wrap(err, "yaml: marshal")
	}
	return out, nil
}

func toNode(node any) (*yamlv3.Node, error) {
	switch v := node.(type) {
	case tree.Object:
		n := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		for _, m := range v {
			val, err := toNode(m.Value)
			if err != nil {
				return nil, err
			}
			key := &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: m.Key}
			n.Content = append(n.Content, key, val)
		}
		return n, nil
	case []any:
		n := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			val, err := toNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	case []byte:
		return &yamlv3.Node{
			Kind:  yamlv3.ScalarNode,
			Tag:   binaryTag,
			Value: base64.StdEncoding.EncodeToString(v),
		}, nil
	}

	n := &yamlv3.Node{}
	if err := n.Encode(node); err != nil {
		return nil, errors.Wrapf(err, "yaml: encode %T", node)
	}
	return n, nil
}

// Unmarshal reads a YAML document into a value tree.
func Unmarshal(data []byte) (any, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, codec.WrapMalformed(err, "yaml")
	}
	if doc.Kind != yamlv3.DocumentNode || len(doc.Content) == 0 {
		return nil, codec.Malformed("yaml: empty document")
	}
	return fromNode(doc.Content[0])
}

func fromNode(n *yamlv3.Node) (any, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yamlv3.AliasNode:
		return fromNode(n.Alias)
	case yamlv3.MappingNode:
		obj := make(tree.Object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, tree.Member{Key: n.Content[i].Value, Value: v})
		}
		return obj, nil
	case yamlv3.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}

	if n.ShortTag() == binaryTag {
		b, err := base64.StdEncoding.DecodeString(n.Value)
		if err != nil {
			return nil, codec.WrapMalformed(err, "yaml: binary scalar")
		}
		return b, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, codec.WrapMalformed(err, "yaml: scalar at line "+strconv.Itoa(n.Line))
	}
	return v, nil
}
