package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type nodeKind uint8

const (
	scalarNode nodeKind = iota
	objectNode
	arrayNode
)

// node is an order-preserving JSON value. Scalars keep their source literal,
// so numbers and untouched strings are written back exactly as read.
type node struct {
	kind   nodeKind
	raw    []byte
	keys   []string
	fields map[string]*node
	elems  []*node
}

func parseTree(data []byte) (*node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeNode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return root, nil
}

func decodeNode(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		raw, err := scalarLiteral(tok)
		if err != nil {
			return nil, err
		}
		return &node{kind: scalarNode, raw: raw}, nil
	}

	switch delim {
	case '{':
		n := &node{kind: objectNode, fields: make(map[string]*node)}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", kt)
			}
			val, err := decodeNode(dec)
			if err != nil {
				return nil, err
			}
			n.set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	case '[':
		n := &node{kind: arrayNode}
		for dec.More() {
			val, err := decodeNode(dec)
			if err != nil {
				return nil, err
			}
			n.elems = append(n.elems, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

func scalarLiteral(tok json.Token) ([]byte, error) {
	switch v := tok.(type) {
	case json.Number:
		return []byte(v.String()), nil
	case string:
		return encodeString(v)
	default:
		return json.Marshal(v)
	}
}

// encodeString writes non-ASCII text verbatim and leaves <, > and & alone.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func stringNode(s string) *node {
	raw, _ := encodeString(s)
	return &node{kind: scalarNode, raw: raw}
}

func nullNode() *node {
	return &node{kind: scalarNode, raw: []byte("null")}
}

// set replaces an existing key in place or appends a new one.
func (n *node) set(key string, val *node) {
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = val
}

func (n *node) field(key string) *node {
	if n == nil || n.kind != objectNode {
		return nil
	}
	return n.fields[key]
}

func (n *node) isNull() bool {
	return n != nil && n.kind == scalarNode && string(n.raw) == "null"
}

func (n *node) stringValue() (string, bool) {
	if n == nil || n.kind != scalarNode || len(n.raw) == 0 || n.raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(n.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (n *node) writeTo(buf *bytes.Buffer) error {
	switch n.kind {
	case objectNode:
		buf.WriteByte('{')
		for i, key := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := encodeString(key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := n.fields[key].writeTo(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case arrayNode:
		buf.WriteByte('[')
		for i, el := range n.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := el.writeTo(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		buf.Write(n.raw)
	}
	return nil
}

func (n *node) marshalIndent() ([]byte, error) {
	var compact bytes.Buffer
	if err := n.writeTo(&compact); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
