package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotObject is returned when a document root is not an object.
	ErrNotObject = errors.New("schema root is not an object")
	// ErrCyclicSchema is returned when an object graph refers back to one of
	// its ancestors.
	ErrCyclicSchema = errors.New("cyclic schema")
)

// LoadFile reads a schema document from disk. The format is chosen by file
// extension: .yaml/.yml are YAML, .jsonc is JSONC and everything else is
// parsed as JSON.
func LoadFile(path string) (*Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var obj *Object

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		obj, err = ParseYAML(data)
	case ".jsonc":
		obj, err = ParseJSONC(data)
	default:
		obj, err = ParseJSON(data)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return obj, nil
}

// ParseJSON decodes a JSON document into an ordered Object. Numbers are
// kept as json.Number so they are written back verbatim.
func ParseJSON(data []byte) (*Object, error) {
	root, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	obj, ok := root.(*Object)
	if !ok {
		return nil, ErrNotObject
	}

	return obj, nil
}

// decodeDocument decodes a single JSON value of any kind.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after document")
	}

	return root, nil
}

// ParseJSONC strips comments and trailing commas, then parses the result as
// JSON.
func ParseJSONC(data []byte) (*Object, error) {
	return ParseJSON(jsonc.ToJSON(data))
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	default:
		return v, nil
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		obj.Set(key, value)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	out := []any{}

	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", len(out), err)
		}

		out = append(out, value)
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return out, nil
}

// ParseYAML decodes a YAML document into an ordered Object. Mapping order is
// taken from the document; aliases are resolved.
func ParseYAML(data []byte) (*Object, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrNotObject
	}

	root, err := fromYAMLNode(doc.Content[0], 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	obj, ok := root.(*Object)
	if !ok {
		return nil, ErrNotObject
	}

	return obj, nil
}

// maxYAMLAliasDepth bounds alias resolution so self-referencing anchors
// cannot recurse forever.
const maxYAMLAliasDepth = 64

func fromYAMLNode(n *yaml.Node, aliasDepth int) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		obj := NewObject()

		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := fromYAMLNode(n.Content[i+1], aliasDepth)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", n.Content[i].Value, err)
			}

			obj.Set(n.Content[i].Value, value)
		}

		return obj, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))

		for i, c := range n.Content {
			value, err := fromYAMLNode(c, aliasDepth)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			out = append(out, value)
		}

		return out, nil
	case yaml.AliasNode:
		if aliasDepth >= maxYAMLAliasDepth || n.Alias == nil {
			return nil, ErrCyclicSchema
		}

		return fromYAMLNode(n.Alias, aliasDepth+1)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}

		return v, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}
