package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/pkgrewrite/pkg/core"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write a specific manifest format.
type Serializer interface {
	// Parse reads from r and returns a Manifest.
	Parse(r io.Reader) (*core.Manifest, error)
	// Serialize converts the Manifest to bytes.
	Serialize(m *core.Manifest) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON manifests.
// Parsed values are kept as json.RawMessage and written back verbatim
// apart from indentation.
type JSONSerializer struct {
	// Indent is the per-level indentation of the output.
	Indent string
}

// NewJSONSerializer creates a new JSON serializer indenting with two spaces.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: "  "}
}

func (s *JSONSerializer) Parse(r io.Reader) (*core.Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	data = bytes.TrimSpace(data)
	if data[0] != '{' {
		return nil, fmt.Errorf("%w: found json %s", core.ErrNotObject, jsonKind(data[0]))
	}

	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	m := core.NewManifest()
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		m.Set(pair.Key, pair.Value)
	}
	return m, nil
}

func (s *JSONSerializer) Serialize(m *core.Manifest) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	first := true
	err := m.Each(func(key string, value any) error {
		if !first {
			compact.WriteByte(',')
		}
		first = false

		if err := writeJSONValue(&compact, key); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		compact.WriteByte(':')
		if err := writeJSONValue(&compact, value); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", s.Indent); err != nil {
		return nil, fmt.Errorf("failed to indent json: %w", err)
	}
	return out.Bytes(), nil
}

// writeJSONValue appends v to buf. Raw values are copied as they are;
// anything else is encoded without HTML escaping.
func writeJSONValue(buf *bytes.Buffer, v any) error {
	if raw, ok := v.(json.RawMessage); ok {
		buf.Write(raw)
		return nil
	}

	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func jsonKind(first byte) string {
	switch first {
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// --- YAML Serializer ---

// YAMLSerializer handles manifests written as YAML (package.yaml and the like).
// It works on the node tree so untouched entries keep their comments.
type YAMLSerializer struct {
	// Indent is the number of spaces per nesting level.
	Indent int
}

// NewYAMLSerializer creates a new YAML serializer indenting with two spaces.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{Indent: 2}
}

// yamlEntry is the opaque value stored for a parsed YAML field.
type yamlEntry struct {
	key   *yaml.Node
	value *yaml.Node
}

func (s *YAMLSerializer) Parse(r io.Reader) (*core.Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty yaml document", core.ErrNotObject)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: found yaml %s", core.ErrNotObject, strings.TrimPrefix(root.ShortTag(), "!!"))
	}

	m := core.NewManifest()
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("invalid yaml: non-scalar key at line %d", k.Line)
		}
		m.Set(k.Value, yamlEntry{key: k, value: v})
	}
	return m, nil
}

func (s *YAMLSerializer) Serialize(m *core.Manifest) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	err := m.Each(func(key string, value any) error {
		if entry, ok := value.(yamlEntry); ok {
			root.Content = append(root.Content, entry.key, entry.value)
			return nil
		}

		var node yaml.Node
		if err := node.Encode(value); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		root.Content = append(root.Content, keyNode, &node)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(s.Indent)
	if err := encoder.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
