package fs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/pkgrewrite/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func rewriteJSON(t *testing.T, in string) string {
	t.Helper()
	s := NewJSONSerializer()
	m, err := s.Parse(strings.NewReader(in))
	require.NoError(t, err)
	core.DefaultRewrite().Apply(m)
	out, err := s.Serialize(m)
	require.NoError(t, err)
	return string(out)
}

func TestJSONSerializer_Rewrite(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "renames and drops files",
			in:   `{"name": "old-pkg", "version": "1.0.0", "files": ["dist/"]}`,
			want: "{\n  \"name\": \"sejong-buffer\",\n  \"version\": \"1.0.0\"\n}",
		},
		{
			name: "appends missing name",
			in:   `{"version": "2.0.0"}`,
			want: "{\n  \"version\": \"2.0.0\",\n  \"name\": \"sejong-buffer\"\n}",
		},
		{
			name: "empty object",
			in:   "{}\n",
			want: "{\n  \"name\": \"sejong-buffer\"\n}",
		},
		{
			name: "nested values pass through",
			in:   `{"a": {"b": [1, 2.50, {"c": null}]}, "e": [], "name": {"x": true}}`,
			want: `{
  "a": {
    "b": [
      1,
      2.50,
      {
        "c": null
      }
    ]
  },
  "e": [],
  "name": "sejong-buffer"
}`,
		},
		{
			name: "escapes are kept verbatim",
			in:   `{"description": "caf\u00e9 <wasm> & \"buffer\""}`,
			want: "{\n  \"description\": \"caf\\u00e9 <wasm> & \\\"buffer\\\"\",\n  \"name\": \"sejong-buffer\"\n}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rewriteJSON(t, tc.in)
			assert.Equal(t, tc.want, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestJSONSerializer_Idempotent(t *testing.T) {
	in := `{"name":"old","files":["pkg/"],"collaborators":["a"],"version":"0.1.0","module":"sejong_buffer.js"}`
	once := rewriteJSON(t, in)
	twice := rewriteJSON(t, once)
	assert.Equal(t, once, twice)
}

func TestJSONSerializer_DuplicateKeys(t *testing.T) {
	m, err := NewJSONSerializer().Parse(strings.NewReader(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, json.RawMessage("3"), v)
}

func TestJSONSerializer_AssignedStringsAreNotHTMLEscaped(t *testing.T) {
	m := core.NewManifest()
	m.Set("name", "a<b>&c")

	out, err := NewJSONSerializer().Serialize(m)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"a<b>&c\"\n}", string(out))
}

func TestJSONSerializer_Errors(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		notObject bool
	}{
		{name: "unquoted keys", in: `{name: 'old'}`},
		{name: "empty input", in: ``},
		{name: "trailing garbage", in: `{"a": 1} x`},
		{name: "array", in: `["a"]`, notObject: true},
		{name: "string", in: `"package"`, notObject: true},
		{name: "null", in: `null`, notObject: true},
		{name: "number", in: ` 42 `, notObject: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewJSONSerializer().Parse(strings.NewReader(tc.in))
			require.Error(t, err)
			if tc.notObject {
				assert.ErrorIs(t, err, core.ErrNotObject)
			} else {
				assert.Contains(t, err.Error(), "invalid json")
			}
		})
	}
}

const yamlManifest = `name: old-pkg
version: 1.0.0 # semver
files:
  - dist/
scripts:
  build: wasm-pack build
`

func TestYAMLSerializer_Rewrite(t *testing.T) {
	s := NewYAMLSerializer()
	m, err := s.Parse(strings.NewReader(yamlManifest))
	require.NoError(t, err)

	c := core.DefaultRewrite().Apply(m)
	assert.Equal(t, []string{"files"}, c.Dropped)

	out, err := s.Serialize(m)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "# semver")
	assert.NotContains(t, text, "files")
	assert.Less(t, strings.Index(text, "name:"), strings.Index(text, "version:"))
	assert.Less(t, strings.Index(text, "version:"), strings.Index(text, "scripts:"))
	assert.Contains(t, text, "\n  build: wasm-pack build")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "sejong-buffer", decoded["name"])
	assert.Equal(t, "1.0.0", decoded["version"])
	assert.Equal(t, map[string]any{"build": "wasm-pack build"}, decoded["scripts"])

	again, err := s.Parse(strings.NewReader(text))
	require.NoError(t, err)
	core.DefaultRewrite().Apply(again)
	out2, err := s.Serialize(again)
	require.NoError(t, err)
	assert.Equal(t, text, string(out2))
}

func TestYAMLSerializer_Errors(t *testing.T) {
	s := NewYAMLSerializer()

	_, err := s.Parse(strings.NewReader("- a\n- b\n"))
	assert.ErrorIs(t, err, core.ErrNotObject)

	_, err = s.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, core.ErrNotObject)

	_, err = s.Parse(strings.NewReader("name: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid yaml")
}

func TestDefaultSerializers(t *testing.T) {
	s := DefaultSerializers()
	assert.IsType(t, &JSONSerializer{}, s[".json"])
	assert.IsType(t, &YAMLSerializer{}, s[".yaml"])
	assert.IsType(t, &YAMLSerializer{}, s[".yml"])
}
