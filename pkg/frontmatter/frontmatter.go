package frontmatter

import (
	"bytes"
	"io"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/pkg/fileutil"
)

// Sentinel errors for frontmatter extraction.
var (
	// ErrNoFrontmatter is returned when the document has no delimited block.
	ErrNoFrontmatter = errors.New("no frontmatter found")

	// ErrInvalidFrontmatter is returned when the block cannot be decoded.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
)

// Format is the encoding of a frontmatter block.
type Format int

const (
	// FormatYAML is a block delimited by "---".
	FormatYAML Format = iota
	// FormatTOML is a block delimited by "+++".
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// Limits on YAML alias expansion. maxYAMLNodes caps the total number of nodes
// visited while expanding aliases, which bounds fan-out as well as depth.
const (
	maxAliasDepth = 64
	maxYAMLNodes  = 100_000
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Split locates the frontmatter block in content and returns its format, the
// raw block between the delimiters and the body following the closing
// delimiter.
func Split(content []byte) (Format, []byte, []byte, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	content = bytes.TrimLeft(content, " \t\r\n")

	first, rest := cutLine(content)
	var (
		format Format
		delim  string
	)
	switch string(bytes.TrimRight(first, " \t")) {
	case "---":
		format, delim = FormatYAML, "---"
	case "+++":
		format, delim = FormatTOML, "+++"
	default:
		return 0, nil, nil, ErrNoFrontmatter
	}

	blockStart := len(content) - len(rest)
	remaining := rest
	for len(remaining) > 0 {
		lineStart := len(content) - len(remaining)
		line, next := cutLine(remaining)
		if string(bytes.TrimRight(line, " \t")) == delim {
			return format, content[blockStart:lineStart], next, nil
		}
		remaining = next
	}

	return 0, nil, nil, ErrNoFrontmatter
}

// Extract decodes the frontmatter block of content into a mapping.
// An empty block yields a nil map and no error.
func Extract(content []byte) (map[string]any, error) {
	format, block, _, err := Split(content)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatTOML:
		return decodeTOML(block)
	default:
		return decodeYAML(block)
	}
}

// ExtractReader reads r fully and extracts its frontmatter.
func ExtractReader(r io.Reader) (map[string]any, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading document")
	}
	return Extract(content)
}

// ExtractFile reads the file at path, bounded by fileutil.MaxFileSize, and
// extracts its frontmatter.
func ExtractFile(path string) (map[string]any, error) {
	content, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}
	return Extract(content)
}

// cutLine splits b at the first newline, dropping the newline and a
// preceding carriage return from the line.
func cutLine(b []byte) (line, rest []byte) {
	line, rest, found := bytes.Cut(b, []byte("\n"))
	if !found {
		rest = nil
	}
	return bytes.TrimSuffix(line, []byte("\r")), rest
}

func decodeYAML(block []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, errors.Wrapf(ErrInvalidFrontmatter, "yaml: %v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Wrap(ErrInvalidFrontmatter, "yaml: top level must be a mapping")
	}

	d := &yamlDecoder{}
	v, err := d.value(root, 0)
	if err != nil {
		return nil, err
	}
	m, _ := v.(map[string]any)
	return m, nil
}

// yamlDecoder converts nodes to Go values, keeping timestamps as time.Time.
type yamlDecoder struct {
	nodes int
}

func (d *yamlDecoder) value(n *yaml.Node, depth int) (any, error) {
	if depth > maxAliasDepth {
		return nil, errors.Wrap(ErrInvalidFrontmatter, "yaml: nesting too deep")
	}
	d.nodes++
	if d.nodes > maxYAMLNodes {
		return nil, errors.Wrap(ErrInvalidFrontmatter, "yaml: document expands to too many nodes")
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0], depth+1)
	case yaml.AliasNode:
		return d.value(n.Alias, depth+1)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.value(c, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return d.mapping(n, depth)
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, errors.Wrapf(ErrInvalidFrontmatter, "yaml: unexpected node kind %d", n.Kind)
	}
}

func (d *yamlDecoder) mapping(n *yaml.Node, depth int) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	var merged []map[string]any

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			val, err := d.value(v, depth+1)
			if err != nil {
				return nil, err
			}
			switch src := val.(type) {
			case map[string]any:
				merged = append(merged, src)
			case []any:
				for _, item := range src {
					if m, ok := item.(map[string]any); ok {
						merged = append(merged, m)
					}
				}
			}
			continue
		}

		val, err := d.value(v, depth+1)
		if err != nil {
			return nil, err
		}
		out[k.Value] = val
	}

	// Explicit keys win over merged ones; earlier merge sources win over later.
	for _, src := range merged {
		for key, val := range src {
			if _, exists := out[key]; !exists {
				out[key] = val
			}
		}
	}
	return out, nil
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return t, nil
		}
		return n.Value, nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, errors.Wrapf(ErrInvalidFrontmatter, "yaml: line %d: %v", n.Line, err)
	}
	return v, nil
}

func decodeTOML(block []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(block, &m); err != nil {
		return nil, errors.Wrapf(ErrInvalidFrontmatter, "toml: %v", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	for k, v := range m {
		m[k] = normalizeTOML(v)
	}
	return m, nil
}

// normalizeTOML converts TOML local dates and date-times to time.Time.
func normalizeTOML(v any) any {
	switch val := v.(type) {
	case toml.LocalDate:
		return val.AsTime(time.UTC)
	case toml.LocalDateTime:
		return val.AsTime(time.UTC)
	case map[string]any:
		for k, inner := range val {
			val[k] = normalizeTOML(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = normalizeTOML(inner)
		}
		return val
	default:
		return v
	}
}
