package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/vmihailenco/msgpack.v2"
	"gopkg.in/yaml.v3"

	"github.com/Roybie/tigr/pkg/ast"
)

// Format names a serialization used for trees and token streams.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatMsgpack}

// ParseFormat accepts a format name, case-insensitively. "yml" and "mp"
// are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown format %q", name)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatJSON
}

// LoadTree reads a serialized syntax tree from disk. The format follows the
// file extension.
func LoadTree(path string) (ast.Expression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tree: read %s: %w", path, err)
	}
	expr, err := DecodeTree(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("tree: %s: %w", path, err)
	}
	log.Debugf("[%s]: loaded %s tree from %s", TAG, expr.NodeType(), path)
	return expr, nil
}

// DecodeTree decodes a serialized syntax tree.
func DecodeTree(data []byte, format Format) (ast.Expression, error) {
	raw, err := decodeGeneric(data, format)
	if err != nil {
		return nil, err
	}
	raw, err = normalize(raw)
	if err != nil {
		return nil, err
	}
	return ast.DecodeExpression(raw)
}

// EncodeTree writes expr in the given format. All formats share the field
// names of the JSON schema.
func EncodeTree(w io.Writer, expr ast.Expression, format Format) error {
	data, err := json.Marshal(expr)
	if err != nil {
		return fmt.Errorf("tree: marshal: %w", err)
	}
	if format == FormatJSON {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(w)
		return err
	}
	generic, err := decodeGeneric(data, FormatJSON)
	if err != nil {
		return err
	}
	return encodeGeneric(w, plainNumbers(generic), format)
}

func decodeGeneric(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return raw, nil
}

func encodeGeneric(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// normalize turns the interface-keyed maps some decoders produce into
// string-keyed ones, recursively.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case map[any]any:
		m, err := stringKeys(val)
		if err != nil {
			return nil, err
		}
		return normalize(m)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}

// plainNumbers replaces json.Number values with int64 or float64 so other
// encoders write them as numbers.
func plainNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, item := range val {
			val[k] = plainNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = plainNumbers(item)
		}
		return val
	default:
		return v
	}
}
