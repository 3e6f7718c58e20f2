package nftmeta

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a YAML document into T. The document is normalised to the
// JSON data model first and then goes through Decode, so records behave the
// same regardless of the input format. YAML timestamps become RFC3339 strings.
func DecodeYAML[T any](data []byte, opts ...ParseOpt) (T, error) {
	var zero T
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return zero, Root().Issues(CodeTooBig, "document exceeds max bytes", "max", opt.MaxBytes)
	}
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return zero, Issues{Root().Issue(CodeParseError, err.Error()).WithCause(err)}
	}
	js, err := json.Marshal(yamlNormalizeValue(node))
	if err != nil {
		return zero, fmt.Errorf("nftmeta: convert yaml to json: %w", err)
	}
	// yaml.v3 already rejects duplicate keys and the byte budget was checked
	// against the YAML source.
	opt.Strictness.OnDuplicateKey = Ignore
	opt.MaxBytes = 0
	return Decode[T](js, opt)
}

// EncodeYAML renders v as block-style YAML, keeping the JSON key order.
func EncodeYAML(v any) ([]byte, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("nftmeta: convert json to yaml: %w", err)
	}
	clearStyle(&doc)
	return yaml.Marshal(&doc)
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}
