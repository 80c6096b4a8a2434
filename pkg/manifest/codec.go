package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a manifest
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from the file extension
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and normalizes a manifest document
func Parse(data []byte, format Format) (*Manifest, error) {
	var raw interface{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "Invalid manifest: cannot parse %s", format)
	}
	return Normalize(raw)
}

// Normalize turns a decoded document into a Manifest. The version must be 1
// and installs must be a list; anything else at the top level is kept in
// Extra.
func Normalize(raw interface{}) (*Manifest, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		obj = map[string]interface{}{}
	}

	if !isVersionOne(obj["version"]) {
		return nil, errors.Newf(errors.ErrManifestInvalid,
			"Unsupported manifest version: %v (expected %d)", obj["version"], Version)
	}

	list, ok := obj["installs"].([]interface{})
	if !ok {
		return nil, errors.New(errors.ErrManifestInvalid, `Invalid manifest: "installs" must be an array`)
	}

	m := New()
	for i, item := range list {
		entry, err := decodeEntry(item)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "Invalid manifest: installs[%d]", i)
		}
		m.Installs = append(m.Installs, entry)
	}

	for k, v := range obj {
		if k == "version" || k == "installs" {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]interface{})
		}
		m.Extra[k] = v
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func isVersionOne(v interface{}) bool {
	switch n := v.(type) {
	case float64:
		return n == Version
	case int:
		return n == Version
	case int64:
		return n == Version
	case uint64:
		return n == Version
	}
	return false
}

func decodeEntry(item interface{}) (InstallEntry, error) {
	var entry InstallEntry
	if _, ok := item.(map[string]interface{}); !ok {
		return entry, fmt.Errorf("entry must be an object, got %T", item)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &entry,
		TagName: "mapstructure",
	})
	if err != nil {
		return entry, err
	}
	if err := decoder.Decode(item); err != nil {
		return entry, err
	}
	if len(entry.Extra) == 0 {
		entry.Extra = nil
	}
	return entry, nil
}

// Marshal encodes m. JSON output is indented by two spaces, keeps version
// and installs first and ends with a newline.
func Marshal(m *Manifest, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(m)
	}

	compact, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalJSON writes version, installs, then extra fields in key order
func (m *Manifest) MarshalJSON() ([]byte, error) {
	installs := m.Installs
	if installs == nil {
		installs = []InstallEntry{}
	}
	fields := []field{{"version", m.Version}, {"installs", installs}}
	return marshalObject(append(fields, extraFields(m.Extra)...))
}

// MarshalJSON writes the known entry fields, then extra fields in key order
func (e InstallEntry) MarshalJSON() ([]byte, error) {
	var fields []field
	if e.ID != "" {
		fields = append(fields, field{"id", e.ID})
	}
	fields = append(fields, field{"source", e.Source}, field{"target", e.Target})
	if e.Kind != "" {
		fields = append(fields, field{"kind", e.Kind})
	}
	if e.Atomic != nil {
		fields = append(fields, field{"atomic", *e.Atomic})
	}
	return marshalObject(append(fields, extraFields(e.Extra)...))
}

type field struct {
	key   string
	value interface{}
}

func extraFields(extra map[string]interface{}) []field {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]field, 0, len(keys))
	for _, k := range keys {
		out = append(out, field{k, extra[k]})
	}
	return out
}

func marshalObject(fields []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
