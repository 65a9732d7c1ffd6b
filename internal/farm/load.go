package farm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals // Derived once from struct tags.
var (
	knownKeys     map[string]bool
	knownKeysOnce sync.Once
)

// parameterKeys returns the set of file keys accepted by Load.
func parameterKeys() map[string]bool {
	knownKeysOnce.Do(func() {
		t := reflect.TypeOf(Parameters{})
		knownKeys = make(map[string]bool, t.NumField())
		for i := range t.NumField() {
			tag := t.Field(i).Tag.Get("json")
			name, _, _ := strings.Cut(tag, ",")
			if name != "" && name != "-" {
				knownKeys[name] = true
			}
		}
	})
	return knownKeys
}

// Load reads a JSON or YAML parameter file and overlays it onto base. Only
// keys present in the file change; everything else keeps its base value.
// The format is chosen by file extension.
func Load(path string, base Parameters) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading parameter file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return OverlayJSON(data, base)
	case ".yaml", ".yml":
		return OverlayYAML(data, base)
	default:
		return base, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// OverlayJSON applies a JSON object of parameter overrides onto base.
func OverlayJSON(data []byte, base Parameters) (Parameters, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return base, fmt.Errorf("parsing parameter JSON: %w", err)
	}
	if err := checkKeys(mapKeys(raw)); err != nil {
		return base, err
	}

	out := base
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&out); err != nil {
		return base, fmt.Errorf("decoding parameter JSON: %w", err)
	}
	return out, nil
}

// OverlayYAML applies a YAML mapping of parameter overrides onto base.
func OverlayYAML(data []byte, base Parameters) (Parameters, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return base, fmt.Errorf("parsing parameter YAML: %w", err)
	}
	if err := checkKeys(mapKeys(raw)); err != nil {
		return base, err
	}

	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("decoding parameter YAML: %w", err)
	}
	return out, nil
}

func checkKeys(keys []string) error {
	known := parameterKeys()
	var unknown []string
	for _, k := range keys {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: %s", ErrUnknownParameter, strings.Join(unknown, ", "))
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
