package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Checks property names, enums and numeric ranges of every section.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to a generic map, the way a validator sees it
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root, err := resolve(&schema, &schema)
	if err != nil {
		return err
	}
	if err := checkObject(&schema, root, configMap, ""); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}

// resolve follows a local "#/$defs/Name" reference
func resolve(doc, s *jsonschema.Schema) (*jsonschema.Schema, error) {
	if s.Ref == "" {
		return s, nil
	}
	name := strings.TrimPrefix(s.Ref, "#/$defs/")
	def, ok := doc.Definitions[name]
	if !ok {
		return nil, fmt.Errorf("schema reference %q not found", s.Ref)
	}
	return def, nil
}

func checkObject(doc, s *jsonschema.Schema, value map[string]any, path string) error {
	if s.Properties == nil {
		return nil
	}

	keys := make([]string, 0, len(value))
	for k := range value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prop, ok := s.Properties.Get(k)
		if !ok {
			return fmt.Errorf("%s%s is not a known property", path, k)
		}
		prop, err := resolve(doc, prop)
		if err != nil {
			return err
		}
		if err := checkValue(doc, prop, value[k], path+k); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(doc, s *jsonschema.Schema, v any, path string) error {
	switch val := v.(type) {
	case map[string]any:
		return checkObject(doc, s, val, path+".")
	case float64:
		if s.Minimum != "" {
			if lim, err := s.Minimum.Float64(); err == nil && val < lim {
				return fmt.Errorf("%s must be at least %v, got %v", path, lim, val)
			}
		}
		if s.Maximum != "" {
			if lim, err := s.Maximum.Float64(); err == nil && val > lim {
				return fmt.Errorf("%s must be at most %v, got %v", path, lim, val)
			}
		}
	case string:
		if len(s.Enum) == 0 {
			return nil
		}
		for _, e := range s.Enum {
			if e == val {
				return nil
			}
		}
		return fmt.Errorf("%s value %q is not one of %v", path, val, s.Enum)
	}
	return nil
}
