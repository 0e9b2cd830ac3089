package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetValue retrieves a value from a Config by key. Unset keys are reported
// as not found.
func GetValue(cfg *Config, key string) (any, error) {
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	val, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("key %q not set", key)
	}
	return val, nil
}

// SetValue sets a value in a raw config map, coercing rawValue to a bool,
// int or float when it parses as one.
func SetValue(data map[string]any, key string, rawValue string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data[key] = coerceValue(rawValue)
	return nil
}

// UnsetValue removes key from a raw config map.
func UnsetValue(data map[string]any, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	delete(data, key)
	return nil
}

// FromRaw converts a raw config map into a Config, rejecting unknown keys
// and mistyped values.
func FromRaw(data map[string]any) (*Config, error) {
	b, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return Parse(b, false)
}

// Flatten returns the set fields of cfg keyed by their file key.
func Flatten(cfg *Config) (map[string]any, error) {
	return configToMap(cfg)
}

// Keys returns every valid config key, sorted.
func Keys() []string {
	keys := yamlKeys(reflect.TypeOf(Config{}))
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidateKey checks that key names a Config field.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if strings.Contains(key, ".") {
		return fmt.Errorf("key %q: config keys are not nested", key)
	}
	if !yamlKeys(reflect.TypeOf(Config{}))[key] {
		return fmt.Errorf("unknown key %q; valid keys: %s", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// configToMap marshals a Config to a map via YAML round-trip.
func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// coerceValue parses a string into bool, int, float64, or keeps it as string.
func coerceValue(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		// Only use float if it has a decimal point (avoid converting "3" to 3.0).
		if strings.Contains(s, ".") {
			return f
		}
	}
	return s
}

// yamlKeys extracts yaml tag names from a struct type.
func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			keys[name] = true
		}
	}
	return keys
}
