package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the project config from dir, preferring FileName over
// TOMLFileName. It returns the path that was read, or "" with a zero-value
// Config when neither file exists.
func Load(dir string) (*Config, string, error) {
	for _, name := range []string{FileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		cfg, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return &Config{}, "", nil
}

// Sources records which files contributed to a merged Config. Empty fields
// mean the file was absent.
type Sources struct {
	Global  string
	Project string
}

// LoadAll reads the global config and the project config in dir and merges
// them, project over global.
func LoadAll(dir string) (*Config, Sources, error) {
	var src Sources
	global, path, err := loadGlobal()
	if err != nil {
		return nil, src, fmt.Errorf("loading global config: %w", err)
	}
	src.Global = path

	project, path, err := Load(dir)
	if err != nil {
		return nil, src, fmt.Errorf("loading project config: %w", err)
	}
	src.Project = path
	return Merge(global, project), src, nil
}

// LoadFile reads a single config file. Files ending in .toml are decoded as
// TOML, anything else as YAML. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, isTOML(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config file contents.
func Parse(data []byte, asTOML bool) (*Config, error) {
	var cfg Config
	if asTOML {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Write marshals the config to YAML and writes it to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// LoadRaw reads a config file as a generic map, preserving keys that are
// not set. A missing file yields an empty map.
func LoadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]any), nil
		}
		return nil, err
	}

	m := make(map[string]any)
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m, nil
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// WriteFile writes a raw config map to path in the format its extension
// implies, creating the parent directory when needed.
func WriteFile(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	var buf bytes.Buffer
	if isTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(data); err != nil {
			return err
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
