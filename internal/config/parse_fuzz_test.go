package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func FuzzConfigParse(f *testing.F) {
	f.Add([]byte("format: json\nmax_tokens: 50\n"), false)
	f.Add([]byte(""), false)
	f.Add([]byte("---"), false)
	f.Add([]byte("provider = \"groq\"\n"), true)
	f.Add([]byte("{invalid"), false)

	f.Fuzz(func(t *testing.T, data []byte, asTOML bool) {
		cfg, err := Parse(data, asTOML)
		if err != nil {
			return
		}
		// Round-trip: if parse succeeded, marshal and validate should not panic.
		yaml.Marshal(cfg) //nolint:errcheck,gosec // fuzz: testing crash-freedom
		_ = Validate(cfg)
	})
}
