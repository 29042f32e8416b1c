package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// wordClassConfig is the optional on-disk config feedcat accepts via
// --config: a set of extra codepoints selection.Config.IsWordChar
// should treat as word characters, beyond the built-in
// alphanumeric+underscore default. This is ambient CLI plumbing for
// the example binary, not a core config parser (core config-file
// parsing remains a non-goal per spec.md).
type wordClassConfig struct {
	ExtraWordChars string `yaml:"extra_word_chars"`
}

func loadWordClassConfig(path string) (wordClassConfig, error) {
	var cfg wordClassConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
