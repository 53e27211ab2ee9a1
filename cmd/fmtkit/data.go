package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/randalmurphal/fmtkit/settings"
)

// loadData decodes a YAML, TOML or JSON file into a generic value used as
// the first template argument.
func loadData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	var data any
	if filepath.Ext(path) == ".toml" {
		// TOML documents are always tables.
		m := map[string]any{}
		if err := settings.Decode(raw, ".toml", &m); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return m, nil
	}
	if err := settings.Decode(raw, filepath.Ext(path), &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return data, nil
}

// templateArgs builds the argument list: the data document first when
// given, then the positional strings.
func templateArgs(dataPath string, positional []string) ([]any, error) {
	args := make([]any, 0, len(positional)+1)
	if dataPath != "" {
		data, err := loadData(dataPath)
		if err != nil {
			return nil, err
		}
		args = append(args, data)
	}
	for _, p := range positional {
		args = append(args, p)
	}
	return args, nil
}
