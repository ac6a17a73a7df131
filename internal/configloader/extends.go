package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint/rules"
)

// loadConfigFile loads a single configuration file (JSON, YAML, or TOML,
// detected by extension) and resolves its `extends` chain and `preset`
// reference before returning. The returned config has Extends and Preset
// already folded in, at the precedence described in §4.4: extends chain,
// then preset, then the file's own settings.
func loadConfigFile(path string) (*config.Config, error) {
	return resolveConfigFile(path, nil)
}

// resolveConfigFile loads path and recursively resolves its extends chain,
// detecting cycles via visited (the set of absolute paths already in the
// chain being resolved).
func resolveConfigFile(path string, visited []string) (*config.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	for _, v := range visited {
		if v == absPath {
			chain := append(append([]string{}, visited...), absPath)
			return nil, &config.ConfigCycle{Chain: chain}
		}
	}
	visited = append(visited, absPath)

	cfg, err := loadConfigFileRaw(path)
	if err != nil {
		return nil, err
	}

	base := config.NewConfig()
	dir := filepath.Dir(path)

	for _, ext := range cfg.Extends {
		extPath := ext
		if !filepath.IsAbs(extPath) {
			extPath = filepath.Join(dir, extPath)
		}
		extCfg, err := resolveConfigFile(extPath, visited)
		if err != nil {
			return nil, fmt.Errorf("extends %q: %w", ext, err)
		}
		base = merge(base, extCfg)
	}

	if cfg.Preset != "" {
		pack := rules.PackByName(cfg.Preset)
		if pack == nil {
			return nil, fmt.Errorf("config %s: unknown preset %q", path, cfg.Preset)
		}
		base = merge(base, &config.Config{Rules: pack.Rules})
	}

	return merge(base, cfg), nil
}

// loadConfigFileRaw reads and parses a configuration file without resolving
// extends/preset, dispatching on file extension: .json/.jsonc via
// encoding/json, .toml via go-toml, and everything else via YAML (the
// teacher's default dialect, also accepting .yml/.yaml explicitly).
func loadConfigFileRaw(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &config.Config{}

	switch {
	case IsJSONConfig(path):
		if err := json.Unmarshal(content, cfg); err != nil {
			return nil, &config.ConfigParseError{Path: path, Err: err}
		}
	case filepath.Ext(path) == ".toml":
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, &config.ConfigParseError{Path: path, Err: err}
		}
	default:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, &config.ConfigParseError{Path: path, Err: err}
		}
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}

	return cfg, nil
}
