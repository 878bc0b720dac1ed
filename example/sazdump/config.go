package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/deepch/ebml/format/saz"
)

type config struct {
	Kind      string
	Index     int
	IndexPage string
	JSON      bool
	Verbose   bool
}

type fileConfig struct {
	Kind      string `toml:"kind"`
	Index     int    `toml:"index"`
	IndexPage string `toml:"index_page"`
	JSON      bool   `toml:"json"`
	Verbose   bool   `toml:"verbose"`
}

func defaultConfig() config {
	return config{
		Kind:      string(saz.KindVideo),
		IndexPage: saz.IndexPage,
	}
}

// loadConfig overlays the keys defined in the TOML file at path onto cfg.
func loadConfig(path string, cfg config) (config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("kind") {
		cfg.Kind = strings.TrimSpace(raw.Kind)
	}
	if meta.IsDefined("index") {
		cfg.Index = raw.Index
	}
	if meta.IsDefined("index_page") {
		cfg.IndexPage = strings.TrimSpace(raw.IndexPage)
	}
	if meta.IsDefined("json") {
		cfg.JSON = raw.JSON
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}

	return cfg, nil
}

func (c config) validate() (saz.Kind, error) {
	kind, err := saz.ParseKind(c.Kind)
	if err != nil {
		return "", err
	}
	if c.Index < 0 {
		return "", fmt.Errorf("index must be >= 0, got %d", c.Index)
	}
	if c.IndexPage == "" {
		return "", fmt.Errorf("index page must not be empty")
	}
	return kind, nil
}
