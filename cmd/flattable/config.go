package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings that may come from a YAML file or from flags.
type Config struct {
	Format   string `yaml:"format"`
	Sortable bool   `yaml:"sortable"`
	HTML     bool   `yaml:"html"`
	Border   string `yaml:"border"`
	Wrap     int    `yaml:"wrap"`
}

// LoadConfig reads a YAML config file. Unknown keys are an error and an
// empty file is the zero Config.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Override returns c with every setting o sets. Flags can only switch a
// boolean on.
func (c Config) Override(o Config) Config {
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Border != "" {
		c.Border = o.Border
	}
	if o.Wrap != 0 {
		c.Wrap = o.Wrap
	}
	c.Sortable = c.Sortable || o.Sortable
	c.HTML = c.HTML || o.HTML
	return c
}
