// Package config loads the optional buildstamp configuration file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/buildstamp/buildstamp/internal/expand"
)

//go:embed data/config.json
var configSchema string

// DefaultPath is probed when no config path is given.
const DefaultPath = ".buildstamp.yaml"

// Config is the file-level generator configuration. Flags override any
// value set here.
type Config struct {
	Output     string   `yaml:"output"`
	Package    string   `yaml:"package"`
	Prefix     string   `yaml:"prefix"`
	Operations []string `yaml:"operations"`
}

// Load reads configuration from file. Empty path returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, nil
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := ValidateOperations(cfg.Operations); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateOperations rejects names absent from the expansion registry.
func ValidateOperations(names []string) error {
	for _, name := range names {
		if _, ok := expand.Lookup(name); !ok {
			return fmt.Errorf("config: unknown operation %q (known: %s)",
				name, strings.Join(expand.Names(), ", "))
		}
	}
	return nil
}

func validateSchema(doc map[string]interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("config schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return fmt.Errorf("config: invalid configuration: %s", strings.Join(messages, "; "))
}
