// Package config loads generator settings from YAML.
//
// Example:
//
//	version: "1"
//	entities: [AddressWsDTO, CountryWsDTO]
//	omit: drop
//	null_policy: object
//	max_depth: 64
//	output_ext: .ejs
//	templates:
//	  faker: "<%-JSON.stringify(faker.{{.Path}}({{.Args}}));%>"
//	  reference: "<%-{{.Prefix}}{{.Name}}();%>"
//	  reference_prefix: imported
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"responsefunc-generator/internal/expr"
	"responsefunc-generator/internal/gen"
	"responsefunc-generator/internal/transform"
)

// Config is the root of a configuration file.
type Config struct {
	Version string `yaml:"version"`
	// Entities is the allowlist of DTO names that may be converted. An
	// empty list denies every entity.
	Entities []string `yaml:"entities"`
	// Omit is the omit policy name: drop, null or error.
	Omit string `yaml:"omit,omitempty"`
	// Null is the null policy name: object or passthrough.
	Null      string    `yaml:"null_policy,omitempty"`
	MaxDepth  int       `yaml:"max_depth,omitempty"`
	OutputExt string    `yaml:"output_ext,omitempty"`
	Templates Templates `yaml:"templates,omitempty"`
}

// Templates holds the expression wrappers.
type Templates struct {
	Faker           string `yaml:"faker,omitempty"`
	Reference       string `yaml:"reference,omitempty"`
	ReferencePrefix string `yaml:"reference_prefix,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses YAML data into a Config and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.OutputExt == "" {
		cfg.OutputExt = gen.DefaultOutputExt
	}

	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = transform.DefaultMaxDepth
	}

	if cfg.Templates.Faker == "" {
		cfg.Templates.Faker = expr.DefaultFakerTemplate
	}

	if cfg.Templates.Reference == "" {
		cfg.Templates.Reference = expr.DefaultReferenceTemplate
	}

	if cfg.Templates.ReferencePrefix == "" {
		cfg.Templates.ReferencePrefix = expr.DefaultReferencePrefix
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}

	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}

	if !strings.HasPrefix(c.OutputExt, ".") {
		errs = append(errs, fmt.Errorf("output_ext must start with a dot, got %q", c.OutputExt))
	}

	for i, name := range c.Entities {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("entities[%d] is empty", i))
		}
	}

	if _, err := transform.ParseOmitPolicy(c.Omit); err != nil {
		errs = append(errs, err)
	}

	if _, err := transform.ParseNullPolicy(c.Null); err != nil {
		errs = append(errs, err)
	}

	if _, err := expr.NewBuilder(c.ExprConfig()); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// ExprConfig returns the expression builder settings.
func (c *Config) ExprConfig() expr.Config {
	return expr.Config{
		Faker:           c.Templates.Faker,
		Reference:       c.Templates.Reference,
		ReferencePrefix: c.Templates.ReferencePrefix,
	}
}

// TransformConfig returns the transformer settings for entity. Policies
// are assumed valid (see Validate).
func (c *Config) TransformConfig(entity string) transform.Config {
	omit, _ := transform.ParseOmitPolicy(c.Omit)
	null, _ := transform.ParseNullPolicy(c.Null)

	return transform.Config{
		Entity:   entity,
		Omit:     omit,
		Null:     null,
		MaxDepth: c.MaxDepth,
	}
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}
