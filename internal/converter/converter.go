// Package converter turns a named DTO schema into a response template tree.
//
// A conversion runs in two steps:
//  1. The validation gate checks the output path, the entity name against
//     the allowlist, and that the schema describes an object.
//  2. The transformer maps the schema tree (see package transform).
//
// Rejected inputs never panic and never yield partial output; Create
// returns an error wrapping ErrRejected instead.
package converter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"responsefunc-generator/internal/diagnostic"
	"responsefunc-generator/internal/expr"
	"responsefunc-generator/internal/match"
	"responsefunc-generator/internal/schema"
	"responsefunc-generator/internal/transform"
)

// ErrRejected is wrapped by every error of the validation gate.
var ErrRejected = errors.New("conversion rejected")

// Options are the per-call options.
type Options struct {
	// ResponseFuncPath is the directory the template is written to.
	ResponseFuncPath string
}

// Output is the result of a successful conversion.
type Output struct {
	// Name is the entity name.
	Name string
	// Tree is the template tree: the schema with every leaf replaced by a
	// template expression.
	Tree *schema.Object
	// Path is the output directory from Options.
	Path string
	// Diagnostics lists omitted fields and other notes.
	Diagnostics diagnostic.Diagnostics
	// References lists the entities the tree imports, sorted.
	References []string
}

// Config holds converter settings.
type Config struct {
	// Registry is the entity allowlist; nil denies everything.
	Registry *Registry
	// Builder formats template expressions; nil selects the defaults.
	Builder *expr.Builder
	// Transform holds the transformer settings. Entity is filled per call.
	Transform transform.Config
	// Logger receives conversion logs; nil discards them.
	Logger *slog.Logger
	// DebugWriter receives a dump of every produced tree when set.
	DebugWriter io.Writer
}

// Converter validates and converts DTO schemas. It keeps no per-call state
// and may be shared.
type Converter struct {
	config Config
	logger *slog.Logger
}

// New creates a Converter.
func New(config Config) *Converter {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if config.Builder == nil {
		config.Builder = expr.MustDefault()
	}

	return &Converter{config: config, logger: logger}
}

// Validate reports whether the inputs pass the validation gate.
func (c *Converter) Validate(name string, raw any, opts Options) bool {
	_, err := c.validate(name, raw, opts)
	return err == nil
}

// validate runs every check of the gate and returns the normalized schema.
// Cyclic schemas are reported as schema.ErrCyclicSchema rather than a
// rejection.
func (c *Converter) validate(name string, raw any, opts Options) (*schema.Object, error) {
	if opts.ResponseFuncPath == "" {
		return nil, fmt.Errorf("%w: output path is empty", ErrRejected)
	}

	if name == "" {
		return nil, fmt.Errorf("%w: entity name is empty", ErrRejected)
	}

	if !c.config.Registry.Allowed(name) {
		err := fmt.Errorf("%w: entity %q is not allowed", ErrRejected, name)
		if s := match.Suggest(name, c.config.Registry.Names(), match.DefaultMinScore); len(s) > 0 {
			err = fmt.Errorf("%w (did you mean %q?)", err, s[0])
		}

		return nil, err
	}

	obj, err := schema.FromValue(raw)
	if err != nil {
		if errors.Is(err, schema.ErrCyclicSchema) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: schema is not an object: %w", ErrRejected, err)
	}

	return obj, nil
}

// Create converts the schema of entity name. The returned tree keeps the
// schema's keys in order with leaves replaced by template expressions.
func (c *Converter) Create(name string, raw any, opts Options) (*Output, error) {
	obj, err := c.validate(name, raw, opts)
	if err != nil {
		c.logger.Warn("conversion rejected", "entity", name, "error", err)
		return nil, err
	}

	cfg := c.config.Transform
	cfg.Entity = name

	tree, diags, err := transform.New(c.config.Builder, cfg).Transform(obj)
	if err != nil {
		c.logger.Error("conversion failed", "entity", name, "error", err)
		return nil, fmt.Errorf("converting %s: %w", name, err)
	}

	for _, d := range diags.All() {
		c.logger.Debug("diagnostic", "entity", name, "severity", d.Severity.String(), "detail", d.String())
	}

	c.logger.Info("converted schema",
		"entity", name,
		"fields", tree.Len(),
		"warnings", len(diags.Warnings),
	)

	if c.config.DebugWriter != nil {
		spew.Fdump(c.config.DebugWriter, tree)
	}

	return &Output{
		Name:        name,
		Tree:        tree,
		Path:        opts.ResponseFuncPath,
		Diagnostics: diags,
		References:  transform.References(obj),
	}, nil
}
