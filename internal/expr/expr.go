// Package expr builds the template expressions that replace schema leaves.
//
// Two shapes exist: a fake-generator call that serializes the generated
// value as JSON, and a call to the render function of another imported
// template. Both wrappers are Go text/template strings so the target
// templating engine can be swapped; the defaults emit EJS.
package expr

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"responsefunc-generator/internal/classify"
)

// Default wrappers (EJS, faker.js).
const (
	DefaultFakerTemplate     = "<%-JSON.stringify(faker.{{.Path}}({{.Args}}));%>"
	DefaultReferenceTemplate = "<%-{{.Prefix}}{{.Name}}();%>"
	DefaultReferencePrefix   = "imported"
)

// RefPrefix marks a schema leaf as a reference to another template.
const RefPrefix = "$ref-"

// Expression is a rendered template expression. Renderers write it
// verbatim instead of quoting it as a JSON string.
type Expression string

// Config holds the wrapper templates.
type Config struct {
	// Faker wraps a generator call; fields: .Path, .Args.
	Faker string
	// Reference wraps a nested template call; fields: .Prefix, .Name.
	Reference string
	// ReferencePrefix is prepended to referenced template names.
	ReferencePrefix string
}

// DefaultConfig returns the EJS wrappers.
func DefaultConfig() Config {
	return Config{
		Faker:           DefaultFakerTemplate,
		Reference:       DefaultReferenceTemplate,
		ReferencePrefix: DefaultReferencePrefix,
	}
}

type fakerData struct {
	Path string
	Args string
}

type referenceData struct {
	Prefix string
	Name   string
}

// Builder formats template expressions.
type Builder struct {
	faker     *template.Template
	reference *template.Template
	prefix    string
}

// Sample values the wrappers are checked against besides the zero values.
var (
	sampleFaker     = fakerData{Path: "name.firstName", Args: `"sample"`}
	sampleReference = referenceData{Prefix: DefaultReferencePrefix, Name: "SampleWsDTO"}
)

// NewBuilder parses the wrapper templates and checks that they execute
// against empty and sample fields. Empty templates fall back to the
// defaults.
func NewBuilder(cfg Config) (*Builder, error) {
	if cfg.Faker == "" {
		cfg.Faker = DefaultFakerTemplate
	}

	if cfg.Reference == "" {
		cfg.Reference = DefaultReferenceTemplate
	}

	faker, err := parseWrapper("faker", cfg.Faker, fakerData{}, sampleFaker)
	if err != nil {
		return nil, err
	}

	reference, err := parseWrapper("reference", cfg.Reference, referenceData{}, sampleReference)
	if err != nil {
		return nil, err
	}

	return &Builder{faker: faker, reference: reference, prefix: cfg.ReferencePrefix}, nil
}

func parseWrapper(name, text string, checks ...any) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}

	for _, data := range checks {
		if err := tmpl.Execute(&bytes.Buffer{}, data); err != nil {
			return nil, fmt.Errorf("checking %s template: %w", name, err)
		}
	}

	return tmpl, nil
}

// MustDefault returns a builder with the default wrappers.
func MustDefault() *Builder {
	b, err := NewBuilder(DefaultConfig())
	if err != nil {
		panic(err)
	}

	return b
}

// Faker wraps a call of the generator at path with the literal args.
func (b *Builder) Faker(path, args string) (Expression, error) {
	return execute(b.faker, fakerData{Path: path, Args: args})
}

// Generator renders a classified generator. Literal generators are returned
// as-is.
func (b *Builder) Generator(g classify.Generator) (Expression, error) {
	if g.IsLiteral() {
		return Expression(g.Literal), nil
	}

	return b.Faker(g.Path, g.Args)
}

// Reference wraps a call of the render function of the named template.
func (b *Builder) Reference(name string) (Expression, error) {
	return execute(b.reference, referenceData{Prefix: b.prefix, Name: name})
}

// ReferenceName extracts the template name from a reference marker.
func ReferenceName(marker string) (string, bool) {
	if !strings.HasPrefix(marker, RefPrefix) {
		return "", false
	}

	return strings.TrimPrefix(marker, RefPrefix), true
}

func execute(tmpl *template.Template, data any) (Expression, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}

	return Expression(buf.String()), nil
}
