package gen

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"responsefunc-generator/internal/converter"
)

// ErrReferenceCycle is returned when entities of one batch reference each
// other in a loop.
var ErrReferenceCycle = errors.New("reference cycle")

// DefaultIndent is the body indentation.
const DefaultIndent = "  "

// DefaultOutputExt is the template file extension.
const DefaultOutputExt = ".ejs"

const fileTemplate = `<%# Code generated by responsefunc-generator. DO NOT EDIT. %>
{{range .Imports}}<%# import {{.}} %>
{{end}}{{.Body}}
`

// GeneratorConfig configures template file emission.
type GeneratorConfig struct {
	// OutputExt is appended to the entity name to form the filename.
	OutputExt string
	// Indent is the body indentation; empty renders compact output.
	Indent string
}

// GeneratedFile is one emitted template file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the base name of the file.
	Filename string
	// Content is the file content.
	Content []byte
}

// Generator emits template files.
type Generator struct {
	config GeneratorConfig
	file   *template.Template
}

type fileData struct {
	Imports []string
	Body    string
}

// NewGenerator creates a Generator. A zero config selects the defaults.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.OutputExt == "" {
		config.OutputExt = DefaultOutputExt
	}

	return &Generator{
		config: config,
		file:   template.Must(template.New("file").Parse(fileTemplate)),
	}
}

// Generate emits the template file for one converted entity.
func (g *Generator) Generate(out *converter.Output) (GeneratedFile, error) {
	if out == nil || out.Tree == nil {
		return GeneratedFile{}, errors.New("nothing to generate")
	}

	if out.Name == "" || strings.ContainsAny(out.Name, `/\`) || out.Name == "." || out.Name == ".." {
		return GeneratedFile{}, fmt.Errorf("invalid entity name %q for a filename", out.Name)
	}

	body, err := Render(out.Tree, g.config.Indent)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering %s: %w", out.Name, err)
	}

	var buf bytes.Buffer

	err = g.file.Execute(&buf, fileData{Imports: out.References, Body: string(body)})
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("executing file template for %s: %w", out.Name, err)
	}

	return GeneratedFile{
		Dir:      out.Path,
		Filename: out.Name + g.config.OutputExt,
		Content:  buf.Bytes(),
	}, nil
}

// GenerateAll emits files for a batch of entities. Entities referenced by
// other entities of the batch are emitted first; references to entities
// outside the batch are not checked.
func (g *Generator) GenerateAll(outs []*converter.Output) ([]GeneratedFile, error) {
	index := make(map[string]int, len(outs))

	for i, out := range outs {
		if out == nil {
			return nil, fmt.Errorf("output %d is nil", i)
		}

		if _, dup := index[out.Name]; dup {
			return nil, fmt.Errorf("entity %s is listed twice", out.Name)
		}

		index[out.Name] = i
	}

	order, stuck, err := orderByDependencies(len(outs), func(i int) []int {
		var deps []int

		for _, ref := range outs[i].References {
			if j, ok := index[ref]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		return nil, err
	}

	if len(stuck) > 0 {
		names := make([]string, len(stuck))
		for k, i := range stuck {
			names[k] = outs[i].Name
		}

		return nil, fmt.Errorf("%w between %s", ErrReferenceCycle, strings.Join(names, ", "))
	}

	files := make([]GeneratedFile, 0, len(order))

	for _, i := range order {
		f, err := g.Generate(outs[i])
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	return files, nil
}
