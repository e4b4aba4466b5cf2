package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"responsefunc-generator/internal/config"
	"responsefunc-generator/internal/converter"
	"responsefunc-generator/internal/expr"
	"responsefunc-generator/internal/gen"
	"responsefunc-generator/internal/schema"
)

type generateFlags struct {
	name       string
	schemas    []string
	out        string
	configPath string
	allow      []string
	omit       string
	null       string
	ext        string
	indent     int
	dump       bool
	dryRun     bool
	printCfg   bool
	color      string
	verbose    bool
}

func runGenerate(args []string, stdout, stderr io.Writer) error {
	var f generateFlags

	fs := newFlagSet("generate", stderr)
	fs.StringVar(&f.name, "name", "", "entity name (default: schema file name without extension; single schema only)")
	fs.StringArrayVarP(&f.schemas, "schema", "s", nil, "schema file (.json, .jsonc, .yaml); repeatable")
	fs.StringVarP(&f.out, "out", "o", "", "output directory for template files")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	fs.StringSliceVar(&f.allow, "allow", nil, "entity names to allow in addition to the config")
	fs.StringVar(&f.omit, "omit", "", "omit policy: drop, null or error (overrides config)")
	fs.StringVar(&f.null, "null", "", "null policy: object or passthrough (overrides config)")
	fs.StringVar(&f.ext, "ext", "", "template file extension (overrides config)")
	fs.IntVar(&f.indent, "indent", 2, "body indentation in spaces; 0 for compact output")
	fs.BoolVar(&f.dump, "dump", false, "dump every converted tree to stderr")
	fs.BoolVar(&f.printCfg, "print-config", false, "print the effective configuration as YAML and exit")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print templates to stdout instead of writing them")
	fs.StringVar(&f.color, "color", string(colorAuto), "highlight --dry-run output: auto, always or never")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log diagnostics")

	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if fs.NArg() > 0 {
		return usageErrorf("unexpected argument: %s", fs.Arg(0))
	}

	if f.printCfg {
		cfg, err := loadConfig(&f)
		if err != nil {
			return err
		}

		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}

		_, err = stdout.Write(data)

		return err
	}

	if len(f.schemas) == 0 {
		return usageErrorf("--schema is required")
	}

	if f.name != "" && len(f.schemas) > 1 {
		return usageErrorf("--name needs exactly one --schema")
	}

	if f.indent < 0 {
		return usageErrorf("--indent must not be negative")
	}

	color, err := parseColorMode(f.color)
	if err != nil {
		return &usageError{err: err}
	}

	cfg, err := loadConfig(&f)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, f.verbose).With("command", "generate")

	builder, err := expr.NewBuilder(cfg.ExprConfig())
	if err != nil {
		return err
	}

	registry := converter.NewRegistry(cfg.Entities...)
	for _, name := range f.allow {
		registry.Allow(strings.TrimSpace(name))
	}

	ccfg := converter.Config{
		Registry:  registry,
		Builder:   builder,
		Transform: cfg.TransformConfig(""),
		Logger:    logger,
	}
	if f.dump {
		ccfg.DebugWriter = stderr
	}

	conv := converter.New(ccfg)

	outputs := make([]*converter.Output, 0, len(f.schemas))

	for _, path := range f.schemas {
		name := f.name
		if name == "" {
			name = entityName(path)
		}

		raw, err := schema.LoadFile(path)
		if err != nil {
			return err
		}

		out, err := conv.Create(name, raw, converter.Options{ResponseFuncPath: f.out})
		if err != nil {
			return err
		}

		for _, w := range out.Diagnostics.Warnings {
			fmt.Fprintf(stderr, "warning: %s\n", w.String())
		}

		outputs = append(outputs, out)
	}

	g := gen.NewGenerator(gen.GeneratorConfig{
		OutputExt: cfg.OutputExt,
		Indent:    strings.Repeat(" ", f.indent),
	})

	files, err := g.GenerateAll(outputs)
	if err != nil {
		return err
	}

	if f.dryRun {
		highlight := color.enabled(stdout)

		for _, file := range files {
			fmt.Fprintf(stdout, "# %s\n", filepath.Join(file.Dir, file.Filename))
			printTemplate(stdout, file.Content, highlight)
		}

		return nil
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, file := range files {
		logger.Info("wrote template", "path", filepath.Join(file.Dir, file.Filename))
	}

	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(f *generateFlags) (*config.Config, error) {
	cfg := config.Default()

	if f.configPath != "" {
		loaded, err := config.LoadFile(f.configPath)
		if err != nil {
			return nil, &usageError{err: err}
		}

		cfg = loaded
	}

	if f.omit != "" {
		cfg.Omit = f.omit
	}

	if f.null != "" {
		cfg.Null = f.null
	}

	if f.ext != "" {
		cfg.OutputExt = f.ext
	}

	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: err}
	}

	return cfg, nil
}

// entityName derives the entity name from a schema file name.
func entityName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
