package transform

import (
	"errors"
	"fmt"

	"responsefunc-generator/internal/classify"
	"responsefunc-generator/internal/diagnostic"
	"responsefunc-generator/internal/expr"
	"responsefunc-generator/internal/match"
	"responsefunc-generator/internal/schema"
)

// Type tags understood by the string type mapper.
const (
	TagString = "string"
	TagNumber = "number"
)

// DefaultMaxDepth bounds object nesting.
const DefaultMaxDepth = 64

var (
	// ErrOmitted is returned under OmitError when a value cannot be mapped.
	ErrOmitted = errors.New("value omitted")
	// ErrTooDeep is returned when objects nest deeper than MaxDepth.
	ErrTooDeep = errors.New("schema nesting too deep")
)

// Reason explains why a value was omitted.
type Reason string

const (
	ReasonArray      Reason = "array"
	ReasonUnknownTag Reason = "unknown tag"
)

// Result is the outcome of mapping a single node: either a value or an
// explicit omission.
type Result struct {
	Value   any
	Omitted bool
	Reason  Reason
}

func value(v any) Result { return Result{Value: v} }

func omitted(reason Reason) Result { return Result{Omitted: true, Reason: reason} }

// Config holds transformer settings.
type Config struct {
	// Entity names the DTO in diagnostics.
	Entity string
	// Omit decides what happens to omitted values.
	Omit OmitPolicy
	// Null decides how null values are mapped.
	Null NullPolicy
	// MaxDepth bounds object nesting; zero selects DefaultMaxDepth.
	MaxDepth int
}

// Transformer maps schema trees to template trees. It holds no per-call
// state and may be shared.
type Transformer struct {
	config  Config
	builder *expr.Builder
}

// New creates a Transformer. A nil builder selects the default wrappers.
func New(builder *expr.Builder, config Config) *Transformer {
	if builder == nil {
		builder = expr.MustDefault()
	}

	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}

	return &Transformer{config: config, builder: builder}
}

// walk carries the state of one Transform call.
type walk struct {
	*Transformer

	diags  diagnostic.Diagnostics
	onPath map[*schema.Object]struct{}
}

// Transform maps root into a new tree with the same keys in the same order.
// Diagnostics describe every omitted value.
func (t *Transformer) Transform(root *schema.Object) (*schema.Object, diagnostic.Diagnostics, error) {
	w := &walk{Transformer: t, onPath: map[*schema.Object]struct{}{}}

	if root == nil {
		root = schema.NewObject()
	}

	out, err := w.mapObject(root, "", 1)

	return out, w.diags, err
}

// mapUnknown dispatches on the shape of node. Order matters: arrays are
// checked before objects.
func (w *walk) mapUnknown(node any, key, path string, depth int) (Result, error) {
	switch v := node.(type) {
	case []any:
		w.diags.Warn(diagnostic.CodeArrayUnsupported, w.config.Entity, path, "array fields are not supported")

		return omitted(ReasonArray), nil
	case *schema.Object:
		if v == nil {
			return w.mapNull(path, depth)
		}

		out, err := w.mapObject(v, path, depth+1)
		if err != nil {
			return Result{}, err
		}

		return value(out), nil
	case nil:
		return w.mapNull(path, depth)
	case string:
		return w.mapTypeString(v, key, path)
	default:
		return value(node), nil
	}
}

func (w *walk) mapNull(path string, depth int) (Result, error) {
	if w.config.Null == NullPassThrough {
		return value(nil), nil
	}

	w.diags.Note(diagnostic.CodeNullLeaf, w.config.Entity, path, "null mapped as an empty object")

	out, err := w.mapObject(schema.NewObject(), path, depth+1)
	if err != nil {
		return Result{}, err
	}

	return value(out), nil
}

// mapObject is the only recursion entry: every child is mapped with its key
// as the new key path.
func (w *walk) mapObject(obj *schema.Object, path string, depth int) (*schema.Object, error) {
	if depth > w.config.MaxDepth {
		return nil, fmt.Errorf("%s: %w (max %d)", displayPath(path), ErrTooDeep, w.config.MaxDepth)
	}

	if _, seen := w.onPath[obj]; seen {
		return nil, fmt.Errorf("%s: %w", displayPath(path), schema.ErrCyclicSchema)
	}

	w.onPath[obj] = struct{}{}
	defer delete(w.onPath, obj)

	out := schema.NewObject()

	var err error

	obj.Range(func(key string, node any) bool {
		childPath := joinPath(path, key)

		var res Result

		res, err = w.mapUnknown(node, key, childPath, depth)
		if err != nil {
			return false
		}

		if !res.Omitted {
			out.Set(key, res.Value)
			return true
		}

		switch w.config.Omit {
		case OmitNull:
			out.Set(key, nil)
		case OmitError:
			err = fmt.Errorf("%s: %w (%s)", childPath, ErrOmitted, res.Reason)
			return false
		}

		return true
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// mapTypeString classifies a string leaf. First match wins: reference
// marker, number tag, string tag.
func (w *walk) mapTypeString(tag, key, path string) (Result, error) {
	var (
		e   expr.Expression
		err error
	)

	if name, ok := expr.ReferenceName(tag); ok {
		e, err = w.builder.Reference(name)
		return expression(e, err, path)
	}

	switch tag {
	case TagNumber:
		e, err = w.builder.Generator(classify.KindNumber.Generator())
		return expression(e, err, path)
	case TagString:
		e, err = w.builder.Generator(classify.Classify(key))
		return expression(e, err, path)
	}

	w.diags.Add(diagnostic.Diagnostic{
		Severity:    diagnostic.SeverityWarning,
		Code:        diagnostic.CodeUnknownTag,
		Message:     fmt.Sprintf("unknown type tag %q", tag),
		Entity:      w.config.Entity,
		FieldPath:   path,
		Suggestions: match.Suggest(tag, []string{TagString, TagNumber}, match.DefaultMinScore),
	})

	return omitted(ReasonUnknownTag), nil
}

func expression(e expr.Expression, err error, path string) (Result, error) {
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}

	return value(e), nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "<root>"
	}

	return path
}
