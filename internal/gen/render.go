package gen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"responsefunc-generator/internal/expr"
	"responsefunc-generator/internal/schema"
)

// Render writes tree as JSON-shaped text. Expressions are written raw,
// other scalars as JSON literals. An empty indent yields compact output.
func Render(tree *schema.Object, indent string) ([]byte, error) {
	r := &renderer{indent: indent}
	if err := r.object(tree, 0); err != nil {
		return nil, err
	}

	return r.buf.Bytes(), nil
}

type renderer struct {
	buf    bytes.Buffer
	indent string
}

func (r *renderer) newline(level int) {
	if r.indent == "" {
		return
	}

	r.buf.WriteByte('\n')
	r.buf.WriteString(strings.Repeat(r.indent, level))
}

func (r *renderer) object(obj *schema.Object, level int) error {
	if obj == nil || obj.Len() == 0 {
		r.buf.WriteString("{}")
		return nil
	}

	r.buf.WriteByte('{')

	var err error

	i := 0

	obj.Range(func(key string, value any) bool {
		if i > 0 {
			r.buf.WriteByte(',')
		}

		i++

		r.newline(level + 1)

		if err = r.scalar(key); err != nil {
			return false
		}

		r.buf.WriteByte(':')

		if r.indent != "" {
			r.buf.WriteByte(' ')
		}

		err = r.value(value, level+1)

		return err == nil
	})

	if err != nil {
		return err
	}

	r.newline(level)
	r.buf.WriteByte('}')

	return nil
}

func (r *renderer) array(items []any, level int) error {
	if len(items) == 0 {
		r.buf.WriteString("[]")
		return nil
	}

	r.buf.WriteByte('[')

	for i, item := range items {
		if i > 0 {
			r.buf.WriteByte(',')
		}

		r.newline(level + 1)

		if err := r.value(item, level+1); err != nil {
			return err
		}
	}

	r.newline(level)
	r.buf.WriteByte(']')

	return nil
}

func (r *renderer) value(v any, level int) error {
	switch t := v.(type) {
	case expr.Expression:
		r.buf.WriteString(string(t))
		return nil
	case *schema.Object:
		return r.object(t, level)
	case []any:
		return r.array(t, level)
	case nil:
		r.buf.WriteString("null")
		return nil
	default:
		return r.scalar(t)
	}
}

func (r *renderer) scalar(v any) error {
	data, err := json.MarshalNoEscape(v)
	if err != nil {
		return fmt.Errorf("rendering %T: %w", v, err)
	}

	r.buf.Write(data)

	return nil
}
