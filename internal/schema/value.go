package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-json"
)

// FromValue normalizes an already-decoded value into an Object, the way a
// JSON encode and decode round trip would.
//
// Accepted inputs:
//   - []byte, json.RawMessage: parsed as JSON text
//   - *Object: deep-copied
//   - maps with string keys: converted recursively, keys sorted since Go
//     maps carry no order
//   - structs and other values: encoded to JSON and decoded again
//
// Nested containers of any type become *Object and []any, so typed slices
// and maps never survive as opaque leaves. Values that do not describe an
// object yield ErrNotObject. A value that contains itself yields
// ErrCyclicSchema.
func FromValue(v any) (*Object, error) {
	switch t := v.(type) {
	case nil:
		return nil, ErrNotObject
	case []byte:
		return ParseJSON(t)
	case json.RawMessage:
		return ParseJSON(t)
	}

	node, err := newNormalizer().value(v)
	if err != nil {
		return nil, err
	}

	obj, ok := node.(*Object)
	if !ok || obj == nil {
		return nil, ErrNotObject
	}

	return obj, nil
}

// visit identifies a container on the current path. Slices are keyed by
// data pointer and length so distinct subslices of one array differ.
type visit struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// normalizer converts Go values into schema nodes: *Object, []any, nil or a
// scalar. Scalars keep their dynamic type.
type normalizer struct {
	onPath map[visit]struct{}
}

func newNormalizer() *normalizer {
	return &normalizer{onPath: map[visit]struct{}{}}
}

// enter marks a container as being on the path. The returned func removes
// it again; a container already on the path is a cycle.
func (n *normalizer) enter(key visit) (func(), error) {
	if _, seen := n.onPath[key]; seen {
		return nil, ErrCyclicSchema
	}

	n.onPath[key] = struct{}{}

	return func() { delete(n.onPath, key) }, nil
}

func (n *normalizer) value(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case *Object:
		if t == nil {
			return nil, nil
		}

		return n.object(t)
	case json.Number:
		return t, nil
	case json.Marshaler:
		return n.roundTrip(v)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}

		if rv.Kind() == reflect.Interface {
			return n.value(rv.Elem().Interface())
		}

		leave, err := n.enter(visit{typ: rv.Type(), ptr: rv.Pointer()})
		if err != nil {
			return nil, err
		}
		defer leave()

		return n.value(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return n.roundTrip(v)
		}

		if rv.IsNil() {
			return nil, nil
		}

		return n.mapValue(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}

		// []byte encodes as a base64 string
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return n.roundTrip(v)
		}

		leave, err := n.enter(visit{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()})
		if err != nil {
			return nil, err
		}
		defer leave()

		return n.elements(rv)
	case reflect.Array:
		return n.elements(rv)
	default:
		return n.roundTrip(v)
	}
}

func (n *normalizer) object(o *Object) (*Object, error) {
	leave, err := n.enter(visit{typ: reflect.TypeOf(o), ptr: reflect.ValueOf(o).Pointer()})
	if err != nil {
		return nil, err
	}
	defer leave()

	out := NewObject()

	for _, k := range o.keys {
		v, err := n.value(o.values[k])
		if err != nil {
			return nil, err
		}

		out.Set(k, v)
	}

	return out, nil
}

func (n *normalizer) mapValue(rv reflect.Value) (*Object, error) {
	leave, err := n.enter(visit{typ: rv.Type(), ptr: rv.Pointer()})
	if err != nil {
		return nil, err
	}
	defer leave()

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}

	sort.Strings(keys)

	out := NewObject()

	for _, k := range keys {
		v, err := n.value(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
		if err != nil {
			return nil, err
		}

		out.Set(k, v)
	}

	return out, nil
}

func (n *normalizer) elements(rv reflect.Value) ([]any, error) {
	out := make([]any, rv.Len())

	for i := range out {
		v, err := n.value(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

// roundTrip encodes v as JSON and decodes the result into schema nodes.
func (n *normalizer) roundTrip(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot encode %T: %w", ErrNotObject, v, err)
	}

	node, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %T: %w", ErrNotObject, v, err)
	}

	return node, nil
}
