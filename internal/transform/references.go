package transform

import (
	"sort"

	"responsefunc-generator/internal/expr"
	"responsefunc-generator/internal/schema"
)

// References returns the sorted, de-duplicated names of all templates
// referenced by "$ref-" markers in root. Markers inside arrays are ignored
// since arrays are never mapped.
func References(root *schema.Object) []string {
	seen := map[string]struct{}{}
	collectReferences(root, seen, map[*schema.Object]struct{}{})

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

func collectReferences(obj *schema.Object, seen map[string]struct{}, onPath map[*schema.Object]struct{}) {
	if obj == nil {
		return
	}

	if _, ok := onPath[obj]; ok {
		return
	}

	onPath[obj] = struct{}{}
	defer delete(onPath, obj)

	obj.Range(func(_ string, node any) bool {
		switch v := node.(type) {
		case *schema.Object:
			collectReferences(v, seen, onPath)
		case string:
			if name, ok := expr.ReferenceName(v); ok && name != "" {
				seen[name] = struct{}{}
			}
		}

		return true
	})
}
