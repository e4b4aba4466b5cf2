package converter

import "sort"

// Registry is the allowlist of entity names that may be converted. The
// zero value denies everything.
type Registry struct {
	names map[string]struct{}
}

// NewRegistry creates a registry allowing the given names.
func NewRegistry(names ...string) *Registry {
	r := &Registry{}
	for _, n := range names {
		r.Allow(n)
	}

	return r
}

// Allow adds name to the allowlist. Empty names are ignored.
func (r *Registry) Allow(name string) {
	if name == "" {
		return
	}

	if r.names == nil {
		r.names = make(map[string]struct{})
	}

	r.names[name] = struct{}{}
}

// Allowed reports whether name may be converted. Matching is exact.
func (r *Registry) Allowed(name string) bool {
	if r == nil {
		return false
	}

	_, ok := r.names[name]

	return ok
}

// Names returns the allowed names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}

	sort.Strings(out)

	return out
}
