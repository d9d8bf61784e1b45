package registry

import (
	"fmt"
	"strings"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/shapes"
)

// Entry pairs a lookup key with its accelerator.
type Entry struct {
	Key         string
	Accelerator shapes.Accelerator
}

// Registry is an immutable, ordered name → accelerator table. It is safe for
// concurrent reads.
type Registry struct {
	keys   []string
	byName map[string]shapes.Accelerator
}

// New builds a registry. Keys are normalized to upper case; a repeated key
// keeps its first position and the last accelerator given for it.
func New(entries ...Entry) *Registry {
	r := &Registry{byName: make(map[string]shapes.Accelerator, len(entries))}
	for _, e := range entries {
		key := normalize(e.Key)
		if _, dup := r.byName[key]; !dup {
			r.keys = append(r.keys, key)
		}
		r.byName[key] = e.Accelerator
	}
	return r
}

// Lookup finds an accelerator by key, ignoring case and surrounding spaces.
func (r *Registry) Lookup(name string) (shapes.Accelerator, bool) {
	a, ok := r.byName[normalize(name)]
	return a, ok
}

// Keys returns the registry keys in catalog order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Info returns the descriptor of every entry in catalog order.
func (r *Registry) Info() []domain.AcceleratorInfo {
	out := make([]domain.AcceleratorInfo, 0, len(r.keys))
	for _, k := range r.keys {
		info := r.byName[k].Info()
		info.Key = k
		out = append(out, info)
	}
	return out
}

// Resolve looks up every name. Unknown names become warnings and are skipped;
// they never stop the remaining names from resolving.
func (r *Registry) Resolve(names []string) ([]Entry, []domain.Warning) {
	var (
		found    []Entry
		warnings []domain.Warning
	)
	for _, n := range names {
		key := normalize(n)
		if key == "" {
			continue
		}
		a, ok := r.byName[key]
		if !ok {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarningUnknownAccelerator,
				Name:    key,
				Message: fmt.Sprintf("Unknown accelerator: %s. Available accelerators: %s", key, strings.Join(r.keys, ", ")),
			})
			continue
		}
		found = append(found, Entry{Key: key, Accelerator: a})
	}
	return found, warnings
}

// ParseNames splits a comma-separated list into normalized keys, dropping
// empty items.
func ParseNames(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if key := normalize(part); key != "" {
			out = append(out, key)
		}
	}
	return out
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
