package giac

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/giac-go/giac/internal/bindings"
)

// Help describes one command from the native help database.
type Help struct {
	Name     string
	Category string
	Synopsis string
	Related  []string
	Examples []string
}

// registry is the once-populated set of valid command names with their
// help records. After bootstrap it is only ever read, so lookups need no
// locking. An empty registry means degraded mode: name validation is
// skipped and tier-3 calls are attempted unconditionally.
type registry struct {
	entries map[string]Help
	names   []string // sorted
}

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// suggestionCutoff is the largest edit distance still offered as a
// suggestion.
const suggestionCutoff = 3

// bootstrapRegistry queries the native introspection facilities once.
// It fails softly: with no engine, or an engine whose command list is
// empty, the result is an empty registry.
func bootstrapRegistry(eng bindings.Engine) *registry {
	r := &registry{entries: make(map[string]Help)}
	if eng == nil {
		return r
	}
	engineMu.Lock()
	names := eng.CommandNames()
	engineMu.Unlock()
	for _, name := range names {
		h := Help{Name: name}
		engineMu.Lock()
		entry, ok := eng.Help(name)
		engineMu.Unlock()
		if ok {
			h.Category = entry.Category
			h.Synopsis = entry.Synopsis
			h.Related = entry.Related
			h.Examples = entry.Examples
		}
		if _, dup := r.entries[name]; !dup {
			r.names = append(r.names, name)
		}
		r.entries[name] = h
	}
	sort.Strings(r.names)
	return r
}

func (r *registry) empty() bool { return len(r.entries) == 0 }

func (r *registry) known(name string) bool {
	_, ok := r.entries[name]
	return ok
}

func (r *registry) lookup(name string) (Help, bool) {
	h, ok := r.entries[name]
	return h, ok
}

// withPrefix returns all command names starting with prefix, sorted.
func (r *registry) withPrefix(prefix string) []string {
	if prefix == "" {
		out := make([]string, len(r.names))
		copy(out, r.names)
		return out
	}
	var out []string
	for _, name := range r.names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// suggest returns up to maxSuggestions known names near the given one,
// sorted by increasing edit distance, ties broken lexicographically.
func (r *registry) suggest(name string) []string {
	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for _, known := range r.names {
		d := levenshtein.ComputeDistance(name, known)
		if d <= suggestionCutoff {
			cands = append(cands, candidate{known, d})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].name < cands[j].name
	})
	if len(cands) > maxSuggestions {
		cands = cands[:maxSuggestions]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}
