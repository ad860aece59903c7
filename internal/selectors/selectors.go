// Package selectors holds the layered selector configuration: a built-in
// default table merged with an optional user override file. Resolution is
// read-only after load.
package selectors

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
)

// Table is a nested selector mapping. Leaves are a selector string or an
// ordered fallback list of selector strings; interior nodes are field
// groups.
type Table map[string]any

// Resolver exposes ordered fallback-selector lookup over a merged Table.
type Resolver struct {
	table Table
}

// Load reads the override file at path and merges it over the built-in
// defaults. A missing or unparseable file falls back silently to the
// defaults with a logged warning.
func Load(path string, logger zerolog.Logger) *Resolver {
	defaults := Defaults()

	if path == "" {
		return &Resolver{table: defaults}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Selector file unavailable, using defaults")
		return &Resolver{table: defaults}
	}

	var override Table
	if err := json.Unmarshal(raw, &override); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Selector file unparseable, using defaults")
		return &Resolver{table: defaults}
	}

	logger.Info().Str("path", path).Msg("Loaded selector overrides")
	return &Resolver{table: Merge(override, defaults)}
}

// NewResolver wraps an already-merged table. Used by tests and the audit
// tool.
func NewResolver(t Table) *Resolver {
	return &Resolver{table: t}
}

// Merge combines an override table with defaults. Override values replace
// defaults key by key; when both sides are field groups the merge recurses;
// keys present only in the override are kept.
func Merge(override, defaults Table) Table {
	merged := make(Table, len(defaults))
	for key, defVal := range defaults {
		ovVal, ok := override[key]
		if !ok {
			merged[key] = defVal
			continue
		}
		defGroup, defIsGroup := asGroup(defVal)
		ovGroup, ovIsGroup := asGroup(ovVal)
		if defIsGroup && ovIsGroup {
			merged[key] = Merge(ovGroup, defGroup)
		} else {
			merged[key] = ovVal
		}
	}
	for key, ovVal := range override {
		if _, ok := defaults[key]; !ok {
			merged[key] = ovVal
		}
	}
	return merged
}

func asGroup(v any) (Table, bool) {
	switch t := v.(type) {
	case Table:
		return t, true
	case map[string]any:
		return Table(t), true
	default:
		return nil, false
	}
}

// Resolve walks the table along path and returns the ordered selector list
// at the leaf. A string leaf yields a single-element list; a missing path
// or non-string leaf yields nil.
func (r *Resolver) Resolve(path ...string) []string {
	leaf := r.walk(path)
	switch v := leaf.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// First returns the first selector at path, or "" when none resolve.
func (r *Resolver) First(path ...string) string {
	list := r.Resolve(path...)
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

// Has reports whether path resolves to a group or leaf.
func (r *Resolver) Has(path ...string) bool {
	return r.walk(path) != nil
}

func (r *Resolver) walk(path []string) any {
	var cur any = r.table
	for _, key := range path {
		group, ok := asGroup(cur)
		if !ok {
			return nil
		}
		cur, ok = group[key]
		if !ok {
			return nil
		}
	}
	return cur
}
