// Package assets resolves guide image references into locations a host can render.
//
// Rosters store either a direct path (for example "/guides/orin.webp" or a full URL)
// or a legacy indirect key (for example "portrait:vela" or just "vela") that is looked
// up in the embedded portrait manifest. Unresolved keys come back unchanged.
package assets

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed data/portraits.v1.json
var portraitManifestJSON []byte

// LegacyPrefix marks an indirect image key.
const LegacyPrefix = "portrait:"

var (
	loadManifestOnce  sync.Once
	embeddedAliases   map[string]string
	manifestLoadError error
)

type manifestJSON struct {
	ID           string            `json:"id"`
	AssetAliases map[string]string `json:"asset_aliases"`
}

// EmbeddedAliases returns a copy of the embedded legacy key table.
func EmbeddedAliases() (map[string]string, error) {
	loadManifestOnce.Do(func() {
		var doc manifestJSON
		if err := json.Unmarshal(portraitManifestJSON, &doc); err != nil {
			manifestLoadError = fmt.Errorf("decode portrait manifest: %w", err)
			return
		}
		embeddedAliases = make(map[string]string, len(doc.AssetAliases))
		for k, v := range doc.AssetAliases {
			embeddedAliases[normalizeKey(k)] = v
		}
	})
	if manifestLoadError != nil {
		return nil, manifestLoadError
	}
	return copyAliases(embeddedAliases), nil
}

// Resolver turns stored image references into renderable locations.
type Resolver struct {
	base    string
	aliases map[string]string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBase prefixes relative and rooted paths with base (a URL or path prefix).
func WithBase(base string) Option {
	return func(r *Resolver) {
		r.base = strings.TrimRight(base, "/")
	}
}

// WithAliases adds or overrides legacy keys.
func WithAliases(aliases map[string]string) Option {
	return func(r *Resolver) {
		for k, v := range aliases {
			r.aliases[normalizeKey(k)] = v
		}
	}
}

// NewResolver builds a resolver over the embedded manifest.
func NewResolver(opts ...Option) (*Resolver, error) {
	aliases, err := EmbeddedAliases()
	if err != nil {
		return nil, err
	}
	r := &Resolver{aliases: aliases}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve returns the location for ref.
func (r *Resolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if isAbsoluteURL(ref) {
		return ref
	}
	if isDirectPath(ref) {
		return r.join(ref)
	}

	if target, ok := r.aliases[normalizeKey(ref)]; ok {
		if isAbsoluteURL(target) {
			return target
		}
		return r.join(target)
	}
	return ref
}

// Known reports whether ref resolves through the alias table or is a direct path.
func (r *Resolver) Known(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	if isAbsoluteURL(ref) || isDirectPath(ref) {
		return true
	}
	_, ok := r.aliases[normalizeKey(ref)]
	return ok
}

func (r *Resolver) join(p string) string {
	p = "/" + strings.TrimLeft(p, "/")
	return r.base + p
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "data:")
}

func isDirectPath(ref string) bool {
	if strings.HasPrefix(ref, LegacyPrefix) {
		return false
	}
	return strings.Contains(ref, "/")
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.TrimPrefix(key, LegacyPrefix)
}

func copyAliases(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
