package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r, err := NewResolver(WithBase("https://cdn.example.com/img/"))
	require.NoError(t, err)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"direct rooted path", "/guides/orin.webp", "https://cdn.example.com/img/guides/orin.webp"},
		{"direct relative path", "guides/orin.webp", "https://cdn.example.com/img/guides/orin.webp"},
		{"absolute url untouched", "https://other.example.com/a.png", "https://other.example.com/a.png"},
		{"legacy prefixed key", "portrait:vela", "https://cdn.example.com/img/guides/vela.webp"},
		{"legacy bare key", "Sable", "https://cdn.example.com/img/guides/sable.webp"},
		{"unknown key falls back to raw", "portrait:ghost", "portrait:ghost"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.ref))
		})
	}
}

func TestResolve_NoBase(t *testing.T) {
	r, err := NewResolver(WithAliases(map[string]string{"ghost": "https://x.example.com/ghost.png"}))
	require.NoError(t, err)

	assert.Equal(t, "/guides/vela.webp", r.Resolve("portrait:vela"))
	assert.Equal(t, "https://x.example.com/ghost.png", r.Resolve("portrait:ghost"))
	assert.True(t, r.Known("ghost"))
	assert.False(t, r.Known("portrait:nobody"))
}

func TestEmbeddedAliases_ReturnsCopy(t *testing.T) {
	a, err := EmbeddedAliases()
	require.NoError(t, err)
	a["vela"] = "tampered"

	b, err := EmbeddedAliases()
	require.NoError(t, err)
	assert.Equal(t, "guides/vela.webp", b["vela"])
}
