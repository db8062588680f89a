package roster_test

import (
	"testing"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/ports/tests"
	"github.com/aretw0/vestibule/pkg/roster"
	"github.com/stretchr/testify/assert"
)

func TestBuiltin_Valid(t *testing.T) {
	assert.NoError(t, roster.Validate(roster.Builtin()))

	_, ok := domain.FindGuide(roster.Builtin(), "Vela")
	assert.True(t, ok)
	orin, ok := domain.FindGuide(roster.Builtin(), "Orin")
	assert.True(t, ok)
	assert.Equal(t, domain.TonePoetic, orin.Tone)
}

func TestStatic_Contract(t *testing.T) {
	tests.RosterLoaderContractTest(t, roster.NewStatic(roster.Builtin()...), roster.Builtin())
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, roster.Validate(nil), domain.ErrEmptyRoster)

	err := roster.Validate([]domain.Guide{
		{ID: "a", Name: "A", Image: "x", Tone: domain.ToneWarm},
		{ID: "a", Name: "A2", Image: "y", Tone: domain.ToneWarm},
		{ID: "b", Image: "", Tone: "grumpy"},
		{Name: "nameless"},
	})
	if assert.Error(t, err) {
		msg := err.Error()
		assert.Contains(t, msg, "guide a: duplicate id")
		assert.Contains(t, msg, "guide b: missing name")
		assert.Contains(t, msg, "guide b: missing image")
		assert.NotContains(t, msg, "grumpy", "tones are left to the message table")
		assert.Contains(t, msg, "guide #3: missing id")
	}
}

func TestValidate_UnknownToneAccepted(t *testing.T) {
	assert.NoError(t, roster.Validate([]domain.Guide{
		{ID: "Wren", Name: "Wren", Image: "/guides/wren.webp", Tone: "wistful"},
	}))
}
