package onboarding_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/vestibule/pkg/assets"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/welcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_PerStep(t *testing.T) {
	resolver, err := assets.NewResolver(assets.WithBase("/static"))
	require.NoError(t, err)

	f := newFlow(t, onboarding.WithResolver(resolver), onboarding.WithDwell(time.Hour))

	v := f.View()
	assert.Equal(t, domain.StepWelcome, v.Step)
	require.NotNil(t, v.Intro)
	assert.Equal(t, welcome.Intro, *v.Intro)
	assert.Empty(t, v.Guides)

	toChoose(t, f)
	require.NoError(t, f.Hover("Vela"))
	v = f.View()
	assert.Equal(t, welcome.Hint(domain.CapabilityPointer), v.Hint)
	assert.Len(t, v.Guides, len(f.Guides()))
	require.NotNil(t, v.Preview)
	assert.Equal(t, "Vela", v.Preview.ID)
	assert.Equal(t, "/static/guides/vela.webp", v.Preview.ImageURL)
	assert.Nil(t, v.Selected)

	require.NoError(t, f.Activate("Vela"))
	v = f.View()
	assert.Nil(t, v.Preview)
	require.NotNil(t, v.Selected)
	assert.Equal(t, "Vela", v.Selected.ID)

	require.NoError(t, f.Confirm())
	v = f.View()
	assert.Empty(t, v.Guides)
	require.NotNil(t, v.Message)
	assert.Equal(t, welcome.Default()[domain.ToneWarm], *v.Message)
	assert.False(t, v.Completed)
}

func TestView_JSONFlattensGuide(t *testing.T) {
	f := newFlow(t)
	toChoose(t, f)

	raw, err := json.Marshal(f.View())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	cards := decoded["guides"].([]any)
	first := cards[0].(map[string]any)
	assert.Contains(t, first, "id")
	assert.Contains(t, first, "philosophy")
	assert.Contains(t, first, "image_url")
}
