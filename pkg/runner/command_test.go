package runner

import (
	"strings"
	"testing"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		step    domain.Step
		line    string
		want    Command
		wantErr bool
	}{
		{"enter on welcome proceeds", domain.StepWelcome, "", Command{Action: ActionProceed}, false},
		{"enter elsewhere is a no-op", domain.StepChoose, "  ", Command{Action: ActionNone}, false},
		{"verb is case insensitive", domain.StepChoose, "TAP Vela", Command{Action: ActionActivate, Guide: "Vela"}, false},
		{"hover", domain.StepChoose, "hover 3", Command{Action: ActionHover, Guide: "3"}, false},
		{"hover needs a guide", domain.StepChoose, "hover", Command{}, true},
		{"bare name on choose", domain.StepChoose, "Orin", Command{Action: ActionActivate, Guide: "Orin"}, false},
		{"bare word on confirm", domain.StepConfirm, "Orin", Command{}, true},
		{"confirm", domain.StepConfirm, "yes", Command{Action: ActionConfirm}, false},
		{"back", domain.StepConfirm, "back", Command{Action: ActionReturn}, false},
		{"quit", domain.StepReveal, "exit", Command{Action: ActionQuit}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.step, tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommand_Resolve(t *testing.T) {
	cards := []onboarding.Card{
		{Guide: domain.Guide{ID: "orin-1", Name: "Orin"}},
		{Guide: domain.Guide{ID: "Vela", Name: "Vela"}},
	}

	assert.Equal(t, "Vela", Command{Action: ActionActivate, Guide: "2"}.Resolve(cards).Guide)
	assert.Equal(t, "orin-1", Command{Action: ActionActivate, Guide: "orin"}.Resolve(cards).Guide)
	assert.Equal(t, "9", Command{Action: ActionActivate, Guide: "9"}.Resolve(cards).Guide, "out of range stays as typed")
	assert.Equal(t, "ghost", Command{Action: ActionActivate, Guide: "ghost"}.Resolve(cards).Guide)
}

func TestFormatView(t *testing.T) {
	orin := onboarding.Card{Guide: domain.Guide{
		ID: "Orin", Name: "Orin", Title: "Cartographer of Verse",
		Philosophy: "Every map is a poem.", Magistry: "Magistry of Ink",
	}}

	choose := FormatView(onboarding.View{
		Step:    domain.StepChoose,
		Hint:    "Tap a guide.",
		Guides:  []onboarding.Card{orin},
		Preview: &orin,
	})
	assert.Contains(t, choose, "1. **Orin**, Cartographer of Verse")
	assert.Contains(t, choose, "> Every map is a poem.")

	reveal := FormatView(onboarding.View{
		Step:     domain.StepReveal,
		Selected: &orin,
		Message:  &domain.Message{Title: "The page turns", Body: "Welcome."},
	})
	assert.True(t, strings.HasPrefix(reveal, "# The page turns"))

	assert.NotEmpty(t, helpText(domain.StepChoose))
}
