package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
)

// FormatView renders a view as markdown.
func FormatView(v onboarding.View) string {
	var b strings.Builder

	switch v.Step {
	case domain.StepWelcome:
		if v.Intro != nil {
			fmt.Fprintf(&b, "# %s\n\n%s\n\n", v.Intro.Title, v.Intro.Body)
		}
		b.WriteString("_Press Enter to meet the guides._\n")

	case domain.StepChoose:
		b.WriteString("## Choose your guide\n\n")
		if v.Hint != "" {
			fmt.Fprintf(&b, "_%s_\n\n", v.Hint)
		}
		writeCards(&b, v.Guides)
		if v.Preview != nil {
			b.WriteString("\n")
			writeOverlay(&b, *v.Preview)
		}

	case domain.StepConfirm:
		if v.Selected != nil {
			fmt.Fprintf(&b, "## Walk with %s?\n\n", v.Selected.Name)
			writeOverlay(&b, *v.Selected)
			b.WriteString("\n")
		}
		b.WriteString("Type **yes** to confirm or **back** to choose again.\n")

	case domain.StepReveal:
		if v.Message != nil {
			fmt.Fprintf(&b, "# %s\n\n%s\n\n", v.Message.Title, v.Message.Body)
		}
		if v.Selected != nil {
			fmt.Fprintf(&b, "**%s**, %s\n", v.Selected.Name, v.Selected.Title)
		}
	}
	return b.String()
}

func writeCards(b *strings.Builder, cards []onboarding.Card) {
	for i, c := range cards {
		marker := ""
		if c.Previewed {
			marker = " *"
		}
		fmt.Fprintf(b, "%d. **%s**, %s%s\n", i+1, c.Name, c.Title, marker)
	}
}

func writeOverlay(b *strings.Builder, c onboarding.Card) {
	if c.Philosophy != "" {
		fmt.Fprintf(b, "> %s\n\n", c.Philosophy)
	}
	if c.Magistry != "" {
		fmt.Fprintf(b, "%s\n", c.Magistry)
	}
}

func helpText(step domain.Step) string {
	switch step {
	case domain.StepWelcome:
		return "Press Enter to continue, or type quit."
	case domain.StepChoose:
		return "hover <n|name> previews, leave clears it, tap <n|name> selects. A bare number or name also works."
	case domain.StepConfirm:
		return "yes confirms, back returns to the guides."
	default:
		return "quit leaves."
	}
}
