package runner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
)

// Action names a flow operation a host can request.
type Action string

const (
	ActionNone     Action = ""
	ActionProceed  Action = "proceed"
	ActionHover    Action = "hover"
	ActionUnhover  Action = "unhover"
	ActionActivate Action = "activate"
	ActionConfirm  Action = "confirm"
	ActionReturn   Action = "return"
	ActionHelp     Action = "help"
	ActionQuit     Action = "quit"
)

// ErrUnknownCommand is returned by ParseCommand for input it cannot map to an action.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a parsed line of input. Guide holds a guide ID, a name or a 1-based
// card number as typed; Resolve turns it into an ID.
type Command struct {
	Action Action `json:"action"`
	Guide  string `json:"guide,omitempty"`
}

var verbs = map[string]Action{
	"next":     ActionProceed,
	"continue": ActionProceed,
	"begin":    ActionProceed,
	"proceed":  ActionProceed,
	"hover":    ActionHover,
	"look":     ActionHover,
	"peek":     ActionHover,
	"leave":    ActionUnhover,
	"unhover":  ActionUnhover,
	"tap":      ActionActivate,
	"click":    ActionActivate,
	"pick":     ActionActivate,
	"choose":   ActionActivate,
	"select":   ActionActivate,
	"activate": ActionActivate,
	"y":        ActionConfirm,
	"yes":      ActionConfirm,
	"confirm":  ActionConfirm,
	"n":        ActionReturn,
	"no":       ActionReturn,
	"back":     ActionReturn,
	"return":   ActionReturn,
	"help":     ActionHelp,
	"?":        ActionHelp,
	"quit":     ActionQuit,
	"exit":     ActionQuit,
}

// ParseCommand maps a line of input to a Command for the given step.
// An empty line proceeds from the welcome step; on the choose step a bare card
// number or guide name activates that card.
func ParseCommand(step domain.Step, line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		if step == domain.StepWelcome {
			return Command{Action: ActionProceed}, nil
		}
		return Command{Action: ActionNone}, nil
	}

	verb := strings.ToLower(fields[0])
	arg := strings.Join(fields[1:], " ")
	if action, ok := verbs[verb]; ok {
		switch action {
		case ActionHover, ActionActivate:
			if arg == "" {
				return Command{}, fmt.Errorf("%s needs a guide", verb)
			}
		}
		return Command{Action: action, Guide: arg}, nil
	}

	if step == domain.StepChoose {
		return Command{Action: ActionActivate, Guide: strings.Join(fields, " ")}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
}

// Resolve replaces a card number or a guide name in c.Guide with the guide ID.
// Unmatched references are left as typed so the flow reports them.
func (c Command) Resolve(guides []onboarding.Card) Command {
	if c.Guide == "" {
		return c
	}
	if n, err := strconv.Atoi(c.Guide); err == nil && n >= 1 && n <= len(guides) {
		c.Guide = guides[n-1].ID
		return c
	}
	for _, g := range guides {
		if strings.EqualFold(g.ID, c.Guide) || strings.EqualFold(g.Name, c.Guide) {
			c.Guide = g.ID
			return c
		}
	}
	return c
}

// Apply performs c on flow. Help, quit and empty commands are no-ops here.
func Apply(flow *onboarding.Flow, c Command) error {
	switch c.Action {
	case ActionProceed:
		return flow.Proceed()
	case ActionHover:
		return flow.Hover(c.Guide)
	case ActionUnhover:
		return flow.Unhover()
	case ActionActivate:
		return flow.Activate(c.Guide)
	case ActionConfirm:
		return flow.Confirm()
	case ActionReturn:
		return flow.Return()
	case ActionNone, ActionHelp, ActionQuit:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Action)
	}
}
