package model

type Action string

const (
	ActionVote       Action = "vote"
	ActionContribute Action = "contribute"
)

func ParseAction(value string) (Action, error) {
	switch Action(value) {
	case ActionVote, ActionContribute:
		return Action(value), nil
	default:
		return "", ErrUnknownAction
	}
}

// Actions lists what a project currently accepts, in display order.
func (p Project) Actions() []Action {
	actions := make([]Action, 0, 2)
	if p.Status.Open() {
		actions = append(actions, ActionVote)
	}
	if p.Status != StatusCompleted {
		actions = append(actions, ActionContribute)
	}
	return actions
}
