package booking

// Action is a staff-triggered status transition rendered as a button.
type Action struct {
	Target Status
	Label  string
}

// Tone selects the button style for the action.
func (a Action) Tone() string {
	switch a.Target {
	case StatusCancelled:
		return "danger"
	case StatusCompleted:
		return "primary"
	default:
		return "secondary"
	}
}

// forward is the single source of truth for the legal forward
// transition out of each non-terminal state. Cancellation is handled
// separately because it is reachable from every non-terminal state.
var forward = map[Status]Action{
	StatusReceived:   {Target: StatusAssigned, Label: "Atribuir"},
	StatusAssigned:   {Target: StatusInProgress, Label: "Iniciar"},
	StatusInProgress: {Target: StatusCompleted, Label: "Concluir"},
}

// AvailableActions lists the transitions staff may apply to a booking
// in the given state, in render order. Terminal states yield nothing.
func AvailableActions(s Status) []Action {
	if s.Terminal() {
		return nil
	}
	var actions []Action
	if next, ok := forward[s]; ok {
		actions = append(actions, next)
	}
	actions = append(actions, Action{Target: StatusCancelled, Label: "Cancelar"})
	return actions
}

// LegalTransition reports whether moving from to target is allowed.
// Used to reject stale or forged requests before calling the API.
func LegalTransition(from, target Status) bool {
	for _, a := range AvailableActions(from) {
		if a.Target == target {
			return true
		}
	}
	return false
}

// Cancellable reports whether the citizen-facing lookup page may offer
// cancellation. Staff may cancel later states; citizens may not.
func Cancellable(s Status) bool {
	return s == StatusReceived || s == StatusAssigned
}
