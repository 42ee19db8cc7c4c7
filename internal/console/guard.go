package console

// Decision is the route guard's verdict for a privileged view.
type Decision int

const (
	// DecisionRedirect sends the caller to the login entry point and renders
	// nothing privileged.
	DecisionRedirect Decision = iota
	DecisionAllow
)

func (d Decision) Allowed() bool { return d == DecisionAllow }

// Guard gates privileged surfaces on session state. It is a pure function of
// the state: only an authenticated session renders; unknown is treated as
// anonymous so nothing privileged shows before Restore has run.
func Guard(state State) Decision {
	if state == StateAuthenticated {
		return DecisionAllow
	}
	return DecisionRedirect
}
