package wizard

// View is what a client renders for the current state.
type View struct {
	SessionID  string   `json:"sessionId,omitempty"`
	Flow       string   `json:"flow"`
	Step       string   `json:"step"`
	Title      string   `json:"title"`
	StepIndex  int      `json:"stepIndex"`
	StepCount  int      `json:"stepCount"`
	CanAdvance bool     `json:"canAdvance"`
	CanRetreat bool     `json:"canRetreat"`
	CanSubmit  bool     `json:"canSubmit"`
	Pending    bool     `json:"pending"`
	Error      string   `json:"error,omitempty"`
	Terminal   bool     `json:"terminal"`
	Outcome    string   `json:"outcome,omitempty"`
	Outcomes   []string `json:"outcomes,omitempty"`
	Data       Data     `json:"data"`
	Derived    Data     `json:"derived,omitempty"`
}

const (
	stepDecision = "decision"
	stepDone     = "done"
)

func Project(flow *Flow, state State) View {
	v := View{
		Flow:      flow.Name,
		StepCount: flow.StepCount(),
		Pending:   state.Pending,
		Error:     state.Error,
		Terminal:  state.Terminal,
		Outcome:   state.Outcome,
		Data:      state.Data.Clone(),
	}
	if flow.Derive != nil {
		v.Derived = flow.Derive(state.Data)
	}

	switch {
	case state.Terminal:
		v.Step = stepDone
		v.Title = flow.terminalTitle(state.Outcome)
		v.StepIndex = v.StepCount
	case state.Deciding:
		v.Step = stepDecision
		v.Title = flow.Decision.Title
		v.StepIndex = len(flow.Steps) + 1
		v.Outcomes = append([]string(nil), flow.Decision.Outcomes...)
		v.CanRetreat = true
	default:
		step := flow.Steps[state.Step]
		complete := len(step.check(state.Data)) == 0
		last := state.Step == flow.lastStep()

		v.Step = step.Name
		v.Title = step.Title
		v.StepIndex = state.Step + 1
		v.CanAdvance = !state.Pending && !last && complete
		v.CanRetreat = !state.Pending && state.Step > 0
		v.CanSubmit = !state.Pending && last && flow.Submit != nil && complete
	}

	return v
}
