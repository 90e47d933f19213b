package wizard

import (
	"context"
	"sort"
)

// Data holds the raw form values of a wizard, keyed by field name.
type Data map[string]string

func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Validator reports the fields that block leaving a step, keyed by field
// name. An empty result means the step is complete.
type Validator func(Data) map[string]string

type Step struct {
	Name   string
	Title  string
	Fields []string
	// Validate may be nil for steps without input.
	Validate Validator
	// ResetOnRetreat lists fields cleared when the user goes back from
	// this step.
	ResetOnRetreat []string
}

func (s Step) check(data Data) map[string]string {
	if s.Validate == nil {
		return nil
	}
	return s.Validate(data)
}

func (s Step) accepts(field string) bool {
	for _, f := range s.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Decision is a post-submit step where the user picks one named outcome.
type Decision struct {
	Title    string
	Outcomes []string
}

func (d *Decision) allows(outcome string) bool {
	if d == nil {
		return false
	}
	for _, o := range d.Outcomes {
		if o == outcome {
			return true
		}
	}
	return false
}

type SubmitRequest struct {
	UserID    string
	SessionID string
	Data      Data
}

// Submitter performs the flow's side effect. Returned data is merged into
// the wizard data so the final screen can show references and totals.
type Submitter func(ctx context.Context, req SubmitRequest) (Data, error)

type Flow struct {
	Name  string
	Steps []Step
	// Submit is nil for flows that only compute and display.
	Submit   Submitter
	Decision *Decision
	// Init seeds the data of a new session.
	Init func() Data
	// Normalize rewrites a field value before it is stored.
	Normalize func(field, value string) string
	// Derive computes read-only values shown next to the form.
	Derive func(Data) Data
	// TerminalTitle names the final screen for the chosen outcome.
	TerminalTitle func(outcome string) string
}

func (f *Flow) lastStep() int {
	return len(f.Steps) - 1
}

// StepCount counts every screen: input steps, the decision and the final
// confirmation.
func (f *Flow) StepCount() int {
	n := len(f.Steps)
	if f.Decision != nil {
		n++
	}
	if f.Submit != nil {
		n++
	}
	return n
}

func (f *Flow) terminalTitle(outcome string) string {
	if f.TerminalTitle == nil {
		return "Success"
	}
	return f.TerminalTitle(outcome)
}

// State is the whole wizard position. It is plain data so it can be stored
// between requests.
type State struct {
	Flow     string `json:"flow"`
	Step     int    `json:"step"`
	Data     Data   `json:"data"`
	Deciding bool   `json:"deciding"`
	Terminal bool   `json:"terminal"`
	Outcome  string `json:"outcome,omitempty"`
	Pending  bool   `json:"pending"`
	Error    string `json:"error,omitempty"`
}

func NewState(flow *Flow) State {
	data := Data{}
	if flow.Init != nil {
		data = flow.Init()
	}
	return State{Flow: flow.Name, Data: data}
}

func (s State) onInputStep() bool {
	return !s.Deciding && !s.Terminal
}

type Registry struct {
	flows map[string]*Flow
}

func NewRegistry(flows ...*Flow) *Registry {
	r := &Registry{flows: make(map[string]*Flow, len(flows))}
	for _, f := range flows {
		r.flows[f.Name] = f
	}
	return r
}

func (r *Registry) Lookup(name string) (*Flow, bool) {
	f, ok := r.flows[name]
	return f, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.flows))
	for name := range r.flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
