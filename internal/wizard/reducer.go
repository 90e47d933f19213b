package wizard

import (
	"go-ess/internal/shared/apperror"
	wizardErrors "go-ess/internal/wizard/errors"
)

type EventKind string

const (
	EventSetFields       EventKind = "set_fields"
	EventAdvance         EventKind = "advance"
	EventRetreat         EventKind = "retreat"
	EventSubmitStarted   EventKind = "submit_started"
	EventSubmitSucceeded EventKind = "submit_succeeded"
	EventSubmitFailed    EventKind = "submit_failed"
	EventChoose          EventKind = "choose"
)

type Event struct {
	Kind    EventKind
	Fields  Data
	Outcome string
	Message string
}

func SetField(field, value string) Event {
	return Event{Kind: EventSetFields, Fields: Data{field: value}}
}

func SetFields(fields Data) Event {
	return Event{Kind: EventSetFields, Fields: fields}
}

func Advance() Event { return Event{Kind: EventAdvance} }

func Retreat() Event { return Event{Kind: EventRetreat} }

func SubmitStarted() Event { return Event{Kind: EventSubmitStarted} }

// SubmitSucceeded carries the data returned by the submitter.
func SubmitSucceeded(result Data) Event {
	return Event{Kind: EventSubmitSucceeded, Fields: result}
}

func SubmitFailed(message string) Event {
	return Event{Kind: EventSubmitFailed, Message: message}
}

func Choose(outcome string) Event {
	return Event{Kind: EventChoose, Outcome: outcome}
}

// Reduce applies one event. It never mutates the given state; on error the
// returned state equals the input.
func Reduce(flow *Flow, state State, ev Event) (State, error) {
	next := state
	next.Data = state.Data.Clone()

	switch ev.Kind {
	case EventSetFields:
		if !state.onInputStep() || state.Pending {
			return state, wizardErrors.ErrInvalidTransition
		}
		step := flow.Steps[state.Step]
		unknown := map[string]string{}
		for field, value := range ev.Fields {
			if !step.accepts(field) {
				unknown[field] = field + " is not part of this step"
				continue
			}
			if flow.Normalize != nil {
				value = flow.Normalize(field, value)
			}
			next.Data[field] = value
		}
		if len(unknown) > 0 {
			return state, apperror.NewValidationError(unknown)
		}
		return next, nil

	case EventAdvance:
		if !state.onInputStep() || state.Pending || state.Step >= flow.lastStep() {
			return state, wizardErrors.ErrInvalidTransition
		}
		if failing := flow.Steps[state.Step].check(state.Data); len(failing) > 0 {
			return state, apperror.NewValidationError(failing)
		}
		next.Step++
		return next, nil

	case EventRetreat:
		// Leaving the decision reopens the last input step. Submitter data
		// such as a saved record id stays, so a resubmit can update it.
		if state.Deciding {
			next.Deciding = false
			next.Step = flow.lastStep()
			return next, nil
		}
		if !state.onInputStep() || state.Pending {
			return state, wizardErrors.ErrInvalidTransition
		}
		if state.Step == 0 {
			return state, nil
		}
		for _, field := range flow.Steps[state.Step].ResetOnRetreat {
			delete(next.Data, field)
		}
		next.Step--
		return next, nil

	case EventSubmitStarted:
		if state.Pending {
			return state, wizardErrors.ErrSubmissionInProgress
		}
		if flow.Submit == nil || !state.onInputStep() || state.Step != flow.lastStep() {
			return state, wizardErrors.ErrInvalidTransition
		}
		if failing := flow.Steps[state.Step].check(state.Data); len(failing) > 0 {
			return state, apperror.NewValidationError(failing)
		}
		next.Pending = true
		next.Error = ""
		return next, nil

	case EventSubmitSucceeded:
		if !state.Pending {
			return state, wizardErrors.ErrInvalidTransition
		}
		for k, v := range ev.Fields {
			next.Data[k] = v
		}
		next.Pending = false
		next.Error = ""
		if flow.Decision != nil {
			next.Deciding = true
		} else {
			next.Terminal = true
		}
		return next, nil

	case EventSubmitFailed:
		if !state.Pending {
			return state, wizardErrors.ErrInvalidTransition
		}
		next.Pending = false
		next.Error = ev.Message
		return next, nil

	case EventChoose:
		if !state.Deciding {
			return state, wizardErrors.ErrInvalidTransition
		}
		if !flow.Decision.allows(ev.Outcome) {
			return state, apperror.FieldError("outcome", "Outcome is invalid")
		}
		next.Deciding = false
		next.Terminal = true
		next.Outcome = ev.Outcome
		return next, nil
	}

	return state, wizardErrors.ErrInvalidTransition
}
