package wizard

import (
	"context"
	"errors"

	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/contextutil"
	wizardErrors "go-ess/internal/wizard/errors"

	"go.uber.org/zap"
)

// PersistFunc stores an intermediate state of a submission.
type PersistFunc func(ctx context.Context, state State) error

// Runner performs a flow's submit side effect and feeds the result back
// through Reduce.
type Runner struct {
	logger *zap.Logger
}

func NewRunner(logger ...*zap.Logger) *Runner {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Runner{logger: l.Named("wizard.runner")}
}

// Run marks the state pending, persists it, calls the submitter and
// persists the outcome. A failing submitter is not an error of Run: the
// message lands in State.Error and the step is kept so the user can retry.
func (r *Runner) Run(ctx context.Context, flow *Flow, state State, req SubmitRequest, persist PersistFunc) (State, error) {
	pending, err := Reduce(flow, state, SubmitStarted())
	if err != nil {
		return state, err
	}
	if err := persist(ctx, pending); err != nil {
		return state, err
	}

	req.Data = pending.Data.Clone()
	result, submitErr := flow.Submit(ctx, req)

	var next State
	if submitErr != nil {
		contextutil.GetLogger(ctx, r.logger).Warn("wizard submission failed",
			zap.String("flow", flow.Name),
			zap.String("session_id", req.SessionID),
			zap.Error(submitErr),
		)
		next, _ = Reduce(flow, pending, SubmitFailed(submissionMessage(submitErr)))
	} else {
		next, _ = Reduce(flow, pending, SubmitSucceeded(result))
	}

	// The outcome must be stored even when the caller went away, or the
	// session would stay pending until it expires.
	if err := persist(context.WithoutCancel(ctx), next); err != nil {
		return next, err
	}
	return next, nil
}

func submissionMessage(err error) string {
	var validationErr *apperror.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus < 500 {
		return appErr.Message
	}
	return wizardErrors.ErrSubmissionFailed.Message
}
