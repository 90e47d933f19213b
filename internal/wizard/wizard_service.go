package wizard

import (
	"context"
	"time"

	"go-ess/internal/shared/contextutil"
	wizardErrors "go-ess/internal/wizard/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Flows() []string
	Start(ctx context.Context, userID, flow string) (View, error)
	Get(ctx context.Context, userID, flow, id string) (View, error)
	SetFields(ctx context.Context, userID, flow, id string, fields Data) (View, error)
	Advance(ctx context.Context, userID, flow, id string) (View, error)
	Retreat(ctx context.Context, userID, flow, id string) (View, error)
	Submit(ctx context.Context, userID, flow, id string) (View, error)
	Choose(ctx context.Context, userID, flow, id, outcome string) (View, error)
	Discard(ctx context.Context, userID, flow, id string) error
}

type service struct {
	registry *Registry
	store    SessionStore
	runner   *Runner
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(registry *Registry, store SessionStore, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		registry: registry,
		store:    store,
		runner:   NewRunner(l),
		now:      time.Now,
		logger:   l.Named("wizard.service"),
	}
}

func (s *service) Flows() []string {
	return s.registry.Names()
}

func (s *service) Start(ctx context.Context, userID, flowName string) (View, error) {
	flow, ok := s.registry.Lookup(flowName)
	if !ok {
		return View{}, wizardErrors.ErrFlowNotFound
	}

	session := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     NewState(flow),
		UpdatedAt: s.now(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return View{}, err
	}

	s.log(ctx).Info("wizard started", zap.String("flow", flowName), zap.String("session_id", session.ID))
	return s.view(flow, session), nil
}

func (s *service) Get(ctx context.Context, userID, flowName, id string) (View, error) {
	flow, session, err := s.load(ctx, userID, flowName, id)
	if err != nil {
		return View{}, err
	}
	return s.view(flow, session), nil
}

func (s *service) SetFields(ctx context.Context, userID, flowName, id string, fields Data) (View, error) {
	return s.apply(ctx, userID, flowName, id, SetFields(fields))
}

func (s *service) Advance(ctx context.Context, userID, flowName, id string) (View, error) {
	return s.apply(ctx, userID, flowName, id, Advance())
}

func (s *service) Retreat(ctx context.Context, userID, flowName, id string) (View, error) {
	return s.apply(ctx, userID, flowName, id, Retreat())
}

func (s *service) Choose(ctx context.Context, userID, flowName, id, outcome string) (View, error) {
	return s.apply(ctx, userID, flowName, id, Choose(outcome))
}

func (s *service) Submit(ctx context.Context, userID, flowName, id string) (View, error) {
	return s.locked(ctx, userID, flowName, id, func(flow *Flow, session Session) (View, error) {
		persist := func(ctx context.Context, st State) error {
			session.State = st
			session.UpdatedAt = s.now()
			return s.store.Save(ctx, session)
		}

		req := SubmitRequest{UserID: userID, SessionID: id}
		next, err := s.runner.Run(ctx, flow, session.State, req, persist)
		if err != nil {
			return View{}, err
		}
		session.State = next
		return s.view(flow, session), nil
	})
}

func (s *service) Discard(ctx context.Context, userID, flowName, id string) error {
	if _, _, err := s.load(ctx, userID, flowName, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *service) apply(ctx context.Context, userID, flowName, id string, ev Event) (View, error) {
	return s.locked(ctx, userID, flowName, id, func(flow *Flow, session Session) (View, error) {
		next, err := Reduce(flow, session.State, ev)
		if err != nil {
			return View{}, err
		}

		session.State = next
		session.UpdatedAt = s.now()
		if err := s.store.Save(ctx, session); err != nil {
			return View{}, err
		}
		return s.view(flow, session), nil
	})
}

// locked runs fn under the session lock with a session loaded after the
// lock was taken, so every write starts from the latest stored state.
func (s *service) locked(ctx context.Context, userID, flowName, id string, fn func(*Flow, Session) (View, error)) (View, error) {
	if _, ok := s.registry.Lookup(flowName); !ok {
		return View{}, wizardErrors.ErrFlowNotFound
	}

	ok, err := s.store.Lock(ctx, id)
	if err != nil {
		return View{}, err
	}
	if !ok {
		return View{}, wizardErrors.ErrSessionBusy
	}
	defer func() {
		if err := s.store.Unlock(context.WithoutCancel(ctx), id); err != nil {
			s.log(ctx).Warn("release session lock failed", zap.String("session_id", id), zap.Error(err))
		}
	}()

	flow, session, err := s.load(ctx, userID, flowName, id)
	if err != nil {
		return View{}, err
	}
	return fn(flow, session)
}

// load hides sessions of other users and other flows behind not found.
func (s *service) load(ctx context.Context, userID, flowName, id string) (*Flow, Session, error) {
	flow, ok := s.registry.Lookup(flowName)
	if !ok {
		return nil, Session{}, wizardErrors.ErrFlowNotFound
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, Session{}, err
	}
	if session.UserID != userID || session.State.Flow != flowName {
		return nil, Session{}, wizardErrors.ErrSessionNotFound
	}
	return flow, session, nil
}

func (s *service) view(flow *Flow, session Session) View {
	v := Project(flow, session.State)
	v.SessionID = session.ID
	return v
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}
