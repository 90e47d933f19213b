package notification

import (
	"context"
	"errors"
	"time"

	"go-ess/internal/document"
	documentErrors "go-ess/internal/document/errors"
	notificationErrors "go-ess/internal/notification/errors"
	"go-ess/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventNamespace derives notification ids from event keys so a redelivered
// event maps onto the same document.
var eventNamespace = uuid.MustParse("6f1d3c1e-6a55-4c1a-9d8e-0b7f7f3a2e10")

type Service interface {
	List(ctx context.Context, userID string) (ListResponse, error)
	// CreateOnce creates at most one notification per key. It reports
	// false when the key was seen before.
	CreateOnce(ctx context.Context, userID, key string, in CreateInput) (bool, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

type service struct {
	store  document.Store
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewService(store document.Store, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		store:  store,
		loc:    loc,
		now:    time.Now,
		logger: l.Named("notification.service"),
	}
}

func (s *service) load(ctx context.Context, userID string) ([]Notification, error) {
	docs, err := s.store.List(ctx, document.CollectionNotifications, document.Filter{OwnerID: userID, OrderDesc: true})
	if err != nil {
		return nil, err
	}

	out := make([]Notification, 0, len(docs))
	for _, doc := range docs {
		n, err := document.Decode[Notification](doc)
		if err != nil {
			s.log(ctx).Warn("skip malformed notification", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		n.ID = doc.ID
		out = append(out, n)
	}
	return out, nil
}

// List groups notifications into Today, Yesterday and Earlier, newest
// first. Empty groups are left out.
func (s *service) List(ctx context.Context, userID string) (ListResponse, error) {
	items, err := s.load(ctx, userID)
	if err != nil {
		s.log(ctx).Error("list notifications failed", zap.Error(err))
		return ListResponse{}, err
	}

	now := s.now()
	order := []string{CategoryToday, CategoryYesterday, CategoryEarlier}
	buckets := map[string][]NotificationResponse{}
	resp := ListResponse{Groups: []Group{}}

	for _, n := range items {
		r := mapToResponse(n, now, s.loc)
		buckets[r.Category] = append(buckets[r.Category], r)
		if !n.IsRead {
			resp.Unread++
		}
	}
	for _, cat := range order {
		if len(buckets[cat]) > 0 {
			resp.Groups = append(resp.Groups, Group{Category: cat, Notifications: buckets[cat]})
		}
	}
	return resp, nil
}

func (s *service) newNotification(userID string, in CreateInput) Notification {
	icon := in.Icon
	if icon == "" {
		icon = "notifications"
	}
	return Notification{
		UserID:    userID,
		Icon:      icon,
		Title:     in.Title,
		CreatedAt: s.now().UTC(),
	}
}

func (s *service) CreateOnce(ctx context.Context, userID, key string, in CreateInput) (bool, error) {
	id := uuid.NewSHA1(eventNamespace, []byte(key)).String()
	_, err := s.store.Put(ctx, document.CollectionNotifications, id, userID, s.newNotification(userID, in))
	if errors.Is(err, documentErrors.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	doc, err := s.store.GetByID(ctx, document.CollectionNotifications, id)
	if errors.Is(err, documentErrors.ErrNotFound) || (err == nil && doc.OwnerID != userID) {
		return notificationErrors.ErrNotificationNotFound
	}
	if err != nil {
		return err
	}

	n, err := document.Decode[Notification](doc)
	if err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}
	n.IsRead = true
	return s.store.Update(ctx, document.CollectionNotifications, id, n)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int, error) {
	items, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, n := range items {
		if n.IsRead {
			continue
		}
		id := n.ID
		n.ID = ""
		n.IsRead = true
		if err := s.store.Update(ctx, document.CollectionNotifications, id, n); err != nil {
			s.log(ctx).Error("mark notification read failed", zap.String("id", id), zap.Error(err))
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}
