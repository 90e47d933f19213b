package account

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	accountErrors "go-ess/internal/account/errors"
	"go-ess/internal/document"
	documentErrors "go-ess/internal/document/errors"
	"go-ess/internal/profile"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/upstream"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	BanksCachePrefix = "banks:"
	BanksPerPage     = 20
	banksTTL         = time.Hour
)

func GetBanksCacheKey(countryID string, page int, search string) string {
	return BanksCachePrefix + countryID + ":" + strconv.Itoa(page) + ":" + strings.ToLower(strings.TrimSpace(search))
}

//go:generate mockgen -source=account_service.go -destination=mock/account_service_mock.go -package=mock
type BankAPI interface {
	ResolveAccount(ctx context.Context, bankID, accountNumber string) (string, error)
	Banks(ctx context.Context, countryID, search string, page, limit int) ([]upstream.Bank, error)
	UpdateMe(ctx context.Context, req upstream.UpdateMeRequest) (upstream.User, error)
}

type Service interface {
	// Draft feeds an edit of the bank details form into the user's resolver.
	Draft(ctx context.Context, userID string, req DraftRequest) (ResolutionState, error)
	DraftState(ctx context.Context, userID string) (ResolutionState, error)
	DiscardDraft(ctx context.Context, userID string) error
	SaveBankDetails(ctx context.Context, userID string, req SaveRequest) (AccountResponse, error)
	ListAccounts(ctx context.Context, userID string) ([]AccountResponse, error)
	SetDefault(ctx context.Context, userID, id string) (AccountResponse, error)
	SearchBanks(ctx context.Context, userID string, req BanksRequest) ([]BankResponse, error)
}

type service struct {
	api      BankAPI
	profiles profile.Writer
	store    document.Store
	registry *Registry
	rdb      *redis.Client
	sf       *singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	api BankAPI,
	profiles profile.Writer,
	store document.Store,
	registry *Registry,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		api:      api,
		profiles: profiles,
		store:    store,
		registry: registry,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		now:      time.Now,
		logger:   l.Named("account.service"),
	}
}

// resolver returns the user's resolver, seeding a new one with the bank
// details saved on the profile.
func (s *service) resolver(ctx context.Context, userID string) *Resolver {
	res, created := s.registry.GetOrCreate(userID)
	if !created {
		return res
	}

	u, err := s.profiles.Current(ctx, userID)
	if err != nil {
		s.log(ctx).Warn("load profile for draft failed", zap.Error(err))
		return res
	}
	res.ResolveInitial(ctx, u.BankID, u.AccountNumber)
	return res
}

func (s *service) Draft(ctx context.Context, userID string, req DraftRequest) (ResolutionState, error) {
	res := s.resolver(ctx, userID)
	return res.Submit(ctx, strings.TrimSpace(req.BankID), strings.TrimSpace(req.AccountNumber)), nil
}

func (s *service) DraftState(ctx context.Context, userID string) (ResolutionState, error) {
	return s.resolver(ctx, userID).State(), nil
}

func (s *service) DiscardDraft(_ context.Context, userID string) error {
	if _, ok := s.registry.Get(userID); !ok {
		return accountErrors.ErrDraftNotFound
	}
	s.registry.Remove(userID)
	return nil
}

func (s *service) SaveBankDetails(ctx context.Context, userID string, req SaveRequest) (AccountResponse, error) {
	bankID := strings.TrimSpace(req.BankID)
	accountNumber := strings.TrimSpace(req.AccountNumber)

	fields := map[string]string{}
	if bankID == "" {
		fields["bankId"] = "Bank is required"
	}
	if !ValidAccountNumber(accountNumber) {
		fields["accountNumber"] = ErrMsgAccountFormat
	}
	if len(fields) > 0 {
		return AccountResponse{}, apperror.NewValidationError(fields)
	}

	name, err := s.accountName(ctx, userID, bankID, accountNumber)
	if err != nil {
		return AccountResponse{}, err
	}

	updated, err := s.api.UpdateMe(ctx, upstream.UpdateMeRequest{BankID: bankID, AccountNumber: accountNumber})
	if err != nil {
		return AccountResponse{}, s.mapUpdateError(ctx, err)
	}
	s.syncProfile(ctx, userID, updated, bankID, accountNumber)

	saved, err := s.storeDefault(ctx, userID, Account{
		BankID:        bankID,
		BankName:      req.BankName,
		AccountNumber: accountNumber,
		AccountName:   name,
	})
	if err != nil {
		return AccountResponse{}, err
	}

	s.registry.Remove(userID)
	s.log(ctx).Info("bank details saved", zap.String("user_id", userID), zap.String("bank_id", bankID))
	return mapToResponse(saved), nil
}

// accountName prefers a name the draft already resolved for this exact
// pair and resolves synchronously otherwise.
func (s *service) accountName(ctx context.Context, userID, bankID, accountNumber string) (string, error) {
	if res, ok := s.registry.Get(userID); ok {
		st := res.State()
		if st.BankID == bankID && st.AccountNumber == accountNumber && st.ResolvedName != "" {
			return st.ResolvedName, nil
		}
	}

	name, err := s.api.ResolveAccount(ctx, bankID, accountNumber)
	if err != nil || name == "" {
		s.log(ctx).Warn("resolve account on save failed", zap.String("bank_id", bankID), zap.Error(err))
		return "", apperror.FieldError("accountNumber", ErrMsgUnresolved)
	}
	return name, nil
}

func (s *service) mapUpdateError(ctx context.Context, err error) error {
	if apiErr, ok := upstream.AsAPIError(err); ok {
		if apiErr.IsValidation() && len(apiErr.Errors) > 0 {
			return apperror.NewValidationError(apiErr.Errors)
		}
		return apperror.FieldError("bankId", apiErr.Error())
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.log(ctx).Error("update bank details failed", zap.Error(err))
	return apperror.Wrap(err, apperror.ErrUpstream.Code, apperror.ErrUpstream.Message, apperror.ErrUpstream.HTTPStatus)
}

func (s *service) syncProfile(ctx context.Context, userID string, updated upstream.User, bankID, accountNumber string) {
	var u profile.User
	if updated.ID != "" {
		u = profile.FromUpstream(updated)
	} else {
		current, err := s.profiles.Current(ctx, userID)
		if err != nil {
			s.log(ctx).Warn("load profile after update failed", zap.Error(err))
			s.profiles.Forget(userID)
			return
		}
		u = current
	}

	u.ID = userID
	u.BankID = bankID
	u.AccountNumber = accountNumber
	if err := s.profiles.Save(ctx, u); err != nil {
		s.log(ctx).Warn("save profile failed", zap.Error(err))
		s.profiles.Forget(userID)
	}
}

func (s *service) loadAccounts(ctx context.Context, userID string) ([]Account, error) {
	docs, err := s.store.List(ctx, document.CollectionAccounts, document.Filter{OwnerID: userID, OrderDesc: true})
	if err != nil {
		return nil, err
	}

	out := make([]Account, 0, len(docs))
	for _, doc := range docs {
		a, err := document.Decode[Account](doc)
		if err != nil {
			s.log(ctx).Warn("skip malformed account", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		a.ID = doc.ID
		out = append(out, a)
	}
	return out, nil
}

// storeDefault upserts target by bank and number and clears the default
// flag on every other account.
func (s *service) storeDefault(ctx context.Context, userID string, target Account) (Account, error) {
	accounts, err := s.loadAccounts(ctx, userID)
	if err != nil {
		s.log(ctx).Error("list accounts failed", zap.Error(err))
		return Account{}, accountErrors.ErrSaveFailed
	}

	var saved *Account
	for i := range accounts {
		a := accounts[i]
		switch {
		case a.matches(target.BankID, target.AccountNumber):
			a.IsDefault = true
			a.AccountName = target.AccountName
			if target.BankName != "" {
				a.BankName = target.BankName
			}
			saved = &a
		case a.IsDefault:
			a.IsDefault = false
		default:
			continue
		}
		if err := s.update(ctx, a); err != nil {
			return Account{}, err
		}
	}
	if saved != nil {
		return *saved, nil
	}

	target.IsDefault = true
	target.CreatedAt = s.now().UTC()
	doc, err := s.store.Add(ctx, document.CollectionAccounts, userID, target)
	if err != nil {
		s.log(ctx).Error("add account failed", zap.Error(err))
		return Account{}, accountErrors.ErrSaveFailed
	}
	target.ID = doc.ID
	return target, nil
}

func (s *service) update(ctx context.Context, a Account) error {
	id := a.ID
	a.ID = ""
	if err := s.store.Update(ctx, document.CollectionAccounts, id, a); err != nil {
		s.log(ctx).Error("update account failed", zap.String("id", id), zap.Error(err))
		return accountErrors.ErrSaveFailed
	}
	return nil
}

func (s *service) ListAccounts(ctx context.Context, userID string) ([]AccountResponse, error) {
	accounts, err := s.loadAccounts(ctx, userID)
	if err != nil {
		s.log(ctx).Error("list accounts failed", zap.Error(err))
		return nil, err
	}

	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, mapToResponse(a))
	}
	return out, nil
}

func (s *service) SetDefault(ctx context.Context, userID, id string) (AccountResponse, error) {
	doc, err := s.store.GetByID(ctx, document.CollectionAccounts, id)
	if errors.Is(err, documentErrors.ErrNotFound) || (err == nil && doc.OwnerID != userID) {
		return AccountResponse{}, accountErrors.ErrAccountNotFound
	}
	if err != nil {
		return AccountResponse{}, err
	}

	a, err := document.Decode[Account](doc)
	if err != nil {
		return AccountResponse{}, err
	}
	if a.IsDefault {
		a.ID = id
		return mapToResponse(a), nil
	}

	updated, err := s.api.UpdateMe(ctx, upstream.UpdateMeRequest{BankID: a.BankID, AccountNumber: a.AccountNumber})
	if err != nil {
		return AccountResponse{}, s.mapUpdateError(ctx, err)
	}
	s.syncProfile(ctx, userID, updated, a.BankID, a.AccountNumber)

	saved, err := s.storeDefault(ctx, userID, a)
	if err != nil {
		return AccountResponse{}, err
	}
	return mapToResponse(saved), nil
}

func (s *service) SearchBanks(ctx context.Context, userID string, req BanksRequest) ([]BankResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	u, err := s.profiles.Current(ctx, userID)
	if err != nil {
		s.log(ctx).Error("load profile for banks failed", zap.Error(err))
		return nil, accountErrors.ErrProfileUnavailable
	}
	if u.Country.ID == "" {
		return []BankResponse{}, nil
	}

	cacheKey := GetBanksCacheKey(u.Country.ID, page, req.Search)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var banks []BankResponse
			if err := json.Unmarshal(cached, &banks); err == nil {
				return banks, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		raw, err := s.api.Banks(ctx, u.Country.ID, strings.TrimSpace(req.Search), page, BanksPerPage)
		if err != nil {
			return nil, err
		}

		banks := mapBanks(raw)
		if s.rdb != nil {
			if payload, err := json.Marshal(banks); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, banksTTL).Err(); err != nil {
					s.log(ctx).Warn("cache banks failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return banks, nil
	})
	if err != nil {
		s.log(ctx).Error("fetch banks failed", zap.Error(err))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperror.Wrap(err, apperror.ErrUpstream.Code, apperror.ErrUpstream.Message, apperror.ErrUpstream.HTTPStatus)
	}
	return v.([]BankResponse), nil
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}
