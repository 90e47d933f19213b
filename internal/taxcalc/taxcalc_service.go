package taxcalc

import (
	"context"
	"time"

	"go-ess/internal/document"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/shared/money"
	taxErrors "go-ess/internal/taxcalc/errors"

	"go.uber.org/zap"
)

type Service interface {
	EstimatePAYE(req PAYERequest) (PAYEResponse, error)
	EstimateRentRelief(req RentReliefRequest) (RentReliefResponse, error)
	SaveClaim(ctx context.Context, userID string, in ClaimInput) (ClaimResponse, error)
	ListClaims(ctx context.Context, userID string) ([]ClaimResponse, error)
}

type service struct {
	store     document.Store
	formatter *money.Formatter
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(store document.Store, formatter *money.Formatter, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if formatter == nil {
		formatter = money.NewFormatter(money.DefaultLocale, money.DefaultCurrency)
	}
	return &service{
		store:     store,
		formatter: formatter,
		now:       time.Now,
		logger:    l.Named("taxcalc.service"),
	}
}

func (s *service) EstimatePAYE(req PAYERequest) (PAYEResponse, error) {
	fields := map[string]string{}
	if req.MonthlySalary.IsNegative() {
		fields["monthlySalary"] = "Monthly Salary must not be negative"
	}
	if req.AnnualRent.IsNegative() {
		fields["annualRent"] = "Annual Rent must not be negative"
	}
	if req.FreelanceIncome.IsNegative() {
		fields["freelanceIncome"] = "Freelance Income must not be negative"
	}
	if len(fields) > 0 {
		return PAYEResponse{}, apperror.NewValidationError(fields)
	}

	result := Estimate(EstimateInput(req))
	if !result.Computable() {
		return PAYEResponse{}, taxErrors.ErrNoIncome
	}
	return mapToPAYEResponse(result, s.formatter), nil
}

func (s *service) EstimateRentRelief(req RentReliefRequest) (RentReliefResponse, error) {
	if req.AnnualRent.IsNegative() {
		return RentReliefResponse{}, apperror.FieldError("annualRent", "Annual Rent must not be negative")
	}
	return mapToRentReliefResponse(RentRelief(req.AnnualRent), s.formatter), nil
}

func (s *service) SaveClaim(ctx context.Context, userID string, in ClaimInput) (ClaimResponse, error) {
	relief := RentRelief(in.AnnualRent)
	claim := Claim{
		UserID:       userID,
		FileName:     in.FileName,
		LandlordName: in.LandlordName,
		PaymentDate:  in.PaymentDate,
		AnnualRent:   relief.AnnualRent,
		Deduction:    relief.Deduction,
		TaxSavings:   relief.TaxSavings,
		CreatedAt:    s.now().UTC(),
	}

	if in.ClaimID != "" {
		claim.ID = in.ClaimID
		if err := s.store.Update(ctx, document.CollectionRentReliefClaim, in.ClaimID, claim); err != nil {
			s.log(ctx).Error("update rent relief claim failed", zap.String("claim_id", in.ClaimID), zap.Error(err))
			return ClaimResponse{}, taxErrors.ErrSaveClaim
		}
		s.log(ctx).Info("rent relief claim updated", zap.String("claim_id", claim.ID))
		return mapToClaimResponse(claim), nil
	}

	doc, err := s.store.Add(ctx, document.CollectionRentReliefClaim, userID, claim)
	if err != nil {
		s.log(ctx).Error("save rent relief claim failed", zap.String("user_id", userID), zap.Error(err))
		return ClaimResponse{}, taxErrors.ErrSaveClaim
	}
	claim.ID = doc.ID

	s.log(ctx).Info("rent relief claim saved", zap.String("claim_id", claim.ID))
	return mapToClaimResponse(claim), nil
}

func (s *service) ListClaims(ctx context.Context, userID string) ([]ClaimResponse, error) {
	docs, err := s.store.List(ctx, document.CollectionRentReliefClaim, document.Filter{OwnerID: userID, OrderDesc: true})
	if err != nil {
		return nil, err
	}

	out := make([]ClaimResponse, 0, len(docs))
	for _, doc := range docs {
		claim, err := document.Decode[Claim](doc)
		if err != nil {
			s.log(ctx).Warn("skip malformed claim", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		claim.ID = doc.ID
		out = append(out, mapToClaimResponse(claim))
	}
	return out, nil
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}
