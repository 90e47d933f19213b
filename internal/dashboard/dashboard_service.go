package dashboard

import (
	"context"

	"go-ess/internal/payslip"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/shared/money"
	"go-ess/internal/upstream"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const RecentPaymentsLimit = 5

type Source interface {
	Dashboard(ctx context.Context) (upstream.Dashboard, error)
}

type Service interface {
	// Get never fails; each section falls back to its zero value.
	Get(ctx context.Context) DashboardResponse
}

type service struct {
	source    Source
	payslips  payslip.Service
	formatter *money.Formatter
	logger    *zap.Logger
}

func NewService(source Source, payslips payslip.Service, formatter *money.Formatter, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if formatter == nil {
		formatter = money.NewFormatter(money.DefaultLocale, money.DefaultCurrency)
	}
	return &service{
		source:    source,
		payslips:  payslips,
		formatter: formatter,
		logger:    l.Named("dashboard.service"),
	}
}

func (s *service) Get(ctx context.Context) DashboardResponse {
	var (
		data   upstream.Dashboard
		recent []payslip.PayslipListItem
		g      errgroup.Group
	)

	g.Go(func() error {
		d, err := s.source.Dashboard(ctx)
		if err != nil {
			s.log(ctx).Error("fetch dashboard failed", zap.Error(err))
			return nil
		}
		data = d
		return nil
	})
	g.Go(func() error {
		items, err := s.payslips.RecentPayslips(ctx, RecentPaymentsLimit)
		if err != nil {
			s.log(ctx).Error("fetch recent payments failed", zap.Error(err))
			return nil
		}
		recent = items
		return nil
	})
	_ = g.Wait()

	return mapToResponse(data, recent, s.formatter)
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}
