package payslip

import (
	"context"
	"net/http"
	"time"

	payslipErrors "go-ess/internal/payslip/errors"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/shared/money"
	"go-ess/internal/shared/response"
	"go-ess/internal/upstream"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	PayslipDetailPrefix = "payslips:detail:"
	ItemsPerPage        = 10
	detailTTL           = 10 * time.Minute
)

func GetPayslipDetailKey(userID, id string) string {
	return PayslipDetailPrefix + userID + ":" + id
}

// PayrollSource is the slice of the payroll API this package reads.
type PayrollSource interface {
	PayrollHistory(ctx context.Context, page, limit int) ([]upstream.Payroll, *upstream.PageMeta, error)
	Payslip(ctx context.Context, id string) (upstream.Payroll, error)
}

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	GetPayslip(ctx context.Context, userID, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, page int) ([]PayslipListItem, response.PaginationMeta)
	RecentPayslips(ctx context.Context, limit int) ([]PayslipListItem, error)
	RenderPDF(ctx context.Context, userID, id string) (PDFFile, error)
}

type service struct {
	source    PayrollSource
	rdb       *redis.Client
	sf        *singleflight.Group
	formatter *money.Formatter
	logger    *zap.Logger
}

func NewService(source PayrollSource, rdb *redis.Client, formatter *money.Formatter, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if formatter == nil {
		formatter = money.NewFormatter(money.DefaultLocale, money.DefaultCurrency)
	}

	return &service{
		source:    source,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		formatter: formatter,
		logger:    l.Named("payslip.service"),
	}
}

func (s *service) GetPayslip(ctx context.Context, userID, id string) (PayslipResponse, error) {
	if id == "" {
		return PayslipResponse{}, payslipErrors.ErrPayslipIDRequired
	}

	cacheKey := GetPayslipDetailKey(userID, id)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp PayslipResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		derived, err := s.derive(ctx, id)
		if err != nil {
			return nil, err
		}

		resp := mapToResponse(derived)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, detailTTL).Err(); err != nil {
					s.log(ctx).Warn("cache payslip failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return PayslipResponse{}, err
	}

	return v.(PayslipResponse), nil
}

func (s *service) derive(ctx context.Context, id string) (DerivedPayslip, error) {
	raw, err := s.source.Payslip(ctx, id)
	if err != nil {
		return DerivedPayslip{}, s.mapUpstreamError(ctx, err)
	}
	return Derive(RecordFromUpstream(raw)), nil
}

// ListPayslips never fails: an upstream error yields an empty page with
// zero metadata.
func (s *service) ListPayslips(ctx context.Context, page int) ([]PayslipListItem, response.PaginationMeta) {
	if page < 1 {
		page = 1
	}

	items, meta, err := s.source.PayrollHistory(ctx, page, ItemsPerPage)
	if err != nil {
		s.log(ctx).Error("fetch payslips failed", zap.Int("page", page), zap.Error(err))
		return []PayslipListItem{}, response.EmptyPaginationMeta(page, ItemsPerPage)
	}

	out := make([]PayslipListItem, 0, len(items))
	for _, item := range items {
		out = append(out, mapToListItem(item, s.formatter))
	}

	if meta != nil {
		return out, response.PaginationMeta{
			Total:         meta.Total,
			PerPage:       meta.PerPage,
			PageCount:     meta.PageCount,
			Page:          meta.Page,
			PagingCounter: meta.PagingCounter,
			HasPrevPage:   meta.HasPrevPage,
			HasNextPage:   meta.HasNextPage,
			PreviousPage:  meta.PreviousPage,
			NextPage:      meta.NextPage,
		}
	}

	// No meta from the API: assume the page holds everything.
	return out, response.NewPaginationMeta(int64(len(out)), page, ItemsPerPage)
}

func (s *service) RecentPayslips(ctx context.Context, limit int) ([]PayslipListItem, error) {
	items, _, err := s.source.PayrollHistory(ctx, 0, limit)
	if err != nil {
		return nil, s.mapUpstreamError(ctx, err)
	}

	out := make([]PayslipListItem, 0, len(items))
	for _, item := range items {
		out = append(out, mapToListItem(item, s.formatter))
	}
	return out, nil
}

func (s *service) RenderPDF(ctx context.Context, userID, id string) (PDFFile, error) {
	resp, err := s.GetPayslip(ctx, userID, id)
	if err != nil {
		return PDFFile{}, err
	}

	content, err := renderPayslipPDF(resp, s.formatter)
	if err != nil {
		s.log(ctx).Error("render payslip pdf failed", zap.String("payslip_id", id), zap.Error(err))
		return PDFFile{}, payslipErrors.ErrRenderPDF
	}

	return PDFFile{Name: PDFName(resp.MonthYear), Content: content}, nil
}

func (s *service) mapUpstreamError(ctx context.Context, err error) error {
	if apiErr, ok := upstream.AsAPIError(err); ok {
		if apiErr.Status == http.StatusNotFound {
			return payslipErrors.ErrPayslipNotFound
		}
		return apperror.Wrap(err, apperror.CodeUpstream, apiErr.Error(), http.StatusBadGateway)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return apperror.Wrap(err, apperror.ErrUpstream.Code, apperror.ErrUpstream.Message, apperror.ErrUpstream.HTTPStatus)
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}
