package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PayrollHistory returns one page of the caller's payroll history. meta is
// nil when the API did not send pagination.
func (c *Client) PayrollHistory(ctx context.Context, page, limit int) ([]Payroll, *PageMeta, error) {
	query := map[string]string{"limit": strconv.Itoa(limit)}
	if page > 0 {
		query["page"] = strconv.Itoa(page)
	}

	var (
		items []Payroll
		meta  *PageMeta
	)
	if err := c.do(ctx, http.MethodGet, "employee-payrolls/payroll-history", query, nil, &items, &meta); err != nil {
		return nil, nil, err
	}
	return items, meta, nil
}

func (c *Client) Payslip(ctx context.Context, id string) (Payroll, error) {
	var out Payroll
	err := c.do(ctx, http.MethodGet, "employee-payrolls/payslip/"+url.PathEscape(id), nil, nil, &out, nil)
	return out, err
}

func (c *Client) ResolveAccount(ctx context.Context, bankID, accountNumber string) (string, error) {
	var out ResolveAccountResponse
	err := c.do(ctx, http.MethodPost, "payments/resolve-account", nil, ResolveAccountRequest{
		Provider:      c.provider,
		BankID:        bankID,
		AccountNumber: accountNumber,
	}, &out, nil)
	return out.AccountName, err
}

func (c *Client) Banks(ctx context.Context, countryID, search string, page, limit int) ([]Bank, error) {
	query := map[string]string{
		"page":   strconv.Itoa(page),
		"limit":  strconv.Itoa(limit),
		"search": search,
	}

	var out []Bank
	err := c.do(ctx, http.MethodGet, "payouts/"+url.PathEscape(countryID)+"/banks", query, nil, &out, nil)
	return out, err
}

func (c *Client) GetMe(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "users/me", nil, nil, &out, nil)
	return out, err
}

func (c *Client) UpdateMe(ctx context.Context, req UpdateMeRequest) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "users/me", nil, req, &out, nil)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var out Dashboard
	err := c.do(ctx, http.MethodGet, "dashboards/employees", nil, nil, &out, nil)
	return out, err
}
