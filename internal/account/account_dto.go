package account

import "go-ess/internal/upstream"

type DraftRequest struct {
	BankID        string `json:"bankId"`
	AccountNumber string `json:"accountNumber"`
}

type SaveRequest struct {
	BankID        string `json:"bankId" binding:"required"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber" binding:"required,account_number"`
}

type BanksRequest struct {
	Search string `form:"search"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
}

type AccountResponse struct {
	ID            string `json:"id"`
	BankID        string `json:"bankId"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	IsDefault     bool   `json:"isDefault"`
}

type BankResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func mapToResponse(a Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		BankID:        a.BankID,
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		AccountName:   a.AccountName,
		IsDefault:     a.IsDefault,
	}
}

func mapBanks(banks []upstream.Bank) []BankResponse {
	out := make([]BankResponse, 0, len(banks))
	for _, b := range banks {
		out = append(out, BankResponse{ID: b.ID, Name: b.Name, Code: b.Code})
	}
	return out
}
