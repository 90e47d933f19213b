package account

import "time"

// Account is a saved payout account. The default one mirrors the bank
// details on the user's profile.
type Account struct {
	ID            string    `json:"id,omitempty"`
	BankID        string    `json:"bankId"`
	BankName      string    `json:"bankName"`
	AccountNumber string    `json:"accountNumber"`
	AccountName   string    `json:"accountName"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (a Account) matches(bankID, accountNumber string) bool {
	return a.BankID == bankID && a.AccountNumber == accountNumber
}
