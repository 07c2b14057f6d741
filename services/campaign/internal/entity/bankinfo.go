package entity

import "time"

type BankInfoKind string

const (
	BankInfoKindMobileMoney BankInfoKind = "mobile_money"
	BankInfoKindBankAccount BankInfoKind = "bank_account"
)

// BankInfo is a payout destination a campaign owner registers for withdrawal
// requests.
type BankInfo struct {
	ID            string       `json:"id"`
	OwnerID       string       `json:"owner_id"`
	Kind          BankInfoKind `json:"kind"`
	Label         string       `json:"label"`
	AccountName   string       `json:"account_name"`
	AccountNumber string       `json:"account_number"`
	Provider      string       `json:"provider"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
