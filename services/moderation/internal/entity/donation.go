package entity

import "time"

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
)

// Terminal reports whether no further transition is permitted from s.
func (s DonationStatus) Terminal() bool {
	return s == DonationStatusCompleted || s == DonationStatusFailed
}

type PaymentMethod string

const (
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodBankAccount PaymentMethod = "bank_account"
	PaymentMethodEspece      PaymentMethod = "espece"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodMobileMoney, PaymentMethodBankAccount, PaymentMethodEspece:
		return true
	}
	return false
}

// Donation amounts are in Ariary. A donation is created pending by a public
// submission and only a moderator moves it to a terminal status.
type Donation struct {
	ID            string         `json:"id"`
	CampaignID    string         `json:"campaign_id"`
	Amount        float64        `json:"amount"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	Message       string         `json:"message,omitempty"`
	DonorName     string         `json:"donor_name,omitempty"`
	IsAnonymous   bool           `json:"is_anonymous"`
	Status        DonationStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
