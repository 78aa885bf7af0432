package models

import "time"

// Account buckets every user holds. There are exactly two; there is no
// product catalogue.
const (
	AccountChecking = "checking"
	AccountSavings  = "savings"
)

// Transfer kinds.
const (
	TransferInternal = "internal_transfer"
	TransferExternal = "external_transfer"
)

type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	SSN             string    `json:"-"`
	DateOfBirth     string    `json:"dateOfBirth"`
	CheckingBalance float64   `json:"checkingBalance"`
	SavingsBalance  float64   `json:"savingsBalance"`
	CreatedAt       time.Time `json:"createdTimestamp"`
	UpdatedAt       time.Time `json:"updatedTimestamp"`
}

// Balance returns the balance of the named bucket.
func (u *User) Balance(accountType string) float64 {
	if accountType == AccountSavings {
		return u.SavingsBalance
	}
	return u.CheckingBalance
}

// Transaction is the immutable record appended by a successful transfer.
// Rows are never updated or deleted after insertion.
type Transaction struct {
	ID              string    `json:"id"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description,omitempty"`
	Type            string    `json:"type"`
	SenderID        string    `json:"senderId"`
	ReceiverID      string    `json:"receiverId"`
	SenderEmail     string    `json:"senderEmail"`
	ReceiverEmail   string    `json:"receiverEmail"`
	SenderAccount   string    `json:"senderAccount"`
	ReceiverAccount string    `json:"receiverAccount"`
	CreatedAt       time.Time `json:"createdTimestamp"`
}

// AuthEvent is one successful login, kept for the fraud-detection view.
type AuthEvent struct {
	UserID    string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}
