package models

import "time"

// ProfileView is the read-optimised projection of a user.
// It never exposes PasswordHash or SSN.
type ProfileView struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	CheckingBalance float64   `json:"checkingBalance"`
	SavingsBalance  float64   `json:"savingsBalance"`
	CreatedAt       time.Time `json:"createdTimestamp"`
	UpdatedAt       time.Time `json:"updatedTimestamp"`
}

// Transaction directions as seen by the requesting user.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// TransactionView is a transaction as presented to one of its two parties.
// Direction and SignedAmount are derived per viewer: a sent transfer shows
// a negative SignedAmount, a received one shows it positive.
type TransactionView struct {
	ID              string    `json:"id"`
	Amount          float64   `json:"amount"`
	SignedAmount    float64   `json:"signedAmount"`
	Direction       string    `json:"direction"`
	Description     string    `json:"description,omitempty"`
	Type            string    `json:"type"`
	SenderEmail     string    `json:"senderEmail"`
	ReceiverEmail   string    `json:"receiverEmail"`
	SenderAccount   string    `json:"senderAccount"`
	ReceiverAccount string    `json:"receiverAccount"`
	CreatedAt       time.Time `json:"createdTimestamp"`
}

// AuthEventView is one entry of the authentication history, newest first.
type AuthEventView struct {
	Timestamp time.Time `json:"timestamp"`
}
