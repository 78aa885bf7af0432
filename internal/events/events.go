package events

import "time"

// Event types
const (
	UserRegistered    = "user.registered"
	LoginRecorded     = "login.recorded"
	TransferCompleted = "transfer.completed"
)

// Stream names
const (
	UserEventsStream     = "user.events"
	AuthEventsStream     = "auth.events"
	TransferEventsStream = "transfer.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserRegisteredEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// LoginRecordedEvent is emitted on every successful login. The subscriber
// appends it to the authentication history consumed by the fraud view.
type LoginRecordedEvent struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// TransferCompletedEvent is emitted after the ledger commit has applied.
// Consumers refresh read models; the balances themselves are already final.
type TransferCompletedEvent struct {
	TransactionID string  `json:"transactionId"`
	SenderID      string  `json:"senderId"`
	ReceiverID    string  `json:"receiverId"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
}
