package cqrs

// ---------- Profile queries ----------

// GetProfileQuery fetches the requesting user's own profile and balances.
type GetProfileQuery struct {
	UserID string
}

// ---------- Transaction queries ----------

// GetTransactionQuery fetches a single transaction. Only the sender or the
// receiver may see it.
type GetTransactionQuery struct {
	TransactionID   string
	RequestingEmail string
}

// ListTransactionsQuery fetches every transaction the user sent or received.
type ListTransactionsQuery struct {
	Email string
}

// ---------- Auth-event queries ----------

// ListAuthEventsQuery fetches the user's login history, newest first.
type ListAuthEventsQuery struct {
	UserID string
}
