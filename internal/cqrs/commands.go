package cqrs

type RegisterUserCommand struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	SSN         string
	DateOfBirth string
}

// TransferCommand carries everything ExecuteTransfer needs. CallerID and
// CallerEmail come from the verified token, never from the request body.
type TransferCommand struct {
	CallerID       string
	CallerEmail    string
	Amount         float64
	Description    string
	FromAccount    string
	ToAccount      string
	External       bool
	RecipientEmail string
}

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshTokenCommand struct {
	Token string
}
