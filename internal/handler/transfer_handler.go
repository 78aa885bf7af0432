package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/middleware"
	"github.com/Shyam4142/Village-Vault/internal/models"
)

// TransferCommander defines the write-side operations used by TransferHandler.
type TransferCommander interface {
	ExecuteTransfer(context.Context, cqrs.TransferCommand) (*models.Transaction, error)
}

// TransactionQuerier defines the read-side operations used by TransferHandler.
type TransactionQuerier interface {
	GetTransaction(cqrs.GetTransactionQuery) (*models.TransactionView, error)
	ListTransactions(cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
}

type TransferHandler struct {
	commands TransferCommander
	queries  TransactionQuerier
}

type CreateTransferRequest struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Description    string  `json:"description" validate:"max=50"`
	FromAccount    string  `json:"fromAccount" validate:"required,oneof=checking savings"`
	ToAccount      string  `json:"toAccount" validate:"required,oneof=checking savings"`
	External       bool    `json:"external"`
	RecipientEmail string  `json:"recipientEmail" validate:"required_if=External true,omitempty,email"`
}

type ListTransactionsResponse struct {
	Transactions []any `json:"transactions"`
}

func NewTransferHandler(commands TransferCommander, queries TransactionQuerier) *TransferHandler {
	return &TransferHandler{commands: commands, queries: queries}
}

func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	email, _ := middleware.GetEmail(c)

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	record, err := h.commands.ExecuteTransfer(c.Request.Context(), cqrs.TransferCommand{
		CallerID:       userID,
		CallerEmail:    email,
		Amount:         req.Amount,
		Description:    req.Description,
		FromAccount:    req.FromAccount,
		ToAccount:      req.ToAccount,
		External:       req.External,
		RecipientEmail: req.RecipientEmail,
	})
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// respondTransferError maps domain error kinds to HTTP statuses. Messages
// stay human-readable; no internals leak to the caller.
func respondTransferError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		middleware.RespondWithError(c, http.StatusUnauthorized, "You must be logged in to perform a transfer")
	case errors.Is(err, models.ErrInvalidAmount):
		middleware.RespondWithError(c, http.StatusBadRequest, "Please enter a valid transfer amount")
	case errors.Is(err, models.ErrDescriptionTooLong):
		middleware.RespondWithError(c, http.StatusBadRequest, "Description must be 50 characters or fewer")
	case errors.Is(err, models.ErrSameAccountTransfer):
		middleware.RespondWithError(c, http.StatusBadRequest, "You cannot transfer money to the same account")
	case errors.Is(err, models.ErrRecipientNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Recipient not found")
	case errors.Is(err, models.ErrInsufficientFunds):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Insufficient funds")
	case errors.Is(err, models.ErrCommitTimeout):
		middleware.RespondWithError(c, http.StatusGatewayTimeout, "Transfer status unknown, check your transaction history")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to process transfer")
	}
}

func (h *TransferHandler) ListTransactions(c *gin.Context) {
	email, _ := middleware.GetEmail(c)

	views, err := h.queries.ListTransactions(cqrs.ListTransactionsQuery{Email: email})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	transactionsAny := make([]any, len(views))
	for i, v := range views {
		transactionsAny[i] = v
	}
	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: transactionsAny})
}

func (h *TransferHandler) GetTransaction(c *gin.Context) {
	transactionID := c.Param("transactionId")
	email, _ := middleware.GetEmail(c)

	view, err := h.queries.GetTransaction(cqrs.GetTransactionQuery{
		TransactionID:   transactionID,
		RequestingEmail: email,
	})
	if err != nil {
		if errors.Is(err, models.ErrTransactionNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, view)
}
