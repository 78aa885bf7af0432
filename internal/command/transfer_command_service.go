package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/events"
	"github.com/Shyam4142/Village-Vault/internal/models"
	"github.com/Shyam4142/Village-Vault/internal/repository"
	"github.com/Shyam4142/Village-Vault/internal/utils"
)

// MaxDescriptionLength bounds the transfer description. Longer descriptions
// are rejected, not truncated, so the persisted record always matches what
// the sender submitted.
const MaxDescriptionLength = 50

// commitTimeout bounds the ledger round-trip. On expiry the outcome is
// ambiguous (the commit may have applied) and is surfaced as
// models.ErrCommitTimeout so callers reconcile via history instead of
// retrying.
const commitTimeout = 5 * time.Second

// AccountStore resolves users by ID (the caller) and by email (external
// transfer recipients).
type AccountStore interface {
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// Ledger applies the three writes of a transfer as one atomic unit.
type Ledger interface {
	Commit(ctx context.Context, record *models.Transaction) error
}

// EventPublisher emits domain events after a successful commit.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransferCommandService validates and executes balance-conserving transfers.
// It is the sole writer of account balances; validation failures are detected
// before any mutation is attempted and a failed commit leaves no trace.
type TransferCommandService struct {
	store     AccountStore
	ledger    Ledger
	publisher EventPublisher

	userReadRepo *repository.UserReadRepository
	txReadRepo   *repository.TransactionReadRepository
}

func NewTransferCommandService(
	store AccountStore,
	ledger Ledger,
	publisher EventPublisher,
	userReadRepo *repository.UserReadRepository,
	txReadRepo *repository.TransactionReadRepository,
) *TransferCommandService {
	return &TransferCommandService{
		store:        store,
		ledger:       ledger,
		publisher:    publisher,
		userReadRepo: userReadRepo,
		txReadRepo:   txReadRepo,
	}
}

// ExecuteTransfer runs the validation sequence in order (first failing check
// wins) and then commits debit, credit and record append atomically.
func (s *TransferCommandService) ExecuteTransfer(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
	if cmd.CallerID == "" {
		return nil, models.ErrUnauthenticated
	}
	if cmd.Amount <= 0 || math.IsNaN(cmd.Amount) || math.IsInf(cmd.Amount, 0) {
		return nil, models.ErrInvalidAmount
	}
	if len(cmd.Description) > MaxDescriptionLength {
		return nil, models.ErrDescriptionTooLong
	}
	if !cmd.External && cmd.FromAccount == cmd.ToAccount {
		return nil, models.ErrSameAccountTransfer
	}

	recipientEmail := cmd.CallerEmail
	recipientID := cmd.CallerID
	if cmd.External {
		recipient, err := s.store.GetByEmail(cmd.RecipientEmail)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				return nil, models.ErrRecipientNotFound
			}
			return nil, err
		}
		recipientEmail = recipient.Email
		recipientID = recipient.ID
	}

	sender, err := s.store.GetByID(cmd.CallerID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, err
	}
	if cmd.Amount > sender.Balance(cmd.FromAccount) {
		return nil, models.ErrInsufficientFunds
	}

	record := &models.Transaction{
		ID:              utils.GenerateID("tan"),
		Amount:          cmd.Amount,
		Description:     cmd.Description,
		Type:            transferType(cmd.External),
		SenderID:        sender.ID,
		ReceiverID:      recipientID,
		SenderEmail:     sender.Email,
		ReceiverEmail:   recipientEmail,
		SenderAccount:   cmd.FromAccount,
		ReceiverAccount: cmd.ToAccount,
	}

	commitCtx, cancel := context.WithTimeout(ctx, commitTimeout)
	defer cancel()
	if err := s.ledger.Commit(commitCtx, record); err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientFunds),
			errors.Is(err, models.ErrRecipientNotFound):
			return nil, err
		case errors.Is(err, context.DeadlineExceeded):
			return nil, models.ErrCommitTimeout
		default:
			return nil, fmt.Errorf("%w: %v", models.ErrCommitFailed, err)
		}
	}

	if err := s.publisher.Publish(ctx, events.TransferEventsStream, events.TransferCompleted, events.TransferCompletedEvent{
		TransactionID: record.ID,
		SenderID:      record.SenderID,
		ReceiverID:    record.ReceiverID,
		Amount:        record.Amount,
		Type:          record.Type,
	}); err != nil {
		log.Printf("Failed to publish transfer.completed event: %v", err)
	}
	return record, nil
}

// HandleTransferEvent is the Redis stream subscriber handler. It refreshes
// the read models touched by a committed transfer: both parties' profile
// views are invalidated and the transaction record is pulled into the cache.
func (s *TransferCommandService) HandleTransferEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransferCompleted {
		return nil
	}
	dataBytes, _ := json.Marshal(event.Data)
	var data events.TransferCompletedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal transfer.completed event: %w", err)
	}

	s.userReadRepo.InvalidateProfileView(ctx, data.SenderID)
	if data.ReceiverID != data.SenderID {
		s.userReadRepo.InvalidateProfileView(ctx, data.ReceiverID)
	}

	// GetByID warms the Redis entry for the freshly committed record.
	if _, err := s.txReadRepo.GetByID(ctx, data.TransactionID); err != nil {
		return fmt.Errorf("failed to warm transaction cache: %w", err)
	}
	return nil
}

func transferType(external bool) string {
	if external {
		return models.TransferExternal
	}
	return models.TransferInternal
}
