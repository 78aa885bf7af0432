package query

import (
	"context"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/models"
	"github.com/Shyam4142/Village-Vault/internal/repository"
)

// TransactionQueryService serves transaction reads. A record is only visible
// to its sender or its receiver, and each view carries the direction and
// signed amount as seen by the requesting user.
type TransactionQueryService struct {
	readRepo *repository.TransactionReadRepository
}

func NewTransactionQueryService(readRepo *repository.TransactionReadRepository) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

func (s *TransactionQueryService) GetTransaction(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	record, err := s.readRepo.GetByID(context.Background(), q.TransactionID)
	if err != nil {
		return nil, err
	}
	if record.SenderEmail != q.RequestingEmail && record.ReceiverEmail != q.RequestingEmail {
		// Same response as a missing record, so IDs can't be probed.
		return nil, models.ErrTransactionNotFound
	}
	return recordToView(record, q.RequestingEmail), nil
}

// ListTransactions returns everything the user sent or received, newest first.
func (s *TransactionQueryService) ListTransactions(q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	records, err := s.readRepo.ListByEmail(context.Background(), q.Email)
	if err != nil {
		return nil, err
	}
	views := make([]models.TransactionView, 0, len(records))
	for i := range records {
		views = append(views, *recordToView(&records[i], q.Email))
	}
	return views, nil
}

// recordToView derives the per-viewer projection. The sender of an internal
// transfer is also its receiver; such records present as sent.
func recordToView(t *models.Transaction, viewerEmail string) *models.TransactionView {
	view := &models.TransactionView{
		ID:              t.ID,
		Amount:          t.Amount,
		Description:     t.Description,
		Type:            t.Type,
		SenderEmail:     t.SenderEmail,
		ReceiverEmail:   t.ReceiverEmail,
		SenderAccount:   t.SenderAccount,
		ReceiverAccount: t.ReceiverAccount,
		CreatedAt:       t.CreatedAt,
	}
	if t.SenderEmail == viewerEmail {
		view.Direction = models.DirectionSent
		view.SignedAmount = -t.Amount
	} else {
		view.Direction = models.DirectionReceived
		view.SignedAmount = t.Amount
	}
	return view
}
