package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Shyam4142/Village-Vault/internal/models"
)

// LedgerRepository performs the atomic transfer commit: sender debit,
// recipient credit and transaction append all inside one SQL transaction.
// No partial application is observable by any concurrent reader.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// balanceColumn maps an account bucket to its column. Bucket names are
// validated at the API boundary; anything else is a programming error.
func balanceColumn(accountType string) (string, error) {
	switch accountType {
	case models.AccountChecking:
		return "checking_balance", nil
	case models.AccountSavings:
		return "savings_balance", nil
	default:
		return "", fmt.Errorf("unknown account type %q", accountType)
	}
}

// Commit applies the three writes of a transfer as one unit. The debit is
// conditional on the balance still covering the amount, so a transfer that
// raced past the service-level funds check is rejected here instead of
// driving the balance negative. Returns models.ErrInsufficientFunds when the
// condition fails; any other error means nothing was applied.
func (r *LedgerRepository) Commit(ctx context.Context, record *models.Transaction) error {
	debitCol, err := balanceColumn(record.SenderAccount)
	if err != nil {
		return err
	}
	creditCol, err := balanceColumn(record.ReceiverAccount)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer tx.Rollback()

	debitQuery := fmt.Sprintf(`
		UPDATE users
		SET %s = %s - $2, updated_at = NOW()
		WHERE id = $1 AND %s >= $2
	`, debitCol, debitCol, debitCol)
	result, err := tx.ExecContext(ctx, debitQuery, record.SenderID, record.Amount)
	if err != nil {
		return fmt.Errorf("failed to debit sender: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrInsufficientFunds
	}

	creditQuery := fmt.Sprintf(`
		UPDATE users
		SET %s = %s + $2, updated_at = NOW()
		WHERE id = $1
	`, creditCol, creditCol)
	result, err = tx.ExecContext(ctx, creditQuery, record.ReceiverID, record.Amount)
	if err != nil {
		return fmt.Errorf("failed to credit recipient: %w", err)
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrRecipientNotFound
	}

	insertQuery := `
		INSERT INTO transactions (id, amount, description, type, sender_id, receiver_id,
								  sender_email, receiver_email, sender_account, receiver_account, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		record.ID, record.Amount, nullString(record.Description), record.Type,
		record.SenderID, record.ReceiverID, record.SenderEmail, record.ReceiverEmail,
		record.SenderAccount, record.ReceiverAccount,
	).Scan(&record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
