package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Shyam4142/Village-Vault/internal/models"
	sharedredis "github.com/Shyam4142/Village-Vault/internal/redis"
)

const transactionKeyPrefix = "transaction:"

// TransactionReadRepository handles all read operations for transactions.
// Single records are cached in Redis (they are immutable, so entries never
// go stale); listings always come from PostgreSQL.
type TransactionReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.Transaction]
}

func NewTransactionReadRepository(db *sql.DB, redisClient *goredis.Client) *TransactionReadRepository {
	return &TransactionReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.Transaction](redisClient, 0),
	}
}

// GetByID returns a transaction by attempting Redis first, then PostgreSQL.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	cacheKey := transactionKeyPrefix + id
	if record, ok := r.cache.Get(ctx, cacheKey); ok {
		return record, nil
	}

	query := `
		SELECT id, amount, description, type, sender_id, receiver_id,
			   sender_email, receiver_email, sender_account, receiver_account, created_at
		FROM transactions
		WHERE id = $1
	`
	record, err := scanTransaction(r.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	// Warm the cache
	r.CacheTransaction(ctx, record)
	return record, nil
}

// ListByEmail returns every transaction the user sent or received, newest first.
func (r *TransactionReadRepository) ListByEmail(ctx context.Context, email string) ([]models.Transaction, error) {
	query := `
		SELECT id, amount, description, type, sender_id, receiver_id,
			   sender_email, receiver_email, sender_account, receiver_account, created_at
		FROM transactions
		WHERE sender_email = $1 OR receiver_email = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var records []models.Transaction
	for rows.Next() {
		record, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// CacheTransaction stores the immutable record in Redis.
// Called by the command service immediately after a successful commit.
func (r *TransactionReadRepository) CacheTransaction(ctx context.Context, record *models.Transaction) {
	r.cache.Set(ctx, transactionKeyPrefix+record.ID, record)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var record models.Transaction
	var description sql.NullString

	err := row.Scan(
		&record.ID, &record.Amount, &description, &record.Type,
		&record.SenderID, &record.ReceiverID,
		&record.SenderEmail, &record.ReceiverEmail,
		&record.SenderAccount, &record.ReceiverAccount,
		&record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	if description.Valid {
		record.Description = description.String
	}
	return &record, nil
}
