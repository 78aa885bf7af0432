package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Shyam4142/Village-Vault/internal/models"
)

// UserWriteRepository handles all state-mutating operations for users.
// It operates exclusively against the PostgreSQL write store (source of truth).
type UserWriteRepository struct {
	db *sql.DB
}

func NewUserWriteRepository(db *sql.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, ssn, date_of_birth,
						   checking_balance, savings_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.SSN, user.DateOfBirth, user.CheckingBalance, user.SavingsBalance,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		// Email carries a UNIQUE constraint; a duplicate registration is
		// an integrity error.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserWriteRepository) GetByID(id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, ssn, date_of_birth,
			   checking_balance, savings_balance, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(query, id)
}

// GetByEmail resolves the recipient of an external transfer. Email is UNIQUE
// so at most one row can match.
func (r *UserWriteRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, ssn, date_of_birth,
			   checking_balance, savings_balance, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(query, email)
}

func (r *UserWriteRepository) scanUser(query, arg string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.SSN, &user.DateOfBirth, &user.CheckingBalance, &user.SavingsBalance,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
