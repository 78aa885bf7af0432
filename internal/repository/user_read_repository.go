package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Shyam4142/Village-Vault/internal/models"
	sharedredis "github.com/Shyam4142/Village-Vault/internal/redis"
)

const profileViewKeyPrefix = "profile:view:"

// UserReadRepository serves profile/balance reads. It treats Redis as the
// primary read store and falls back to PostgreSQL transparently, warming the
// cache on every cold read.
type UserReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.ProfileView]
}

func NewUserReadRepository(db *sql.DB, redisClient *goredis.Client) *UserReadRepository {
	return &UserReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.ProfileView](redisClient, 0),
	}
}

// GetProfile returns a ProfileView, trying Redis first then PostgreSQL.
func (r *UserReadRepository) GetProfile(ctx context.Context, userID string) (*models.ProfileView, error) {
	cacheKey := profileViewKeyPrefix + userID

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `
		SELECT id, email, first_name, last_name, checking_balance, savings_balance, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var view models.ProfileView
	pgErr := r.db.QueryRow(query, userID).Scan(
		&view.ID, &view.Email, &view.FirstName, &view.LastName,
		&view.CheckingBalance, &view.SavingsBalance,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if pgErr == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if pgErr != nil {
		return nil, fmt.Errorf("failed to get profile: %w", pgErr)
	}

	// Warm the cache
	r.CacheProfileView(ctx, &view)
	return &view, nil
}

// CacheProfileView stores or refreshes the Redis read model for a user.
func (r *UserReadRepository) CacheProfileView(ctx context.Context, view *models.ProfileView) {
	r.cache.Set(ctx, profileViewKeyPrefix+view.ID, view)
}

// InvalidateProfileView drops the cached view. Called after a balance
// mutation so the next read rebuilds from the write store.
func (r *UserReadRepository) InvalidateProfileView(ctx context.Context, userID string) {
	r.cache.Delete(ctx, profileViewKeyPrefix+userID)
}
