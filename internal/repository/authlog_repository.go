package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Shyam4142/Village-Vault/internal/models"
)

const (
	authLogKeyPrefix = "authlog:"

	// AuthLogCapacity bounds the per-user login history. The read model is
	// a capped Redis list; reads never return more than this many entries.
	AuthLogCapacity = 100
)

// AuthLogRepository is the append-and-read log behind the fraud-detection
// view. Appends go to PostgreSQL (source of truth) and to a capped per-user
// Redis list (read model). It is not part of the transfer path.
type AuthLogRepository struct {
	db    *sql.DB
	redis *goredis.Client
}

func NewAuthLogRepository(db *sql.DB, redisClient *goredis.Client) *AuthLogRepository {
	return &AuthLogRepository{db: db, redis: redisClient}
}

// Append records one successful login.
func (r *AuthLogRepository) Append(ctx context.Context, userID string, at time.Time) error {
	query := `INSERT INTO auth_events (user_id, occurred_at) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, userID, at); err != nil {
		return fmt.Errorf("failed to append auth event: %w", err)
	}

	key := authLogKeyPrefix + userID
	pipe := r.redis.TxPipeline()
	pipe.LPush(ctx, key, at.UTC().Format(time.RFC3339Nano))
	pipe.LTrim(ctx, key, 0, AuthLogCapacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		// The write store has the event; the read model catches up on the
		// next cold read.
		log.Printf("Failed to update auth log read model for %s: %v", userID, err)
	}
	return nil
}

// List returns the user's most recent logins, newest first, from the Redis
// list with a PostgreSQL fallback.
func (r *AuthLogRepository) List(ctx context.Context, userID string) ([]models.AuthEventView, error) {
	key := authLogKeyPrefix + userID
	entries, err := r.redis.LRange(ctx, key, 0, AuthLogCapacity-1).Result()
	if err == nil && len(entries) > 0 {
		views := make([]models.AuthEventView, 0, len(entries))
		for _, entry := range entries {
			ts, parseErr := time.Parse(time.RFC3339Nano, entry)
			if parseErr != nil {
				continue
			}
			views = append(views, models.AuthEventView{Timestamp: ts})
		}
		return views, nil
	}

	query := `
		SELECT occurred_at
		FROM auth_events
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, AuthLogCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth events: %w", err)
	}
	defer rows.Close()

	var views []models.AuthEventView
	for rows.Next() {
		var view models.AuthEventView
		if err := rows.Scan(&view.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan auth event: %w", err)
		}
		views = append(views, view)
	}

	r.warmList(ctx, userID, views)
	return views, nil
}

// warmList rebuilds the Redis read model from a PostgreSQL read.
func (r *AuthLogRepository) warmList(ctx context.Context, userID string, views []models.AuthEventView) {
	if len(views) == 0 {
		return
	}
	key := authLogKeyPrefix + userID
	pipe := r.redis.TxPipeline()
	pipe.Del(ctx, key)
	// Views are newest first; RPush preserves that order.
	for _, view := range views {
		pipe.RPush(ctx, key, view.Timestamp.UTC().Format(time.RFC3339Nano))
	}
	pipe.LTrim(ctx, key, 0, AuthLogCapacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Failed to warm auth log read model for %s: %v", userID, err)
	}
}
