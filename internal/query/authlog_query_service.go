package query

import (
	"context"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/models"
	"github.com/Shyam4142/Village-Vault/internal/repository"
)

// AuthLogQueryService serves the fraud-detection view: the caller's login
// timestamps, newest first. There is no scoring or anomaly detection; the
// view is a plain audit log.
type AuthLogQueryService struct {
	authLogRepo *repository.AuthLogRepository
}

func NewAuthLogQueryService(authLogRepo *repository.AuthLogRepository) *AuthLogQueryService {
	return &AuthLogQueryService{authLogRepo: authLogRepo}
}

func (s *AuthLogQueryService) ListAuthEvents(q cqrs.ListAuthEventsQuery) ([]models.AuthEventView, error) {
	return s.authLogRepo.List(context.Background(), q.UserID)
}
