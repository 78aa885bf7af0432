package query

import (
	"context"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/models"
	"github.com/Shyam4142/Village-Vault/internal/repository"
)

type UserQueryService struct {
	readRepo *repository.UserReadRepository
}

func NewUserQueryService(readRepo *repository.UserReadRepository) *UserQueryService {
	return &UserQueryService{readRepo: readRepo}
}

// GetProfile fetches the caller's own profile and balances.
func (s *UserQueryService) GetProfile(q cqrs.GetProfileQuery) (*models.ProfileView, error) {
	return s.readRepo.GetProfile(context.Background(), q.UserID)
}
