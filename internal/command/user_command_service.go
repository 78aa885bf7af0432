package command

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/events"
	"github.com/Shyam4142/Village-Vault/internal/models"
	"github.com/Shyam4142/Village-Vault/internal/repository"
	"github.com/Shyam4142/Village-Vault/internal/utils"
)

// Every new user starts with the same fixed balances in both buckets.
const openingBalance = 100.00

// UserCommandService writes user state to PostgreSQL and keeps the Redis
// read model up to date.
type UserCommandService struct {
	writeRepo *repository.UserWriteRepository
	readRepo  *repository.UserReadRepository
	publisher *events.Publisher
}

func NewUserCommandService(
	writeRepo *repository.UserWriteRepository,
	readRepo *repository.UserReadRepository,
	publisher *events.Publisher,
) *UserCommandService {
	return &UserCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
	}
}

func (s *UserCommandService) RegisterUser(cmd cqrs.RegisterUserCommand) (*models.User, error) {
	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		ID:              utils.GenerateID("usr"),
		Email:           cmd.Email,
		PasswordHash:    passwordHash,
		FirstName:       cmd.FirstName,
		LastName:        cmd.LastName,
		SSN:             cmd.SSN,
		DateOfBirth:     cmd.DateOfBirth,
		CheckingBalance: openingBalance,
		SavingsBalance:  openingBalance,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	if err := s.writeRepo.Create(user); err != nil {
		return nil, err
	}
	ctx := context.Background()
	s.readRepo.CacheProfileView(ctx, userToProfileView(user))
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		log.Printf("Failed to publish user.registered event: %v", err)
	}
	return user, nil
}

// userToProfileView converts the write model to the read view model.
func userToProfileView(u *models.User) *models.ProfileView {
	return &models.ProfileView{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		CheckingBalance: u.CheckingBalance,
		SavingsBalance:  u.SavingsBalance,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
