package query

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/events"
	"github.com/Shyam4142/Village-Vault/internal/models"
	"github.com/Shyam4142/Village-Vault/internal/repository"
	"github.com/Shyam4142/Village-Vault/internal/utils"
)

var (
	jwtSecretOnce sync.Once
	jwtSecretVal  []byte
)

func jwtSecret() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			panic("JWT_SECRET environment variable is not set")
		}
		jwtSecretVal = []byte(secret)
	})
	return jwtSecretVal
}

// Claims is the JWT payload.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthQueryService handles login and token refresh. Login publishes a
// login.recorded event; the authentication-history append happens in the
// subscriber, not here.
type AuthQueryService struct {
	userRepo  *repository.UserWriteRepository
	publisher *events.Publisher
}

func NewAuthQueryService(userRepo *repository.UserWriteRepository, publisher *events.Publisher) *AuthQueryService {
	return &AuthQueryService{userRepo: userRepo, publisher: publisher}
}

func (s *AuthQueryService) Login(cmd cqrs.LoginCommand) (string, error) {
	user, err := s.userRepo.GetByEmail(cmd.Email)
	if err != nil {
		return "", models.ErrUnauthenticated
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return "", models.ErrUnauthenticated
	}

	if err := s.publisher.Publish(context.Background(), events.AuthEventsStream, events.LoginRecorded, events.LoginRecordedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.Printf("Failed to publish login.recorded event: %v", err)
	}

	return s.generateToken(user.ID, user.Email)
}

func (s *AuthQueryService) RefreshToken(cmd cqrs.RefreshTokenCommand) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cmd.Token, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrUnauthenticated
	}
	return s.generateToken(claims.UserID, claims.Email)
}

func (s *AuthQueryService) generateToken(userID, email string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", err
	}
	return signed, nil
}
