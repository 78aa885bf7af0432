package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Shyam4142/Village-Vault/internal/events"
	"github.com/Shyam4142/Village-Vault/internal/repository"
)

// AuthLogCommandService appends login timestamps to the authentication
// history. It consumes login.recorded events so the append stays off the
// login critical path.
type AuthLogCommandService struct {
	authLogRepo *repository.AuthLogRepository
}

func NewAuthLogCommandService(authLogRepo *repository.AuthLogRepository) *AuthLogCommandService {
	return &AuthLogCommandService{authLogRepo: authLogRepo}
}

// HandleLoginEvent is the Redis stream subscriber handler.
func (s *AuthLogCommandService) HandleLoginEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.LoginRecorded {
		return nil
	}
	dataBytes, _ := json.Marshal(event.Data)
	var data events.LoginRecordedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal login.recorded event: %w", err)
	}
	if err := s.authLogRepo.Append(ctx, data.UserID, data.Timestamp); err != nil {
		return err
	}
	log.Printf("Recorded login for user %s at %s", data.UserID, data.Timestamp)
	return nil
}
