package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// RegisterPlayerCommand creates a new player account with zero power, an
// empty glossary and an empty inventory
type RegisterPlayerCommand struct {
	Name  string
	Email string
}

// RegisterPlayerResponse contains the new player's id
type RegisterPlayerResponse struct {
	PlayerID string
}

// RegisterPlayerHandler creates player accounts
type RegisterPlayerHandler struct {
	playerRepo player.Repository
}

// NewRegisterPlayerHandler creates a new register player handler
func NewRegisterPlayerHandler(playerRepo player.Repository) *RegisterPlayerHandler {
	return &RegisterPlayerHandler{playerRepo: playerRepo}
}

// Handle executes the register player command
func (h *RegisterPlayerHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RegisterPlayerCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" {
		return nil, shared.NewValidationError("email", "cannot be empty")
	}

	if existing, err := h.playerRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, shared.NewConflictError(fmt.Sprintf("email already registered: %s", email))
	} else if err != nil && !shared.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	id := shared.MustNewPlayerID(uuid.NewString())
	p, err := player.NewPlayer(id, cmd.Name, email)
	if err != nil {
		return nil, err
	}

	if err := h.playerRepo.Register(ctx, p); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "player registered", map[string]interface{}{
		"player_id": id.Value(),
		"email":     email,
	})

	return &RegisterPlayerResponse{PlayerID: id.Value()}, nil
}
