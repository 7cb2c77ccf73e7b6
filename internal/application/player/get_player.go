package player

import (
	"context"
	"fmt"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/collectibles"
	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// GetPlayerQuery returns a player's profile with the leveling projection
// derived from cumulative power
type GetPlayerQuery struct {
	PlayerID string
}

// GetPlayerResponse is the profile view
type GetPlayerResponse struct {
	PlayerID string
	Name     string
	Email    string
	Power    int
	Level    int
	Progress float64
	Glossary []string
}

// GetPlayerHandler serves the profile query
type GetPlayerHandler struct {
	playerRepo player.Repository
}

// NewGetPlayerHandler creates a new get player handler
func NewGetPlayerHandler(playerRepo player.Repository) *GetPlayerHandler {
	return &GetPlayerHandler{playerRepo: playerRepo}
}

// Handle executes the get player query
func (h *GetPlayerHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetPlayerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, err
	}

	p, err := h.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	glossary, err := h.playerRepo.Glossary(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary: %w", err)
	}

	return &GetPlayerResponse{
		PlayerID: p.ID.Value(),
		Name:     p.Name,
		Email:    p.Email,
		Power:    p.Power,
		Level:    collectibles.Level(p.Power),
		Progress: collectibles.Progress(p.Power),
		Glossary: glossary,
	}, nil
}
