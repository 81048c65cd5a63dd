// internal/gzapi/games.go
package gzapi

import (
	"context"
	"fmt"
	"net/http"
)

// ListGames fetches one page of the instance's game list.
func (c *Client) ListGames(ctx context.Context, count, skip int) ([]GameSummary, error) {
	var page struct {
		Data []GameSummary `json:"data"`
	}
	path := fmt.Sprintf("/api/game?count=%d&skip=%d", count, skip)
	if err := c.doJSON(ctx, "list games", http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// CreateGame creates a game via the edit API and returns the created
// record, including the id the instance assigned.
func (c *Client) CreateGame(ctx context.Context, form GameForm) (*Game, error) {
	var game Game
	if err := c.doJSON(ctx, "create game", http.MethodPost, "/api/edit/games", form, &game); err != nil {
		return nil, err
	}
	return &game, nil
}
