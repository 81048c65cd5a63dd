// internal/gzapi/challenges.go
package gzapi

import (
	"context"
	"fmt"
	"net/http"
)

// ListChallenges fetches a game's challenge summaries. The returned
// summaries carry gameID so they remain traceable in multi-game scans.
func (c *Client) ListChallenges(ctx context.Context, gameID int) ([]ChallengeSummary, error) {
	var chs []ChallengeSummary
	path := fmt.Sprintf("/api/edit/games/%d/challenges", gameID)
	if err := c.doJSON(ctx, "list challenges", http.MethodGet, path, nil, &chs); err != nil {
		return nil, err
	}
	for i := range chs {
		chs[i].GameID = gameID
	}
	return chs, nil
}

// GetChallenge fetches the full record for one challenge. The list view
// is not enough for duplication: flags, content and attachment data
// only appear here.
func (c *Client) GetChallenge(ctx context.Context, gameID, challengeID int) (*Challenge, error) {
	var ch Challenge
	path := fmt.Sprintf("/api/edit/games/%d/challenges/%d", gameID, challengeID)
	if err := c.doJSON(ctx, "get challenge", http.MethodGet, path, nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// CreateChallenge creates a challenge shell. The endpoint only accepts
// the narrow ChallengeForm field set; the rest of a record is applied
// with UpdateChallenge afterwards.
func (c *Client) CreateChallenge(ctx context.Context, gameID int, form ChallengeForm) (*Challenge, error) {
	var ch Challenge
	path := fmt.Sprintf("/api/edit/games/%d/challenges", gameID)
	if err := c.doJSON(ctx, "create challenge", http.MethodPost, path, form, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// UpdateChallenge patches a challenge with any subset of the extended
// field set. Nil fields in the patch are omitted from the request body.
func (c *Client) UpdateChallenge(ctx context.Context, gameID, challengeID int, patch ChallengePatch) error {
	path := fmt.Sprintf("/api/edit/games/%d/challenges/%d", gameID, challengeID)
	return c.doJSON(ctx, "update challenge", http.MethodPut, path, patch, nil)
}

// ReplaceFlags sets a challenge's complete flag list in one call,
// preserving order. Flags are create-only for this tool: existing
// destination flags are never edited or removed individually.
func (c *Client) ReplaceFlags(ctx context.Context, gameID, challengeID int, flags []Flag) error {
	path := fmt.Sprintf("/api/edit/games/%d/challenges/%d/flags", gameID, challengeID)
	return c.doJSON(ctx, "replace flags", http.MethodPost, path, flags, nil)
}

// SetAttachment links an attachment to a challenge, either a Remote URL
// or a previously uploaded Local asset identified by its content hash.
func (c *Client) SetAttachment(ctx context.Context, gameID, challengeID int, form AttachmentForm) error {
	path := fmt.Sprintf("/api/edit/games/%d/challenges/%d/attachment", gameID, challengeID)
	return c.doJSON(ctx, "set attachment", http.MethodPost, path, form, nil)
}
