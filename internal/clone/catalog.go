// internal/clone/catalog.go
package clone

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

// gamePageSize is the single page fetched from the game list. Matches
// the platform's admin UI default.
const gamePageSize = 50

// Catalog reads games and challenges from a source instance and applies
// the tool's failure policy: a failed game list is fatal for the whole
// run, a failed challenge list for one game degrades to "no challenges
// there", and a failed full fetch is left to the caller.
type Catalog struct {
	Client *gzapi.Client
	Log    logrus.FieldLogger
}

// Games lists the instance's games sorted by id. An error here is
// unrecoverable for the run; nothing downstream can proceed without it.
func (c *Catalog) Games(ctx context.Context) ([]gzapi.GameSummary, error) {
	games, err := c.Client.ListGames(ctx, gamePageSize, 0)
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

// Challenges lists one game's challenge summaries. A failure is
// reported as a warning and an empty slice so a scan across several
// games is not aborted by one bad game.
func (c *Catalog) Challenges(ctx context.Context, gameID int) []gzapi.ChallengeSummary {
	chs, err := c.Client.ListChallenges(ctx, gameID)
	if err != nil {
		c.Log.WithField("game_id", gameID).WithError(err).Warn("failed to list challenges, treating game as empty")
		return nil
	}
	return chs
}

// FullChallenge fetches one challenge's complete record. Callers decide
// whether a failure skips the challenge or aborts their operation.
func (c *Catalog) FullChallenge(ctx context.Context, gameID, challengeID int) (*gzapi.Challenge, error) {
	return c.Client.GetChallenge(ctx, gameID, challengeID)
}

// ScanAll enumerates the challenges of every given game, sorted by
// challenge id. Scores are refined from the full record where it can be
// fetched; a full-fetch failure just keeps the summary score.
func (c *Catalog) ScanAll(ctx context.Context, games []gzapi.GameSummary) []gzapi.ChallengeSummary {
	var all []gzapi.ChallengeSummary
	for _, g := range games {
		for _, ch := range c.Challenges(ctx, g.ID) {
			if full, err := c.FullChallenge(ctx, g.ID, ch.ID); err == nil && full.OriginalScore != nil {
				ch.OriginalScore = *full.OriginalScore
			} else if ch.OriginalScore == 0 {
				ch.OriginalScore = ch.Score
			}
			all = append(all, ch)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
