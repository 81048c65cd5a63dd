// internal/clone/catalog_test.go
package clone

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

func TestGamesFailureIsFatal(t *testing.T) {
	src := newFakeSource(t)
	src.failGames = true

	catalog := &Catalog{Client: src.client(t), Log: testLogger()}
	_, err := catalog.Games(context.Background())
	require.Error(t, err)

	var remote *gzapi.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, 500, remote.Status)
}

func TestGamesSortedByID(t *testing.T) {
	src := newFakeSource(t)
	src.games = []gzapi.GameSummary{
		{ID: 9, Title: "later"},
		{ID: 2, Title: "earlier"},
	}

	catalog := &Catalog{Client: src.client(t), Log: testLogger()}
	games, err := catalog.Games(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, 2, games[0].ID)
	assert.Equal(t, 9, games[1].ID)
}

func TestChallengesFailureDegradesToEmpty(t *testing.T) {
	src := newFakeSource(t)
	src.failLists[1] = true

	catalog := &Catalog{Client: src.client(t), Log: testLogger()}
	assert.Empty(t, catalog.Challenges(context.Background(), 1))
}

func TestScanAllSkipsFailingGame(t *testing.T) {
	src := newFakeSource(t)
	src.games = []gzapi.GameSummary{{ID: 1, Title: "bad"}, {ID: 2, Title: "good"}}
	src.failLists[1] = true
	src.challenges[2] = []gzapi.ChallengeSummary{
		{ID: 21, Title: "b", Score: 200},
		{ID: 20, Title: "a", Score: 100},
	}
	src.full[20] = &gzapi.Challenge{ID: 20, Title: "a", OriginalScore: intPtr(150)}

	catalog := &Catalog{Client: src.client(t), Log: testLogger()}
	all := catalog.ScanAll(context.Background(), src.games)

	require.Len(t, all, 2, "the failing game contributes zero challenges but does not abort the scan")
	assert.Equal(t, 20, all[0].ID, "scan output is sorted by challenge id")
	assert.Equal(t, 150, all[0].OriginalScore, "score refined from the full record")
	assert.Equal(t, 21, all[1].ID)
	assert.Equal(t, 200, all[1].OriginalScore, "summary score kept when the full fetch fails")
	assert.Equal(t, 2, all[0].GameID)
}
