// internal/clone/provision.go
package clone

import (
	"context"
	"time"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

// ProvisionGame creates the destination game shell challenges are
// cloned into. The game is always hidden, invite-gated and in practice
// mode so nobody can join it by accident; the 10-minute/1-hour window
// only exists to satisfy the platform's start < end validation and is
// expected to be adjusted by the operator before any real use. When
// inviteCode is empty a fresh one is generated.
func ProvisionGame(ctx context.Context, dst *gzapi.Client, title, inviteCode string) (*gzapi.Game, error) {
	if inviteCode == "" {
		var err error
		inviteCode, err = InviteCode()
		if err != nil {
			return nil, err
		}
	}

	start := time.Now().Add(10 * time.Minute)
	form := gzapi.GameForm{
		Title:               title,
		Summary:             "Cloned: " + title,
		Hidden:              true,
		AcceptWithoutReview: false,
		WriteupRequired:     false,
		InviteCodeRequired:  true,
		InviteCode:          inviteCode,
		PracticeMode:        true,
		Start:               start.UnixMilli(),
		End:                 start.Add(time.Hour).UnixMilli(),
	}
	return dst.CreateGame(ctx, form)
}
