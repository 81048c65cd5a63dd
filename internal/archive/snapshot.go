// internal/archive/snapshot.go
package archive

import (
	"fmt"
	"time"

	"github.com/ctfops/gzctf-clone/internal/clone"
)

// MetadataFile is the snapshot's metadata document, stored at the root
// of the archive folder next to the attachments directory.
const (
	MetadataFile   = "backup.json"
	AttachmentsDir = "attachments"
)

// Snapshot is the on-disk metadata document: one game plus its
// challenge records in export order. ID and CreatedAt are provenance
// only and ignored on import, so snapshots without them still load.
type Snapshot struct {
	ID         string         `json:"id,omitempty"`
	CreatedAt  time.Time      `json:"createdAt,omitzero"`
	Game       GameMeta       `json:"game"`
	Challenges []clone.Record `json:"challenges"`
}

// GameMeta describes the game the snapshot recreates. The invite code
// is generated fresh at export time rather than copied from the live
// game, so repeated exports never leak a stable joining secret.
type GameMeta struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	InviteCode string `json:"inviteCode"`
}

// Error reports a malformed or incomplete snapshot: a metadata file
// that is missing or undecodable, or a layout problem while writing.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
