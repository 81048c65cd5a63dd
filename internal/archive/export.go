// internal/archive/export.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ctfops/gzctf-clone/internal/clone"
	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

// Codec reads and writes on-disk snapshots. Snapshots are written
// wholesale and consumed wholesale; there is no partial update.
type Codec struct {
	Log logrus.FieldLogger
}

// Export writes a snapshot of the given challenge records under
// baseDir and returns the created folder path. Local attachment bytes
// are downloaded once from the source instance and stored under
// attachments/ keyed by filename; the instance-specific source URL is
// not recorded. A failed attachment download drops just that
// attachment with a warning, never the whole challenge.
func (c *Codec) Export(ctx context.Context, src *gzapi.Client, game gzapi.GameSummary, records []clone.Record, baseDir string) (string, error) {
	dir := filepath.Join(baseDir, folderName(src.Host(), game.Title, time.Now()))
	attDir := filepath.Join(dir, AttachmentsDir)
	if err := os.MkdirAll(attDir, 0o755); err != nil {
		return "", &Error{Path: dir, Err: err}
	}

	inviteCode, err := clone.InviteCode()
	if err != nil {
		return "", err
	}

	snap := Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Game: GameMeta{
			Title:      game.Title,
			Summary:    game.Summary,
			InviteCode: inviteCode,
		},
		Challenges: make([]clone.Record, 0, len(records)),
	}

	for _, rec := range records {
		snap.Challenges = append(snap.Challenges, c.exportRecord(ctx, src, rec, attDir))
	}

	path := filepath.Join(dir, MetadataFile)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return dir, nil
}

// exportRecord materializes one record for the snapshot, saving Local
// attachment bytes to attDir.
func (c *Codec) exportRecord(ctx context.Context, src *gzapi.Client, rec clone.Record, attDir string) clone.Record {
	att := rec.Attachment
	if att == nil {
		return rec
	}
	switch att.Type {
	case gzapi.AttachmentRemote:
		// Copied by reference; the URL is valid anywhere.
		rec.Attachment = &clone.RecordAttachment{Type: gzapi.AttachmentRemote, URL: att.URL}
	case gzapi.AttachmentLocal:
		data, err := src.Download(ctx, att.SourceURL)
		if err != nil {
			c.Log.WithField("title", rec.Title).WithError(err).Warn("failed to download attachment, exporting challenge without it")
			rec.Attachment = nil
			return rec
		}
		if err := os.WriteFile(filepath.Join(attDir, att.Filename), data, 0o644); err != nil {
			c.Log.WithField("title", rec.Title).WithError(err).Warn("failed to save attachment, exporting challenge without it")
			rec.Attachment = nil
			return rec
		}
		c.Log.WithField("file", att.Filename).Info("saved attachment")
		rec.Attachment = &clone.RecordAttachment{Type: gzapi.AttachmentLocal, Filename: att.Filename}
	default:
		rec.Attachment = nil
	}
	return rec
}

// folderName builds the snapshot folder name from the export moment,
// the source host and the game title, all filesystem-safe.
func folderName(host, title string, now time.Time) string {
	return fmt.Sprintf("gzctf-backup-%s-%s-%s",
		now.Format("20060102-150405"),
		strings.ReplaceAll(host, ":", "-"),
		truncate(sanitizeName(title), 40),
	)
}

// sanitizeName keeps letters, digits, '-' and '_', replacing everything
// else with '_'.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
