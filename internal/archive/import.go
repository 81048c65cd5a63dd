// internal/archive/import.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ctfops/gzctf-clone/internal/clone"
	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

// Load reads and decodes a snapshot's metadata file. The path may point
// at the metadata file itself or at the snapshot folder.
func Load(path string) (*Snapshot, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", &Error{Path: path, Err: err}
	}
	if info.IsDir() {
		path = filepath.Join(path, MetadataFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &Error{Path: path, Err: err}
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, "", &Error{Path: path, Err: fmt.Errorf("decode %s: %w", MetadataFile, err)}
	}
	return &snap, filepath.Dir(path), nil
}

// Import restores a snapshot into a freshly provisioned game on the
// destination instance and replays every archived challenge into it.
// It mirrors live duplication except Local attachment bytes come from
// the snapshot's attachment directory; a referenced file missing from
// the directory (partial or corrupted archive) downgrades to a
// per-challenge warning and the challenge is imported without it.
func (c *Codec) Import(ctx context.Context, dst *gzapi.Client, path string) (*gzapi.Game, []clone.Outcome, error) {
	snap, dir, err := Load(path)
	if err != nil {
		return nil, nil, err
	}

	title := snap.Game.Title
	if title == "" {
		title = "Restored Game"
	}
	game, err := clone.ProvisionGame(ctx, dst, title+" (Imported)", snap.Game.InviteCode)
	if err != nil {
		return nil, nil, fmt.Errorf("create game for import: %w", err)
	}
	c.Log.WithFields(logrus.Fields{
		"game_id": game.ID,
		"title":   game.Title,
	}).Info("created game")

	engine := clone.NewEngine(nil, dst, c.Log)
	attDir := filepath.Join(dir, AttachmentsDir)

	outcomes := make([]clone.Outcome, 0, len(snap.Challenges))
	for _, rec := range snap.Challenges {
		rec := c.resolveAttachment(rec, attDir)
		out := engine.Replay(ctx, game.ID, rec, fileOpener(attDir, rec.Attachment))
		if out.Failed() {
			c.Log.WithField("title", out.Title).WithError(out.Err).Error("failed to import challenge")
		} else {
			c.Log.WithField("title", out.Title).Info("imported challenge")
		}
		outcomes = append(outcomes, out)
	}
	return game, outcomes, nil
}

// resolveAttachment drops a Local attachment whose file is absent from
// the attachment directory, warning instead of failing the challenge.
func (c *Codec) resolveAttachment(rec clone.Record, attDir string) clone.Record {
	att := rec.Attachment
	if att == nil || att.Type != gzapi.AttachmentLocal {
		return rec
	}
	if _, err := os.Stat(filepath.Join(attDir, att.Filename)); err != nil {
		c.Log.WithFields(logrus.Fields{
			"title": rec.Title,
			"file":  att.Filename,
		}).Warn("attachment file missing from archive, importing challenge without it")
		rec.Attachment = nil
	}
	return rec
}

// fileOpener opens a Local attachment from the snapshot's attachment
// directory. Returns nil when the record carries no Local attachment.
func fileOpener(attDir string, att *clone.RecordAttachment) clone.Opener {
	if att == nil || att.Type != gzapi.AttachmentLocal {
		return nil
	}
	return func(context.Context) (io.ReadCloser, error) {
		return os.Open(filepath.Join(attDir, att.Filename))
	}
}
