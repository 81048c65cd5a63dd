// internal/clone/engine.go
package clone

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

// Opener produces the bytes of a Local attachment. Live duplication
// opens a download from the source instance; archive import opens a
// file from the snapshot's attachment directory.
type Opener func(ctx context.Context) (io.ReadCloser, error)

// Engine replays challenges into a destination game, one at a time.
// Each challenge is an independent unit of work: any failure is folded
// into that challenge's Outcome and the batch carries on. Nothing is
// retried and nothing is rolled back.
type Engine struct {
	Source *gzapi.Client
	Dest   *gzapi.Client
	Log    logrus.FieldLogger
}

// NewEngine builds an engine whose log lines all carry a run id, so
// interleaved output from repeated invocations stays attributable.
func NewEngine(source, dest *gzapi.Client, log logrus.FieldLogger) *Engine {
	return &Engine{
		Source: source,
		Dest:   dest,
		Log:    log.WithField("run_id", uuid.NewString()),
	}
}

// Duplicate clones each selected challenge into destGameID, strictly in
// order. One challenge failing never stops the rest of the batch.
func (e *Engine) Duplicate(ctx context.Context, destGameID int, selected []gzapi.ChallengeSummary) []Outcome {
	outcomes := make([]Outcome, 0, len(selected))
	for _, ch := range selected {
		out := e.DuplicateChallenge(ctx, destGameID, ch)
		if out.Failed() {
			e.Log.WithFields(logrus.Fields{
				"challenge_id": out.SourceID,
				"title":        out.Title,
			}).WithError(out.Err).Error("failed to clone challenge")
		} else {
			e.Log.WithFields(logrus.Fields{
				"challenge_id": out.DestID,
				"title":        out.Title,
			}).Info("cloned challenge")
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// DuplicateChallenge clones one live challenge into destGameID: fetch
// the full source record, then replay it against the destination.
func (e *Engine) DuplicateChallenge(ctx context.Context, destGameID int, summary gzapi.ChallengeSummary) Outcome {
	full, err := e.Source.GetChallenge(ctx, summary.GameID, summary.ID)
	if err != nil {
		return Outcome{SourceID: summary.ID, Title: summary.Title, Err: fmt.Errorf("fetch source challenge: %w", err)}
	}
	rec := FromChallenge(full, summary)
	return e.Replay(ctx, destGameID, rec, e.sourceOpener(rec))
}

// sourceOpener downloads a Local attachment's bytes from the source
// instance. Returns nil when the record has no Local attachment.
func (e *Engine) sourceOpener(rec Record) Opener {
	att := rec.Attachment
	if att == nil || att.Type != gzapi.AttachmentLocal {
		return nil
	}
	return func(ctx context.Context) (io.ReadCloser, error) {
		data, err := e.Source.Download(ctx, att.SourceURL)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

// Replay reproduces one portable record inside destGameID. Steps:
// create the disabled shell, patch in every field the source carries,
// replace the flag set, then reproduce the attachment. An attachment
// failure is reported in the Outcome but does not undo the already
// created challenge; the operator gets a challenge with correct
// metadata and flags and a missing file.
func (e *Engine) Replay(ctx context.Context, destGameID int, rec Record, open Opener) Outcome {
	out := Outcome{SourceID: rec.SourceID, Title: rec.Title}

	created, err := e.Dest.CreateChallenge(ctx, destGameID, creationForm(rec))
	if err != nil {
		out.Err = fmt.Errorf("create challenge: %w", err)
		return out
	}
	out.DestID = created.ID

	if err := e.Dest.UpdateChallenge(ctx, destGameID, created.ID, patchForm(rec)); err != nil {
		out.Err = fmt.Errorf("update challenge %d: %w", created.ID, err)
		return out
	}

	if len(rec.Flags) > 0 {
		if err := e.Dest.ReplaceFlags(ctx, destGameID, created.ID, rec.Flags); err != nil {
			out.Err = fmt.Errorf("replace flags on challenge %d: %w", created.ID, err)
			return out
		}
	}

	if rec.Attachment != nil {
		if err := e.replayAttachment(ctx, destGameID, created.ID, rec.Attachment, open); err != nil {
			e.Log.WithFields(logrus.Fields{
				"challenge_id": created.ID,
				"title":        rec.Title,
			}).WithError(err).Warn("attachment not reproduced, challenge kept without it")
			out.Err = fmt.Errorf("attachment on challenge %d: %w", created.ID, err)
		}
	}
	return out
}

// replayAttachment reproduces one attachment on the destination. Remote
// attachments are re-registered by URL and move no bytes. Local
// attachments are read via open, uploaded to the destination's asset
// store, and linked by the hash the destination returns.
func (e *Engine) replayAttachment(ctx context.Context, destGameID, challengeID int, att *RecordAttachment, open Opener) error {
	switch att.Type {
	case gzapi.AttachmentRemote:
		return e.Dest.SetAttachment(ctx, destGameID, challengeID, gzapi.AttachmentForm{
			AttachmentType: gzapi.AttachmentRemote,
			RemoteURL:      att.URL,
		})
	case gzapi.AttachmentLocal:
		if open == nil {
			return fmt.Errorf("no source for local attachment %q", att.Filename)
		}
		rc, err := open(ctx)
		if err != nil {
			return fmt.Errorf("open %q: %w", att.Filename, err)
		}
		defer rc.Close()

		hash, err := e.Dest.UploadAsset(ctx, att.Filename, rc)
		if err != nil {
			return err
		}
		return e.Dest.SetAttachment(ctx, destGameID, challengeID, gzapi.AttachmentForm{
			AttachmentType: gzapi.AttachmentLocal,
			FileHash:       hash,
		})
	default:
		return fmt.Errorf("unknown attachment type %q", att.Type)
	}
}
