// internal/clone/record.go
package clone

import (
	"path"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

// Record is the portable form of one challenge: the exact field set
// that survives duplication, whether the target is a live instance or
// an on-disk archive. Its JSON shape is what backup.json stores per
// challenge. Optional fields stay pointers so an absent source value is
// omitted, not zeroed, when replayed.
type Record struct {
	Title                string            `json:"title"`
	Category             string            `json:"category,omitempty"`
	Type                 string            `json:"type,omitempty"`
	Content              *string           `json:"content,omitempty"`
	FlagTemplate         *string           `json:"flagTemplate,omitempty"`
	OriginalScore        *int              `json:"originalScore,omitempty"`
	MinScoreRate         *float64          `json:"minScoreRate,omitempty"`
	Difficulty           *float64          `json:"difficulty,omitempty"`
	FileName             *string           `json:"fileName,omitempty"`
	ContainerImage       *string           `json:"containerImage,omitempty"`
	MemoryLimit          *int              `json:"memoryLimit,omitempty"`
	CPUCount             *int              `json:"cpuCount,omitempty"`
	StorageLimit         *int              `json:"storageLimit,omitempty"`
	ContainerExposePort  *int              `json:"containerExposePort,omitempty"`
	EnableTrafficCapture *bool             `json:"enableTrafficCapture,omitempty"`
	DisableBloodBonus    *bool             `json:"disableBloodBonus,omitempty"`
	Hints                []string          `json:"hints,omitempty"`
	Flags                []gzapi.Flag      `json:"flags,omitempty"`
	Attachment           *RecordAttachment `json:"attachment,omitempty"`

	// SourceID and FallbackScore never leave the process: SourceID ties
	// outcomes back to the source challenge, FallbackScore is the
	// summary score used when the full record lacks originalScore.
	SourceID      int `json:"-"`
	FallbackScore int `json:"-"`
}

// RecordAttachment is the portable attachment reference. Remote keeps
// the external URL verbatim. Local carries SourceURL (instance-relative
// download path, meaningless outside the source instance, never
// serialized) while Filename is what the bytes are stored and
// re-uploaded as.
type RecordAttachment struct {
	Type     string `json:"type"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`

	SourceURL string `json:"-"`
}

// FromChallenge converts a full source record into its portable form.
// The summary supplies the back-reference and the score fallback the
// full record may lack.
func FromChallenge(full *gzapi.Challenge, summary gzapi.ChallengeSummary) Record {
	rec := Record{
		Title:                full.Title,
		Category:             full.Category,
		Type:                 full.Type,
		Content:              full.Content,
		FlagTemplate:         full.FlagTemplate,
		OriginalScore:        full.OriginalScore,
		MinScoreRate:         full.MinScoreRate,
		Difficulty:           full.Difficulty,
		FileName:             full.FileName,
		ContainerImage:       full.ContainerImage,
		MemoryLimit:          full.MemoryLimit,
		CPUCount:             full.CPUCount,
		StorageLimit:         full.StorageLimit,
		ContainerExposePort:  full.ContainerExposePort,
		EnableTrafficCapture: full.EnableTrafficCapture,
		DisableBloodBonus:    full.DisableBloodBonus,
		Hints:                full.Hints,
		Flags:                full.Flags,
		SourceID:             full.ID,
		FallbackScore:        summary.Score,
	}
	if rec.Title == "" {
		rec.Title = summary.Title
	}
	if rec.Category == "" {
		rec.Category = summary.Category
	}
	if att := full.Attachment; att != nil && att.URL != "" {
		rec.Attachment = &RecordAttachment{
			Type:      att.Type,
			SourceURL: att.URL,
		}
		switch att.Type {
		case gzapi.AttachmentRemote:
			rec.Attachment.URL = att.URL
		case gzapi.AttachmentLocal:
			rec.Attachment.Filename = path.Base(att.URL)
		}
	}
	return rec
}
