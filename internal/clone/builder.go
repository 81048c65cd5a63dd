// internal/clone/builder.go
package clone

import "github.com/ctfops/gzctf-clone/internal/gzapi"

// Challenge defaults applied when the source record is missing them.
const (
	defaultCategory = "Misc"
	defaultType     = "StaticAttachment"
	defaultScore    = 100
)

// creationForm assembles the minimal payload the challenge-creation
// endpoint accepts. Challenges are always created disabled, and the
// score triple is kept coherent: score = minScore = originalScore. The
// destination refines minScore later via the patch's minScoreRate.
func creationForm(rec Record) gzapi.ChallengeForm {
	score := defaultScore
	if rec.OriginalScore != nil && *rec.OriginalScore > 0 {
		score = *rec.OriginalScore
	} else if rec.FallbackScore > 0 {
		score = rec.FallbackScore
	}

	form := gzapi.ChallengeForm{
		Title:         rec.Title,
		Category:      rec.Category,
		Type:          rec.Type,
		IsEnabled:     false,
		Score:         score,
		MinScore:      score,
		OriginalScore: score,
	}
	if form.Category == "" {
		form.Category = defaultCategory
	}
	if form.Type == "" {
		form.Type = defaultType
	}
	return form
}

// patchForm assembles the follow-up update from the same record. Only
// fields the source actually carries are present; the rest stay nil so
// the destination's defaults survive.
func patchForm(rec Record) gzapi.ChallengePatch {
	patch := gzapi.ChallengePatch{
		Content:              rec.Content,
		FlagTemplate:         rec.FlagTemplate,
		Hints:                rec.Hints,
		FileName:             rec.FileName,
		ContainerImage:       rec.ContainerImage,
		MemoryLimit:          rec.MemoryLimit,
		CPUCount:             rec.CPUCount,
		StorageLimit:         rec.StorageLimit,
		ContainerExposePort:  rec.ContainerExposePort,
		EnableTrafficCapture: rec.EnableTrafficCapture,
		DisableBloodBonus:    rec.DisableBloodBonus,
		OriginalScore:        rec.OriginalScore,
		MinScoreRate:         rec.MinScoreRate,
		Difficulty:           rec.Difficulty,
	}
	if rec.Title != "" {
		patch.Title = &rec.Title
	}
	if rec.Category != "" {
		patch.Category = &rec.Category
	}
	return patch
}
