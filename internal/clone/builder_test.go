// internal/clone/builder_test.go
package clone

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

func TestCreationFormScoreTriple(t *testing.T) {
	form := creationForm(Record{Title: "a", OriginalScore: intPtr(300)})
	assert.Equal(t, 300, form.Score)
	assert.Equal(t, 300, form.MinScore)
	assert.Equal(t, 300, form.OriginalScore)
	assert.False(t, form.IsEnabled)
}

func TestCreationFormFallsBackToSummaryScore(t *testing.T) {
	form := creationForm(Record{Title: "a", FallbackScore: 250})
	assert.Equal(t, 250, form.Score)
	assert.Equal(t, 250, form.MinScore)
	assert.Equal(t, 250, form.OriginalScore)
}

func TestCreationFormDefaults(t *testing.T) {
	form := creationForm(Record{Title: "bare"})
	assert.Equal(t, 100, form.Score)
	assert.Equal(t, 100, form.MinScore)
	assert.Equal(t, 100, form.OriginalScore)
	assert.Equal(t, "Misc", form.Category)
	assert.Equal(t, "StaticAttachment", form.Type)
}

func TestPatchFormOmitsAbsentFields(t *testing.T) {
	patch := patchForm(Record{
		Title:   "sparse",
		Content: strPtr("just content"),
	})

	data, err := json.Marshal(patch)
	require.NoError(t, err)
	var keys map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &keys))

	assert.Equal(t, "sparse", keys["title"])
	assert.Equal(t, "just content", keys["content"])
	for _, absent := range []string{
		"category", "flagTemplate", "hints", "fileName", "containerImage",
		"memoryLimit", "cpuCount", "storageLimit", "containerExposePort",
		"enableTrafficCapture", "disableBloodBonus", "originalScore",
		"minScoreRate", "difficulty",
	} {
		_, ok := keys[absent]
		assert.Falsef(t, ok, "field %q should be omitted, not sent as null", absent)
	}
}

func TestPatchFormCarriesPresentFields(t *testing.T) {
	patch := patchForm(Record{
		Title:        "dense",
		Category:     "Crypto",
		MinScoreRate: floatPtr(0.5),
		Hints:        []string{"h1"},
		MemoryLimit:  intPtr(512),
	})

	data, err := json.Marshal(patch)
	require.NoError(t, err)
	var keys map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &keys))

	assert.Equal(t, "Crypto", keys["category"])
	assert.Equal(t, 0.5, keys["minScoreRate"])
	assert.Equal(t, []interface{}{"h1"}, keys["hints"])
	assert.Equal(t, float64(512), keys["memoryLimit"])
}

func TestFromChallengeAttachmentVariants(t *testing.T) {
	local := &gzapi.Challenge{
		ID:         1,
		Title:      "local",
		Attachment: &gzapi.Attachment{Type: gzapi.AttachmentLocal, URL: "/assets/ab/handout.zip"},
	}
	rec := FromChallenge(local, gzapi.ChallengeSummary{ID: 1})
	require.NotNil(t, rec.Attachment)
	assert.Equal(t, gzapi.AttachmentLocal, rec.Attachment.Type)
	assert.Equal(t, "handout.zip", rec.Attachment.Filename)
	assert.Equal(t, "/assets/ab/handout.zip", rec.Attachment.SourceURL)
	assert.Empty(t, rec.Attachment.URL)

	remote := &gzapi.Challenge{
		ID:         2,
		Title:      "remote",
		Attachment: &gzapi.Attachment{Type: gzapi.AttachmentRemote, URL: "https://example.com/f.bin"},
	}
	rec = FromChallenge(remote, gzapi.ChallengeSummary{ID: 2})
	require.NotNil(t, rec.Attachment)
	assert.Equal(t, "https://example.com/f.bin", rec.Attachment.URL)
	assert.Empty(t, rec.Attachment.Filename)

	none := &gzapi.Challenge{ID: 3, Title: "bare"}
	rec = FromChallenge(none, gzapi.ChallengeSummary{ID: 3})
	assert.Nil(t, rec.Attachment)
}
