// internal/gzapi/types.go
package gzapi

// GameSummary is one entry of the public game list. Only the fields the
// cloner needs are decoded; everything else the API returns is dropped.
type GameSummary struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Game is the edit-API representation returned when a game is created.
type Game struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	Summary             string `json:"summary"`
	Hidden              bool   `json:"hidden"`
	InviteCode          string `json:"inviteCode"`
	PracticeMode        bool   `json:"practiceMode"`
	AcceptWithoutReview bool   `json:"acceptWithoutReview"`
	WriteupRequired     bool   `json:"writeupRequired"`
	InviteCodeRequired  bool   `json:"inviteCodeRequired"`
	Start               int64  `json:"start"`
	End                 int64  `json:"end"`
}

// GameForm is the creation payload for POST /api/edit/games.
// Start and End are milliseconds since epoch.
type GameForm struct {
	Title               string `json:"title"`
	Summary             string `json:"summary"`
	Hidden              bool   `json:"hidden"`
	AcceptWithoutReview bool   `json:"acceptWithoutReview"`
	WriteupRequired     bool   `json:"writeupRequired"`
	InviteCodeRequired  bool   `json:"inviteCodeRequired"`
	InviteCode          string `json:"inviteCode"`
	PracticeMode        bool   `json:"practiceMode"`
	Start               int64  `json:"start"`
	End                 int64  `json:"end"`
}

// ChallengeSummary is the list view of a challenge. It lacks flags,
// content and attachment data; those require a GetChallenge call.
// GameID is filled in client-side so a summary can be traced back to
// its owning game during multi-game scans.
type ChallengeSummary struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	Score         int    `json:"score"`
	OriginalScore int    `json:"originalScore"`

	GameID int `json:"-"`
}

// Challenge is the full edit-API record for a single challenge.
// Optional fields are pointers so a value absent from the source
// instance stays absent when the record is replayed elsewhere.
type Challenge struct {
	ID                   int         `json:"id"`
	Title                string      `json:"title"`
	Category             string      `json:"category"`
	Type                 string      `json:"type"`
	Score                int         `json:"score"`
	Content              *string     `json:"content"`
	FlagTemplate         *string     `json:"flagTemplate"`
	Hints                []string    `json:"hints"`
	FileName             *string     `json:"fileName"`
	ContainerImage       *string     `json:"containerImage"`
	MemoryLimit          *int        `json:"memoryLimit"`
	CPUCount             *int        `json:"cpuCount"`
	StorageLimit         *int        `json:"storageLimit"`
	ContainerExposePort  *int        `json:"containerExposePort"`
	EnableTrafficCapture *bool       `json:"enableTrafficCapture"`
	DisableBloodBonus    *bool       `json:"disableBloodBonus"`
	OriginalScore        *int        `json:"originalScore"`
	MinScoreRate         *float64    `json:"minScoreRate"`
	Difficulty           *float64    `json:"difficulty"`
	Flags                []Flag      `json:"flags"`
	Attachment           *Attachment `json:"attachment"`
}

// Flag is one flag entry; the platform matches submissions against its
// Flag string. Extra fields in the API response (id, challenge ref) are
// intentionally not decoded since flags here are create-only.
type Flag struct {
	Flag string `json:"flag"`
}

// Attachment is a challenge's attachment as reported by the source
// instance. For Local attachments URL is an instance-relative path; for
// Remote attachments it is the external URL itself.
type Attachment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Attachment variants recognized by the platform.
const (
	AttachmentLocal  = "Local"
	AttachmentRemote = "Remote"
)

// ChallengeForm is the minimal creation payload accepted by
// POST /api/edit/games/{id}/challenges. The endpoint rejects the wider
// field set; everything else goes through a follow-up patch.
type ChallengeForm struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	IsEnabled     bool   `json:"isEnabled"`
	Score         int    `json:"score"`
	MinScore      int    `json:"minScore"`
	OriginalScore int    `json:"originalScore"`
}

// ChallengePatch is the follow-up update payload. Every field is
// optional; nil fields are omitted from the JSON body entirely so the
// destination keeps its own defaults for them.
type ChallengePatch struct {
	Title                *string  `json:"title,omitempty"`
	Content              *string  `json:"content,omitempty"`
	FlagTemplate         *string  `json:"flagTemplate,omitempty"`
	Category             *string  `json:"category,omitempty"`
	Hints                []string `json:"hints,omitempty"`
	FileName             *string  `json:"fileName,omitempty"`
	ContainerImage       *string  `json:"containerImage,omitempty"`
	MemoryLimit          *int     `json:"memoryLimit,omitempty"`
	CPUCount             *int     `json:"cpuCount,omitempty"`
	StorageLimit         *int     `json:"storageLimit,omitempty"`
	ContainerExposePort  *int     `json:"containerExposePort,omitempty"`
	EnableTrafficCapture *bool    `json:"enableTrafficCapture,omitempty"`
	DisableBloodBonus    *bool    `json:"disableBloodBonus,omitempty"`
	OriginalScore        *int     `json:"originalScore,omitempty"`
	MinScoreRate         *float64 `json:"minScoreRate,omitempty"`
	Difficulty           *float64 `json:"difficulty,omitempty"`
}

// AttachmentForm sets or replaces a challenge's attachment. Exactly one
// of RemoteURL or FileHash is set depending on AttachmentType.
type AttachmentForm struct {
	AttachmentType string `json:"attachmentType"`
	RemoteURL      string `json:"remoteUrl,omitempty"`
	FileHash       string `json:"fileHash,omitempty"`
}

// Asset is one element of the /api/assets upload response.
type Asset struct {
	Hash string `json:"hash"`
	Name string `json:"name"`
}
