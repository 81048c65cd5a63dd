// internal/clone/fake_test.go
package clone

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeSource serves the read side of a GZCTF instance: game list,
// challenge lists, full records and attachment downloads.
type fakeSource struct {
	srv *httptest.Server

	games      []gzapi.GameSummary
	challenges map[int][]gzapi.ChallengeSummary // by game id
	full       map[int]*gzapi.Challenge         // by challenge id
	files      map[string][]byte                // by asset path
	failGames  bool
	failLists  map[int]bool // game ids whose challenge list 500s
}

func newFakeSource(t *testing.T) *fakeSource {
	f := &fakeSource{
		challenges: make(map[int][]gzapi.ChallengeSummary),
		full:       make(map[int]*gzapi.Challenge),
		files:      make(map[string][]byte),
		failLists:  make(map[int]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/game", func(w http.ResponseWriter, r *http.Request) {
		if f.failGames {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"data": f.games})
	})
	mux.HandleFunc("GET /api/edit/games/{gid}/challenges", func(w http.ResponseWriter, r *http.Request) {
		gid := atoiOrFail(t, r.PathValue("gid"))
		if f.failLists[gid] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		chs := f.challenges[gid]
		if chs == nil {
			chs = []gzapi.ChallengeSummary{}
		}
		json.NewEncoder(w).Encode(chs)
	})
	mux.HandleFunc("GET /api/edit/games/{gid}/challenges/{id}", func(w http.ResponseWriter, r *http.Request) {
		ch, ok := f.full[atoiOrFail(t, r.PathValue("id"))]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(ch)
	})
	mux.HandleFunc("GET /assets/", func(w http.ResponseWriter, r *http.Request) {
		data, ok := f.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSource) client(t *testing.T) *gzapi.Client {
	c, err := gzapi.NewClient(f.srv.URL, "src-token", testLogger())
	require.NoError(t, err)
	return c
}

// fakeDest records every write a clone run performs against the
// destination instance.
type fakeDest struct {
	srv *httptest.Server

	mu          sync.Mutex
	nextID      int
	created     []gzapi.ChallengeForm
	createdIDs  []int
	patches     map[int]map[string]interface{} // raw patch bodies by challenge id
	flags       map[int][]gzapi.Flag
	attachments map[int]gzapi.AttachmentForm
	uploads     map[string][]byte // uploaded bytes by filename
	games       []gzapi.GameForm
	failUpdate  bool
	failFlags   bool
}

func newFakeDest(t *testing.T) *fakeDest {
	f := &fakeDest{
		nextID:      100,
		patches:     make(map[int]map[string]interface{}),
		flags:       make(map[int][]gzapi.Flag),
		attachments: make(map[int]gzapi.AttachmentForm),
		uploads:     make(map[string][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/edit/games", func(w http.ResponseWriter, r *http.Request) {
		var form gzapi.GameForm
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		f.mu.Lock()
		f.games = append(f.games, form)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(gzapi.Game{
			ID:         42,
			Title:      form.Title,
			Summary:    form.Summary,
			Hidden:     form.Hidden,
			InviteCode: form.InviteCode,
			Start:      form.Start,
			End:        form.End,
		})
	})
	mux.HandleFunc("POST /api/edit/games/{gid}/challenges", func(w http.ResponseWriter, r *http.Request) {
		var form gzapi.ChallengeForm
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		f.mu.Lock()
		f.nextID++
		id := f.nextID
		f.created = append(f.created, form)
		f.createdIDs = append(f.createdIDs, id)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{"id": id, "title": form.Title})
	})
	mux.HandleFunc("PUT /api/edit/games/{gid}/challenges/{id}", func(w http.ResponseWriter, r *http.Request) {
		if f.failUpdate {
			http.Error(w, "boom", http.StatusBadRequest)
			return
		}
		var patch map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		f.mu.Lock()
		f.patches[atoiOrFail(t, r.PathValue("id"))] = patch
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/edit/games/{gid}/challenges/{id}/flags", func(w http.ResponseWriter, r *http.Request) {
		if f.failFlags {
			http.Error(w, "boom", http.StatusBadRequest)
			return
		}
		var flags []gzapi.Flag
		require.NoError(t, json.NewDecoder(r.Body).Decode(&flags))
		f.mu.Lock()
		f.flags[atoiOrFail(t, r.PathValue("id"))] = flags
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/edit/games/{gid}/challenges/{id}/attachment", func(w http.ResponseWriter, r *http.Request) {
		var form gzapi.AttachmentForm
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		f.mu.Lock()
		f.attachments[atoiOrFail(t, r.PathValue("id"))] = form
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/assets", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, hdr, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		f.mu.Lock()
		f.uploads[hdr.Filename] = data
		n := len(f.uploads)
		f.mu.Unlock()
		json.NewEncoder(w).Encode([]gzapi.Asset{{Hash: fmt.Sprintf("dsthash-%d", n), Name: hdr.Filename}})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeDest) client(t *testing.T) *gzapi.Client {
	c, err := gzapi.NewClient(f.srv.URL, "dst-token", testLogger())
	require.NoError(t, err)
	return c
}

func atoiOrFail(t *testing.T, s string) int {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	require.NoError(t, err)
	return n
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }
