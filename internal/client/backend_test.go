package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storyweave/storyweave/internal/story"
)

// fakeBackend is an in-memory stand-in for the narrative service. It records
// per-operation call counts so tests can assert how many network calls an
// operation issued.
type fakeBackend struct {
	mu          sync.Mutex
	stories     map[string]*story.Story
	order       []string
	suggestions map[string][]string
	characters  map[string][]story.Character
	calls       map[string]int
	fail        map[string]int // op -> status to force on next call
	nextID      int

	server *httptest.Server
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		stories:     make(map[string]*story.Story),
		suggestions: make(map[string][]string),
		characters:  make(map[string][]story.Character),
		calls:       make(map[string]int),
		fail:        make(map[string]int),
	}

	r := chi.NewRouter()
	r.Post("/stories", b.createStory)
	r.Get("/stories", b.listStories)
	r.Get("/stories/{id}", b.getStory)
	r.Post("/stories/{id}/sections", b.addSection)
	r.Get("/stories/{id}/suggestions", b.getSuggestions)
	r.Get("/stories/{id}/characters", b.getCharacters)
	r.Get("/health", b.health)

	b.server = httptest.NewServer(r)
	return b
}

func (b *fakeBackend) Close() {
	b.server.Close()
}

func (b *fakeBackend) URL() string {
	return b.server.URL
}

// Calls returns how many requests hit the given operation.
func (b *fakeBackend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// FailNext forces the next request for op to return status.
func (b *fakeBackend) FailNext(op string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[op] = status
}

// record counts the call and applies a forced failure if one is queued.
// The lock is held by the caller.
func (b *fakeBackend) record(w http.ResponseWriter, op string) bool {
	b.calls[op]++
	if status, ok := b.fail[op]; ok {
		delete(b.fail, op)
		http.Error(w, "forced failure", status)
		return false
	}
	return true
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) createStory(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.record(w, "create") {
		return
	}

	var settings story.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	b.nextID++
	id := fmt.Sprintf("story-%d", b.nextID)
	now := story.Timestamp{Time: time.Now().UTC()}
	st := &story.Story{
		ID:        id,
		Genre:     string(settings.Genre),
		Theme:     settings.Theme,
		Setting:   settings.Setting,
		CreatedAt: now,
		UpdatedAt: now,
		Sections: []story.Section{
			{ID: id + "-sec-0", Text: "An opening written by the backend.", Order: 0, CreatedAt: now},
		},
	}
	b.stories[id] = st
	b.order = append(b.order, id)
	b.suggestions[id] = []string{"Investigate the signal", "Set a course home"}
	b.characters[id] = []story.Character{
		{ID: id + "-char-0", Name: "Captain Vale", Description: "Weary but resolute.", Traits: map[string]any{"brave": true}, Importance: 8},
	}

	writeBody(w, http.StatusOK, st)
}

func (b *fakeBackend) listStories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.record(w, "list") {
		return
	}

	items := []story.ListItem{}
	for _, id := range b.order {
		st := b.stories[id]
		items = append(items, story.ListItem{
			ID:        st.ID,
			Genre:     st.Genre,
			Theme:     st.Theme,
			Setting:   st.Setting,
			CreatedAt: st.CreatedAt,
			UpdatedAt: st.UpdatedAt,
		})
	}
	writeBody(w, http.StatusOK, items)
}

func (b *fakeBackend) getStory(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.record(w, "get") {
		return
	}

	st, ok := b.stories[chi.URLParam(r, "id")]
	if !ok {
		http.Error(w, "Story not found", http.StatusNotFound)
		return
	}
	writeBody(w, http.StatusOK, st)
}

func (b *fakeBackend) addSection(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.record(w, "append") {
		return
	}

	st, ok := b.stories[chi.URLParam(r, "id")]
	if !ok {
		http.Error(w, "Story not found", http.StatusNotFound)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// User continuation plus an AI reply, the way the real backend appends.
	now := story.Timestamp{Time: time.Now().UTC()}
	section := story.Section{
		ID:        fmt.Sprintf("%s-sec-%d", st.ID, len(st.Sections)),
		Text:      req.Text,
		Order:     len(st.Sections),
		CreatedAt: now,
	}
	st.Sections = append(st.Sections, section)
	st.UpdatedAt = now
	b.suggestions[st.ID] = []string{"Press on", "Turn back"}

	writeBody(w, http.StatusOK, section)
}

func (b *fakeBackend) getSuggestions(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.record(w, "suggestions") {
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := b.stories[id]; !ok {
		http.Error(w, "Story not found", http.StatusNotFound)
		return
	}
	suggestions := b.suggestions[id]
	if suggestions == nil {
		suggestions = []string{}
	}
	writeBody(w, http.StatusOK, suggestions)
}

func (b *fakeBackend) getCharacters(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.record(w, "characters") {
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := b.stories[id]; !ok {
		http.Error(w, "Story not found", http.StatusNotFound)
		return
	}
	characters := b.characters[id]
	if characters == nil {
		characters = []story.Character{}
	}
	writeBody(w, http.StatusOK, characters)
}

func (b *fakeBackend) health(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.record(w, "health") {
		return
	}
	writeBody(w, http.StatusOK, map[string]string{"status": "healthy", "service": "narrative-service"})
}
