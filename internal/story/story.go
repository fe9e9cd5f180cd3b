// Package story defines the entities exchanged with the narrative backend.
//
// Every entity is immutable on the client side: the only way a Story changes
// is by refetching it after the backend has applied a mutation. Identifiers
// are opaque strings assigned by the backend; the client never constructs one.
package story

import (
	"fmt"
	"strings"
	"time"
)

// Genre is one of the story genres the backend accepts.
type Genre string

const (
	GenreSciFi      Genre = "scifi"
	GenreCyberpunk  Genre = "cyberpunk"
	GenreSpaceOpera Genre = "space_opera"
	GenreDystopian  Genre = "dystopian"
)

// Genres lists every accepted genre, in display order.
func Genres() []Genre {
	return []Genre{GenreSciFi, GenreCyberpunk, GenreSpaceOpera, GenreDystopian}
}

// Valid reports whether g is one of the accepted genres.
func (g Genre) Valid() bool {
	switch g {
	case GenreSciFi, GenreCyberpunk, GenreSpaceOpera, GenreDystopian:
		return true
	}
	return false
}

// Settings is the user-supplied input for creating a story.
type Settings struct {
	Genre   Genre  `json:"genre"`
	Theme   string `json:"theme"`
	Setting string `json:"setting"`
}

// Validate checks the settings before they are sent to the backend.
// Theme and setting are free text and deliberately not length-checked.
func (s Settings) Validate() error {
	if !s.Genre.Valid() {
		return fmt.Errorf("unknown genre %q", string(s.Genre))
	}
	return nil
}

// Section is one text segment of a story, either the opening or a
// user-submitted continuation. Order is ascending within the parent story,
// but rendering follows array order as returned by the backend.
type Section struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Order     int       `json:"order"`
	CreatedAt Timestamp `json:"created_at"`
}

// Validate rejects a section payload without a server-assigned id.
func (s Section) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("section missing id")
	}
	return nil
}

// Story is a single interactive narrative with its ordered sections.
type Story struct {
	ID        string    `json:"id"`
	Genre     string    `json:"genre"`
	Theme     string    `json:"theme"`
	Setting   string    `json:"setting"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
	Sections  []Section `json:"sections"`
}

// Validate rejects a story payload without an id or with a malformed section.
func (s Story) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("story missing id")
	}
	for i, sec := range s.Sections {
		if err := sec.Validate(); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
	}
	return nil
}

// ListItem is the story projection returned by the list endpoint.
// Sections are optional there and absent in practice.
type ListItem struct {
	ID        string    `json:"id"`
	Genre     string    `json:"genre"`
	Theme     string    `json:"theme"`
	Setting   string    `json:"setting"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
	Sections  []Section `json:"sections,omitempty"`
}

// Validate rejects a list entry without an id.
func (l ListItem) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("story list item missing id")
	}
	return nil
}

// Character is a character the backend has extracted from a story.
type Character struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Traits      map[string]any `json:"traits"`
	Importance  float64        `json:"importance"`
}

// Validate rejects a character payload without an id.
func (c Character) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("character missing id")
	}
	return nil
}

// CleanSectionText trims a user-submitted continuation and reports whether
// anything is left to submit.
func CleanSectionText(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

// timeFormats are the timestamp layouts the backend is known to emit.
// FastAPI serializes naive datetimes without a zone offset.
var timeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Timestamp is a time.Time that tolerates the backend's zone-less format.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parses any of the known backend timestamp layouts.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeFormats {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON writes the timestamp in RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
