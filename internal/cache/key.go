// Package cache holds the shared client-side cache for backend resources.
//
// The cache is constructed once per process and injected into every consumer.
// It stores at most one live value per key, coalesces concurrent fetches of
// the same key into a single network call, and supports explicit invalidation
// so that mutations can mark derived resources stale.
package cache

// Key addresses one cached resource.
type Key struct {
	Kind string
	ID   string
}

// Keys for the resources the story backend serves. The story list has no id.
func StoriesKey() Key { return Key{Kind: "stories"} }

func StoryKey(id string) Key { return Key{Kind: "story", ID: id} }

func SuggestionsKey(id string) Key { return Key{Kind: "suggestions", ID: id} }

func CharactersKey(id string) Key { return Key{Kind: "characters", ID: id} }

// String renders the key for logging and singleflight grouping.
func (k Key) String() string {
	if k.ID == "" {
		return k.Kind
	}
	return k.Kind + "/" + k.ID
}
