package client

import (
	"context"

	"github.com/storyweave/storyweave/internal/cache"
	"github.com/storyweave/storyweave/internal/story"
)

// Service binds the backend client to the shared cache and applies the
// invalidation rules that keep displayed state consistent after mutations:
//
//   - a created story invalidates the story list
//   - an appended section invalidates the story, its suggestions, and its
//     characters, all derived from the story's content
//
// Reads go through the cache: repeated reads of a live key return the cached
// value, concurrent reads of the same key share one backend call, and a
// failed operation leaves the cache untouched.
type Service struct {
	client *StoryClient
	cache  *cache.Store
}

// NewService creates a service over the given client and shared cache.
func NewService(c *StoryClient, store *cache.Store) *Service {
	return &Service{client: c, cache: store}
}

// CreateStory creates a story and marks the story list stale.
func (s *Service) CreateStory(ctx context.Context, settings story.Settings) (story.Story, error) {
	created, err := s.client.CreateStory(ctx, settings)
	if err != nil {
		return story.Story{}, err
	}
	s.cache.Invalidate(cache.StoriesKey())
	return created, nil
}

// GetAllStories returns the cached story list, fetching it if stale.
func (s *Service) GetAllStories(ctx context.Context) ([]story.ListItem, error) {
	return cache.Fetch(ctx, s.cache, cache.StoriesKey(), s.client.GetAllStories)
}

// GetStory returns the cached story, fetching it if stale.
func (s *Service) GetStory(ctx context.Context, id string) (story.Story, error) {
	return cache.Fetch(ctx, s.cache, cache.StoryKey(id), func(ctx context.Context) (story.Story, error) {
		return s.client.GetStory(ctx, id)
	})
}

// AddSection appends a continuation to the story and marks the story, its
// suggestions, and its characters stale. Validation failures are raised
// before any network call and never touch the cache.
func (s *Service) AddSection(ctx context.Context, id, text string) (story.Section, error) {
	section, err := s.client.AddSection(ctx, id, text)
	if err != nil {
		return story.Section{}, err
	}
	s.cache.Invalidate(
		cache.StoryKey(id),
		cache.SuggestionsKey(id),
		cache.CharactersKey(id),
	)
	return section, nil
}

// GetSuggestions returns the cached suggestions, fetching them if stale.
func (s *Service) GetSuggestions(ctx context.Context, id string) ([]string, error) {
	return cache.Fetch(ctx, s.cache, cache.SuggestionsKey(id), func(ctx context.Context) ([]string, error) {
		return s.client.GetSuggestions(ctx, id)
	})
}

// GetCharacters returns the cached characters, fetching them if stale.
func (s *Service) GetCharacters(ctx context.Context, id string) ([]story.Character, error) {
	return cache.Fetch(ctx, s.cache, cache.CharactersKey(id), func(ctx context.Context) ([]story.Character, error) {
		return s.client.GetCharacters(ctx, id)
	})
}

// Health probes the backend directly; liveness is never cached.
func (s *Service) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}
