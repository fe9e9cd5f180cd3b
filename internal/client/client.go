// Package client implements the typed HTTP client for the story backend and
// the cached Service that keeps client-side state consistent across mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/storyweave/storyweave/internal/story"
)

// Fixed per-operation failure messages shown to the user.
const (
	msgCreateStory      = "Failed to create story"
	msgFetchStories     = "Failed to fetch stories"
	msgFetchStory       = "Failed to fetch story"
	msgAddSection       = "Failed to add section"
	msgFetchSuggestions = "Failed to fetch suggestions"
	msgFetchCharacters  = "Failed to fetch characters"
	msgHealth           = "Failed to reach backend"
)

// Config holds the client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond caps outbound calls to the backend. Zero disables
	// the limiter.
	RequestsPerSecond float64
	Logger            zerolog.Logger
}

// StoryClient handles communication with the story backend.
type StoryClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// New creates a story backend client.
func New(cfg Config) *StoryClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &StoryClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		log:     cfg.Logger,
	}
}

// CreateStory asks the backend to create a story with an AI-generated opening.
func (c *StoryClient) CreateStory(ctx context.Context, settings story.Settings) (story.Story, error) {
	if err := settings.Validate(); err != nil {
		return story.Story{}, &ValidationError{Reason: err.Error()}
	}

	var created story.Story
	if err := c.do(ctx, http.MethodPost, "/stories", settings, &created, "create story", msgCreateStory); err != nil {
		return story.Story{}, err
	}
	if err := created.Validate(); err != nil {
		return story.Story{}, c.requestError("create story", msgCreateStory, 0, err)
	}
	return created, nil
}

// GetAllStories fetches the story list in backend order.
func (c *StoryClient) GetAllStories(ctx context.Context) ([]story.ListItem, error) {
	var items []story.ListItem
	if err := c.do(ctx, http.MethodGet, "/stories", nil, &items, "fetch stories", msgFetchStories); err != nil {
		return nil, err
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, c.requestError("fetch stories", msgFetchStories, 0, fmt.Errorf("item %d: %w", i, err))
		}
	}
	if items == nil {
		items = []story.ListItem{}
	}
	return items, nil
}

// GetStory fetches one story with its sections. An unknown id surfaces as a
// RequestError with the backend's 404 status.
func (c *StoryClient) GetStory(ctx context.Context, id string) (story.Story, error) {
	if err := story.ValidateID(id); err != nil {
		return story.Story{}, &ValidationError{Reason: err.Error()}
	}

	var st story.Story
	if err := c.do(ctx, http.MethodGet, "/stories/"+id, nil, &st, "fetch story", msgFetchStory); err != nil {
		return story.Story{}, err
	}
	if err := st.Validate(); err != nil {
		return story.Story{}, c.requestError("fetch story", msgFetchStory, 0, err)
	}
	return st, nil
}

// AddSection submits a user continuation for the story. Blank text is
// rejected before any network call.
func (c *StoryClient) AddSection(ctx context.Context, id, text string) (story.Section, error) {
	if err := story.ValidateID(id); err != nil {
		return story.Section{}, &ValidationError{Reason: err.Error()}
	}
	cleaned, ok := story.CleanSectionText(text)
	if !ok {
		return story.Section{}, &ValidationError{Reason: "section text cannot be empty"}
	}

	body := struct {
		Text string `json:"text"`
	}{Text: cleaned}

	var section story.Section
	if err := c.do(ctx, http.MethodPost, "/stories/"+id+"/sections", body, &section, "add section", msgAddSection); err != nil {
		return story.Section{}, err
	}
	if err := section.Validate(); err != nil {
		return story.Section{}, c.requestError("add section", msgAddSection, 0, err)
	}
	return section, nil
}

// GetSuggestions fetches the AI-proposed next actions for the story.
// An empty list is a legitimate response.
func (c *StoryClient) GetSuggestions(ctx context.Context, id string) ([]string, error) {
	if err := story.ValidateID(id); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	var suggestions []string
	if err := c.do(ctx, http.MethodGet, "/stories/"+id+"/suggestions", nil, &suggestions, "fetch suggestions", msgFetchSuggestions); err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return suggestions, nil
}

// GetCharacters fetches the characters the backend has extracted from the
// story. An empty list is a legitimate response.
func (c *StoryClient) GetCharacters(ctx context.Context, id string) ([]story.Character, error) {
	if err := story.ValidateID(id); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	var characters []story.Character
	if err := c.do(ctx, http.MethodGet, "/stories/"+id+"/characters", nil, &characters, "fetch characters", msgFetchCharacters); err != nil {
		return nil, err
	}
	for i, ch := range characters {
		if err := ch.Validate(); err != nil {
			return nil, c.requestError("fetch characters", msgFetchCharacters, 0, fmt.Errorf("character %d: %w", i, err))
		}
	}
	if characters == nil {
		characters = []story.Character{}
	}
	return characters, nil
}

// Health probes the backend's health endpoint.
func (c *StoryClient) Health(ctx context.Context) error {
	var status struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	return c.do(ctx, http.MethodGet, "/health", nil, &status, "health", msgHealth)
}

// do executes one backend call: marshal the body if any, issue the request
// with a fresh request id, check the status, and strictly decode the response.
// Any failure becomes a RequestError carrying the operation's fixed message.
func (c *StoryClient) do(ctx context.Context, method, path string, body, out any, op, failMsg string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.requestError(op, failMsg, 0, err)
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return c.requestError(op, failMsg, 0, fmt.Errorf("failed to marshal request: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.requestError(op, failMsg, 0, fmt.Errorf("failed to create request: %w", err))
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.requestError(op, failMsg, 0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.requestError(op, failMsg, 0, fmt.Errorf("failed to read response: %w", err))
	}

	c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.requestError(op, failMsg, resp.StatusCode, wrapStatus(resp.StatusCode))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return c.requestError(op, failMsg, 0, fmt.Errorf("failed to parse response: %w", err))
		}
	}

	return nil
}
