// Package web serves the story UI: a list view with a create form and a
// detail view with suggestions, characters, and an append form. Every page
// is a thin consumer of the cached client service.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/storyweave/storyweave/internal/cache"
	"github.com/storyweave/storyweave/internal/client"
	"github.com/storyweave/storyweave/internal/story"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server handles HTTP requests for the web UI.
type Server struct {
	router      chi.Router
	svc         *client.Service
	tmpl        *template.Template
	rateLimiter *RateLimiter
	log         zerolog.Logger
}

// NewServer creates the web UI server over the cached service.
func NewServer(svc *client.Service, log zerolog.Logger) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		svc:         svc,
		tmpl:        template.Must(template.ParseFS(templateFS, "templates/*.html")),
		rateLimiter: NewRateLimiter(),
		log:         log,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Use(RequestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.rateLimiter.Middleware)
	s.router.Use(SecurityHeaders)
	s.router.Use(MaxBodySize(64 * 1024))

	s.router.Get("/", s.index)
	s.router.Post("/stories", s.createStory)
	s.router.Get("/stories/{id}", s.showStory)
	s.router.Post("/stories/{id}/sections", s.addSection)
	s.router.Get("/healthz", s.health)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// indexData feeds the list page template.
type indexData struct {
	Stories   *cache.Resource[[]story.ListItem]
	Genres    []story.Genre
	FormError string
	Theme     string
	Setting   string
	Genre     string
}

// storyData feeds the detail page template.
type storyData struct {
	Story       *cache.Resource[story.Story]
	Suggestions *cache.Resource[[]string]
	Characters  *cache.Resource[[]story.Character]
	FormError   string
	Draft       string
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// index renders the story list with the create form.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Stories:   cache.NewResource[[]story.ListItem](),
		Genres:    story.Genres(),
		FormError: r.URL.Query().Get("error"),
	}
	data.Stories.Run(r.Context(), s.svc.GetAllStories)
	s.render(w, http.StatusOK, "index.html", data)
}

// createStory handles the create form and navigates to the new story.
func (s *Server) createStory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	settings := story.Settings{
		Genre:   story.Genre(r.PostFormValue("genre")),
		Theme:   r.PostFormValue("theme"),
		Setting: r.PostFormValue("setting"),
	}

	created, err := s.svc.CreateStory(r.Context(), settings)
	if err != nil {
		data := indexData{
			Stories:   cache.NewResource[[]story.ListItem](),
			Genres:    story.Genres(),
			FormError: err.Error(),
			Theme:     settings.Theme,
			Setting:   settings.Setting,
			Genre:     string(settings.Genre),
		}
		data.Stories.Run(r.Context(), s.svc.GetAllStories)
		s.render(w, formErrorStatus(err), "index.html", data)
		return
	}

	http.Redirect(w, r, "/stories/"+created.ID, http.StatusSeeOther)
}

// showStory renders the detail view. Suggestion and character failures only
// degrade their panels; the page itself stays up as long as the story loads.
func (s *Server) showStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := story.ValidateID(id); err != nil {
		http.Error(w, "Invalid story ID", http.StatusBadRequest)
		return
	}

	data := storyData{
		Story:       cache.NewResource[story.Story](),
		Suggestions: cache.NewResource[[]string](),
		Characters:  cache.NewResource[[]story.Character](),
		FormError:   r.URL.Query().Get("error"),
		Draft:       r.URL.Query().Get("draft"),
	}

	if _, err := data.Story.Run(r.Context(), func(ctx context.Context) (story.Story, error) {
		return s.svc.GetStory(ctx, id)
	}); err != nil {
		status := http.StatusBadGateway
		if client.IsNotFound(err) {
			status = http.StatusNotFound
		}
		s.render(w, status, "story.html", data)
		return
	}

	data.Suggestions.Run(r.Context(), func(ctx context.Context) ([]string, error) {
		return s.svc.GetSuggestions(ctx, id)
	})
	data.Characters.Run(r.Context(), func(ctx context.Context) ([]story.Character, error) {
		return s.svc.GetCharacters(ctx, id)
	})

	s.render(w, http.StatusOK, "story.html", data)
}

// addSection handles the append form.
func (s *Server) addSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := story.ValidateID(id); err != nil {
		http.Error(w, "Invalid story ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	text := r.PostFormValue("text")
	if _, err := s.svc.AddSection(r.Context(), id, text); err != nil {
		q := url.Values{}
		q.Set("error", err.Error())
		q.Set("draft", text)
		http.Redirect(w, r, "/stories/"+id+"?"+q.Encode(), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/stories/"+id, http.StatusSeeOther)
}

// health proxies the backend liveness probe.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Health(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func formErrorStatus(err error) int {
	if client.IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
