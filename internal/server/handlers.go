package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// Handler serves the page endpoints the composer's HTTP store consumes.
type Handler struct {
	pages  *BunPageRepository
	logger interfaces.Logger
}

func NewHandler(pages *BunPageRepository, logger interfaces.Logger) *Handler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Handler{pages: pages, logger: logger}
}

// Router mounts the content API routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/pages/{id}", func(r chi.Router) {
		r.Get("/", h.getPage)
		r.Put("/", h.putPage)
		r.Patch("/content", h.patchContent)
	})

	return r
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pageID(w, r)
	if !ok {
		return
	}

	record, err := h.pages.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, pageData(record))
}

// patchContent is the silent partial save: only the content column changes.
func (h *Handler) patchContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pageID(w, r)
	if !ok {
		return
	}

	var body struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid request body"})
		return
	}
	if len(body.Content) == 0 {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Error: "content is required"})
		return
	}

	record, err := h.pages.UpdateContent(r.Context(), id, string(body.Content))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, pageData(record))
}

// putPage is the explicit full save: the request body replaces the page.
func (h *Handler) putPage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pageID(w, r)
	if !ok {
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid request body"})
		return
	}

	existing, err := h.pages.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	record := &PageRecord{
		ID:        id,
		Slug:      stringField(body, "slug", existing.Slug),
		Title:     stringField(body, "title", existing.Title),
		Status:    stringField(body, "status", existing.Status),
		Content:   existing.Content,
		CreatedAt: existing.CreatedAt,
	}
	if raw, present := body["content"]; present {
		encoded, err := json.Marshal(raw)
		if err != nil {
			h.respond(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid content"})
			return
		}
		record.Content = string(encoded)
	}

	updated, err := h.pages.Replace(r.Context(), record)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, pageData(updated))
}

func (h *Handler) pageID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid page id"})
		return uuid.Nil, false
	}
	return id, true
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// pageData shapes a record for the wire. Content goes out as the stored
// JSON-encoded string, which the composer store decodes on its side.
func pageData(record *PageRecord) map[string]any {
	return map[string]any{
		"id":         record.ID.String(),
		"slug":       record.Slug,
		"title":      record.Title,
		"status":     record.Status,
		"content":    record.Content,
		"created_at": record.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) ok(w http.ResponseWriter, data any) {
	h.respond(w, http.StatusOK, envelope{Success: true, Data: data})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	var notFound *PageNotFoundError
	if errors.As(err, &notFound) {
		h.respond(w, http.StatusNotFound, envelope{Success: false, Error: notFound.Error()})
		return
	}
	h.logger.Error("request failed", "error", err)
	h.respond(w, http.StatusInternalServerError, envelope{Success: false, Error: "internal error"})
}

func (h *Handler) respond(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response encode failed", "error", err)
	}
}

func stringField(body map[string]any, key, fallback string) string {
	if value, ok := body[key].(string); ok && value != "" {
		return value
	}
	return fallback
}
