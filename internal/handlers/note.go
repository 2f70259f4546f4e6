package handlers

import (
	"Scribz/internal/middleware"
	"Scribz/internal/model"
	"Scribz/internal/service"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// NoteHandler обрабатывает CRUD заметок текущего пользователя.
type NoteHandler struct {
	NoteService *service.NoteService
	Logger      *zap.SugaredLogger
}

func NewNoteHandler(noteService *service.NoteService, logger *zap.SugaredLogger) *NoteHandler {
	return &NoteHandler{NoteService: noteService, Logger: logger}
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color" validate:"omitempty,max=32"`
}

// updateNoteRequest — isTrashed намеренно отсутствует: корзина только через toggle.
type updateNoteRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Color      *string `json:"color" validate:"omitempty,max=32"`
	IsFavorite *bool   `json:"isFavorite"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List GET /api/notes?filter=&search=
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	notes, err := h.NoteService.List(r.Context(), userID, model.ParseNoteFilter(q.Get("filter")), q.Get("search"))
	if err != nil {
		h.fail(w, r, "List", err)
		return
	}
	render.JSON(w, r, notes)
}

// Create POST /api/notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createNoteRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	note, err := h.NoteService.Create(r.Context(), userID, service.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	})
	if err != nil {
		h.fail(w, r, "Create", err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, note)
}

// Get GET /api/notes/{id}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	note, err := h.NoteService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "Get", err)
		return
	}
	render.JSON(w, r, note)
}

// Update PUT /api/notes/{id}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req updateNoteRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	note, err := h.NoteService.Update(r.Context(), userID, chi.URLParam(r, "id"), service.UpdateNoteInput{
		Title:      req.Title,
		Content:    req.Content,
		Color:      req.Color,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		h.fail(w, r, "Update", err)
		return
	}
	render.JSON(w, r, note)
}

// ToggleFavorite PATCH /api/notes/{id}/favorite
func (h *NoteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	note, err := h.NoteService.ToggleFavorite(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "ToggleFavorite", err)
		return
	}
	render.JSON(w, r, note)
}

// ToggleTrash PATCH /api/notes/{id}/trash
func (h *NoteHandler) ToggleTrash(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	note, err := h.NoteService.ToggleTrash(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "ToggleTrash", err)
		return
	}
	render.JSON(w, r, note)
}

// Delete DELETE /api/notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.NoteService.DeletePermanently(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Delete", err)
		return
	}
	render.JSON(w, r, messageResponse{Message: "note deleted"})
}

func (h *NoteHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, service.ErrMissingToken.Error())
		return "", false
	}
	return userID, true
}

func (h *NoteHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "note not found")
	case errors.Is(err, service.ErrValidation):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Errorw(op+": service error", "error", err, "request_id", chimw.GetReqID(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "server error")
	}
}
