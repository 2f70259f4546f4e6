package handlers

import (
	"Scribz/internal/middleware"
	"Scribz/internal/service"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и текущего пользователя.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	// длину пароля проверяет сервис после проверки занятости email
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup регистрирует пользователя и возвращает токен
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.Logger.Warnw("Signup: invalid request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	res, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateAccount):
			writeError(w, r, http.StatusConflict, "user already exists")
		case errors.Is(err, service.ErrValidation):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Errorw("Signup: service error", "error", err, "request_id", chimw.GetReqID(r.Context()))
			writeError(w, r, http.StatusInternalServerError, "server error")
		}
		return
	}

	h.Logger.Infow("user registered", "user_id", res.User.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

// Login проверяет пару email/пароль и возвращает токен
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	res, err := h.UserService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, r, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, service.ErrValidation):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Errorw("Login: service error", "error", err, "request_id", chimw.GetReqID(r.Context()))
			writeError(w, r, http.StatusInternalServerError, "server error")
		}
		return
	}
	render.JSON(w, r, res)
}

// Me возвращает пользователя текущего токена
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, service.ErrMissingToken.Error())
		return
	}
	render.JSON(w, r, user.Summary())
}
