package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Pineapplelles/habit-pulse/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Register(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTooShort),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrUsernameTaken):
			config.JSONError(w, http.StatusBadRequest, err.Error())
		default:
			log.WithError(err).Error("Failed to register user")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Login(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			config.JSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.WithError(err).Error("Failed to log user in")
		config.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    response.Token,
		Path:     "/",
		Expires:  response.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	response, err := h.service.CurrentUser(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.JSONError(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, ErrUserNotFound):
			config.JSONError(w, http.StatusNotFound, "user not found")
		default:
			log.WithError(err).Error("Failed to load current user")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, response)
}
