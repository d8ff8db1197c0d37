package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Pineapplelles/habit-pulse/internal/config"
	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	todayOnly := true
	if v := r.URL.Query().Get("todayOnly"); v != "" {
		todayOnly = v == "true" || v == "1"
	}

	today, err := dateParamOrToday(r, "date")
	if err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	responses, err := h.service.List(r.Context(), todayOnly, today)
	if err != nil {
		writeServiceError(w, log, err, "Failed to list goals")
		return
	}

	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	response, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, log, err, "Failed to get goal")
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeServiceError(w, log, err, "Failed to create goal")
		return
	}

	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeServiceError(w, log, err, "Failed to update goal")
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, log, err, "Failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Toggle flips today's completion by default; an explicit date query
// param toggles another day.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	day, err := dateParamOrToday(r, "date")
	if err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	response, err := h.service.Toggle(r.Context(), chi.URLParam(r, "id"), day)
	if err != nil {
		writeServiceError(w, log, err, "Failed to toggle completion")
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto ReorderGoalsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Reorder(r.Context(), dto); err != nil {
		writeServiceError(w, log, err, "Failed to reorder goals")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func dateParamOrToday(r *http.Request, param string) (util.DateOnly, error) {
	v := r.URL.Query().Get(param)
	if v == "" {
		return util.Today(), nil
	}
	return util.ParseDateOnly(v)
}

func writeServiceError(w http.ResponseWriter, log *logrus.Entry, err error, msg string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		config.JSONError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrGoalNotFound), errors.Is(err, ErrInvalidID):
		config.JSONError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, ErrInvalidSchedule), errors.Is(err, ErrNameRequired):
		config.JSONError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error(msg)
		config.JSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
