package calendar

import (
	"errors"
	"net/http"

	"github.com/Pineapplelles/habit-pulse/internal/config"
	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Range(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	start, err := util.ParseDateOnly(r.URL.Query().Get("startDate"))
	if err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD")
		return
	}
	end, err := util.ParseDateOnly(r.URL.Query().Get("endDate"))
	if err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid endDate, expected YYYY-MM-DD")
		return
	}

	summaries, err := h.service.Range(r.Context(), start, end)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.JSONError(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrRangeTooLarge):
			config.JSONError(w, http.StatusBadRequest, err.Error())
		default:
			log.WithError(err).Error("Failed to build calendar range")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) Day(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	day, err := util.ParseDateOnly(chi.URLParam(r, "date"))
	if err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	detail, err := h.service.Day(r.Context(), day)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			config.JSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		log.WithError(err).Error("Failed to build day detail")
		config.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, detail)
}
