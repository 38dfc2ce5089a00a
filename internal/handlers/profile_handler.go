package handlers

import (
	"net/http"

	"github.com/cashbook/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	profiles  *services.ProfileService
	validator *services.ValidationHelper
	logger    zerolog.Logger
}

func NewProfileHandler(profiles *services.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		validator: services.NewValidationHelper(),
		logger:    logger,
	}
}

func (h *ProfileHandler) Routes(r chi.Router) {
	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=150"`
}

// GetProfile returns the caller's public profile
// @Summary Get profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Profile
// @Failure 401 {object} services.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	p, err := h.profiles.GetProfile(r.Context(), owner)
	if err != nil {
		fail(h.logger, w, r, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfile sets the display name shown by BID lookups
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateProfileRequest true "Profile"
// @Success 200 {object} services.Profile
// @Failure 400 {object} services.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	p, err := h.profiles.SetDisplayName(r.Context(), owner, req.DisplayName)
	if err != nil {
		fail(h.logger, w, r, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
