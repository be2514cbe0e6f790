package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"rakta/internal/domain"
)

type orgProfileRequest struct {
	OrgName      string `json:"org_name"`
	ContactPhone string `json:"contact_phone"`
	Province     string `json:"province"`
	District     string `json:"district"`
	Municipality string `json:"municipality"`
}

// OrgProfileGet serves the organization settings that feed broadcast
// defaults.
func (a *App) OrgProfileGet(w http.ResponseWriter, r *http.Request) {
	profile, err := a.OrgProfile.Get(r.Context())
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "organization profile is not set up")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("get org profile failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"org_name":      profile.OrgName,
		"contact_phone": profile.ContactPhone,
		"province":      profile.Province,
		"district":      profile.District,
		"municipality":  profile.Municipality,
		"updated_at":    profile.UpdatedAt,
	})
}

// OrgProfileUpdate writes the organization settings row.
func (a *App) OrgProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var req orgProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.OrgName == "" || req.ContactPhone == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "org_name and contact_phone are required")
		return
	}
	profile := domain.OrgProfile{
		OrgName:      req.OrgName,
		ContactPhone: req.ContactPhone,
		Province:     req.Province,
		District:     req.District,
		Municipality: req.Municipality,
	}
	if err := a.OrgProfile.Upsert(r.Context(), &profile); err != nil {
		a.Logger.Error().Err(err).Msg("save org profile failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save profile")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"status": "saved"})
}
