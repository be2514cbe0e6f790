package handlers

import (
	"encoding/json"
	"net/http"

	"rakta/internal/broadcast"
	"rakta/internal/domain"
)

type smsPreviewRequest struct {
	BloodGroup   string `json:"blood_group"`
	Municipality string `json:"municipality"`
	District     string `json:"district"`
	Province     string `json:"province"`
}

type smsSendRequest struct {
	Filter struct {
		BloodGroup   string `json:"blood_group"`
		Province     string `json:"province"`
		District     string `json:"district"`
		Municipality string `json:"municipality"`
	} `json:"filter"`
	Message      string `json:"message"`
	EligibleOnly bool   `json:"eligible_only"`
}

// SMSPreview renders the broadcast template with the org profile and reports
// whether the result exceeds a single SMS segment. The renderer never
// truncates; the warning is the caller's to surface.
func (a *App) SMSPreview(w http.ResponseWriter, r *http.Request) {
	var req smsPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.BloodGroup == "" || req.Municipality == "" || req.District == "" || req.Province == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "blood_group, municipality, district and province are required")
		return
	}

	profile, err := a.OrgProfile.Get(r.Context())
	if err != nil {
		a.error(w, http.StatusConflict, "not_configured", "organization profile is not set up")
		return
	}

	message := broadcast.RenderMessage(
		req.BloodGroup, req.Municipality, req.District, req.Province,
		profile.OrgName, profile.ContactPhone,
	)
	a.json(w, http.StatusOK, map[string]any{
		"message":         message,
		"length":          len(message),
		"exceeds_limit":   broadcast.ExceedsSMSLength(message),
		"transport_limit": broadcast.MaxSMSLength,
	})
}

// SMSSend resolves the donor cohort for the filter and dispatches the message.
// The aggregate result reports per-recipient failures verbatim.
func (a *App) SMSSend(w http.ResponseWriter, r *http.Request) {
	if a.Broadcast == nil {
		a.error(w, http.StatusServiceUnavailable, "not_configured", "sms gateway is not configured")
		return
	}

	var req smsSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Message == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "message is required")
		return
	}

	filter := domain.CohortFilter{
		BloodGroup:   req.Filter.BloodGroup,
		Province:     req.Filter.Province,
		District:     req.Filter.District,
		Municipality: req.Filter.Municipality,
	}

	result := a.Broadcast.SendToFilteredDonors(r.Context(), filter, req.Message, req.EligibleOnly)

	if result.Success && result.SentCount == 0 {
		// Validation outcome, not a delivery failure: the filter matched nobody.
		a.error(w, http.StatusBadRequest, "empty_cohort", domain.ErrEmptyCohort.Error())
		return
	}

	status := http.StatusOK
	if !result.Success && result.SentCount == 0 && len(result.Errors) == 1 && result.Errors[0].Recipient == "" {
		// Whole-operation failure (fetch or configuration), not partial delivery.
		status = http.StatusBadGateway
	}
	a.json(w, status, result)
}
