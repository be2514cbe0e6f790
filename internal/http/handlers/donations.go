package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rakta/internal/csvio"
	"rakta/internal/domain"
)

type donationRequest struct {
	DonorID      string `json:"donor_id"`
	DonationDate string `json:"donation_date"`
	Location     string `json:"location"`
	Notes        string `json:"notes"`
}

func (req donationRequest) parse() (domain.Donation, string) {
	if req.DonorID == "" {
		return domain.Donation{}, "donor_id is required"
	}
	date, err := time.Parse("2006-01-02", req.DonationDate)
	if err != nil {
		return domain.Donation{}, "donation_date must be YYYY-MM-DD"
	}
	return domain.Donation{
		DonorID:      req.DonorID,
		DonationDate: date,
		Location:     req.Location,
		Notes:        req.Notes,
	}, ""
}

func donationDTO(d domain.Donation) map[string]any {
	return map[string]any{
		"id":            d.ID,
		"donor_id":      d.DonorID,
		"donation_date": d.DonationDate.Format("2006-01-02"),
		"location":      d.Location,
		"notes":         d.Notes,
		"created_at":    d.CreatedAt,
	}
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	donation, msg := req.parse()
	if msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	if _, err := a.Donors.GetByID(r.Context(), donation.DonorID); errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donor not found")
		return
	}
	if err := a.Donations.Create(r.Context(), &donation); err != nil {
		a.Logger.Error().Err(err).Msg("create donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create donation")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": donation.ID})
}

func (a *App) DonationsUpdate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	donation, msg := req.parse()
	if msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	donation.ID = chi.URLParam(r, "id")
	err := a.Donations.Update(r.Context(), &donation)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donation not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("update donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update donation")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": donation.ID})
}

func (a *App) DonationsDelete(w http.ResponseWriter, r *http.Request) {
	err := a.Donations.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donation not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("delete donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete donation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DonationsByDonor lists one donor's donation history, newest first.
func (a *App) DonationsByDonor(w http.ResponseWriter, r *http.Request) {
	donorID := chi.URLParam(r, "id")
	if _, err := a.Donors.GetByID(r.Context(), donorID); errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donor not found")
		return
	}
	donations, err := a.Donations.ListByDonor(r.Context(), donorID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	items := make([]map[string]any, 0, len(donations))
	for _, d := range donations {
		items = append(items, donationDTO(d))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// DonationsList returns every donation joined with its donor.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	joined, err := a.Donations.ListWithDonors(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	items := make([]map[string]any, 0, len(joined))
	for _, j := range joined {
		item := donationDTO(j.Donation)
		item["donor"] = donorDTO(j.Donor)
		items = append(items, item)
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// DonationsImport ingests the bulk donation CSV, matching donors by exact
// phone equality. Unmatched or malformed rows are counted, never fatal.
func (a *App) DonationsImport(w http.ResponseWriter, r *http.Request) {
	rows, result, err := csvio.ReadDonationRows(r.Body)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	donors, err := a.Donors.List(r.Context(), domain.CohortFilter{})
	if err != nil {
		a.Logger.Error().Err(err).Msg("load donors for import failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donors")
		return
	}

	donations := csvio.MatchDonations(rows, donors, result)
	for i := range donations {
		if err := a.Donations.Create(r.Context(), &donations[i]); err != nil {
			a.Logger.Error().Err(err).Msg("import donation failed")
			result.Imported--
			result.Skipped++
			result.Errors = append(result.Errors, csvio.RowError{Reason: "failed to store donation"})
		}
	}
	a.json(w, http.StatusOK, result)
}
