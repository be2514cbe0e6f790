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

type donorRequest struct {
	Name         string `json:"name"`
	BloodGroup   string `json:"blood_group"`
	Phone        string `json:"phone"`
	Province     string `json:"province"`
	District     string `json:"district"`
	Municipality string `json:"municipality"`
}

func (req donorRequest) validate() string {
	switch {
	case req.Name == "":
		return "name is required"
	case req.Phone == "":
		return "phone is required"
	case !domain.IsValidBloodGroup(req.BloodGroup):
		return "blood_group must be one of the canonical ABO/Rh values"
	case req.Province == "" || req.District == "" || req.Municipality == "":
		return "province, district and municipality are required"
	}
	return ""
}

func donorDTO(d domain.Donor) map[string]any {
	return map[string]any{
		"id":           d.ID,
		"name":         d.Name,
		"blood_group":  d.BloodGroup,
		"phone":        d.Phone,
		"province":     d.Province,
		"district":     d.District,
		"municipality": d.Municipality,
		"created_at":   d.CreatedAt,
	}
}

func filterFromQuery(r *http.Request) domain.CohortFilter {
	q := r.URL.Query()
	return domain.CohortFilter{
		BloodGroup:   q.Get("blood_group"),
		Province:     q.Get("province"),
		District:     q.Get("district"),
		Municipality: q.Get("municipality"),
	}
}

func (a *App) DonorsList(w http.ResponseWriter, r *http.Request) {
	donors, err := a.Donors.List(r.Context(), filterFromQuery(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donors failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donors")
		return
	}
	items := make([]map[string]any, 0, len(donors))
	for _, d := range donors {
		items = append(items, donorDTO(d))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (a *App) DonorsCreate(w http.ResponseWriter, r *http.Request) {
	var req donorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if msg := req.validate(); msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	donor := domain.Donor{
		Name:         req.Name,
		BloodGroup:   req.BloodGroup,
		Phone:        req.Phone,
		Province:     req.Province,
		District:     req.District,
		Municipality: req.Municipality,
	}
	if err := a.Donors.Create(r.Context(), &donor); err != nil {
		a.Logger.Error().Err(err).Msg("create donor failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create donor")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": donor.ID})
}

func (a *App) DonorsGet(w http.ResponseWriter, r *http.Request) {
	donor, err := a.Donors.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donor not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("get donor failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donor")
		return
	}
	a.json(w, http.StatusOK, donorDTO(*donor))
}

func (a *App) DonorsUpdate(w http.ResponseWriter, r *http.Request) {
	var req donorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if msg := req.validate(); msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	donor := domain.Donor{
		ID:           chi.URLParam(r, "id"),
		Name:         req.Name,
		BloodGroup:   req.BloodGroup,
		Phone:        req.Phone,
		Province:     req.Province,
		District:     req.District,
		Municipality: req.Municipality,
	}
	err := a.Donors.Update(r.Context(), &donor)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donor not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("update donor failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update donor")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": donor.ID})
}

func (a *App) DonorsDelete(w http.ResponseWriter, r *http.Request) {
	err := a.Donors.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donor not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("delete donor failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete donor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DonorsValues serves the distinct values of one filterable column for the
// filter dropdowns.
func (a *App) DonorsValues(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	values, err := a.Donors.DistinctValues(r.Context(), field)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]any{"field": field, "values": values})
}

// DonorsEligibility lists donors with their derived eligibility, optionally
// narrowed to ?status=eligible or ?status=ineligible.
func (a *App) DonorsEligibility(w http.ResponseWriter, r *http.Request) {
	pairs, err := a.Donors.ListWithEligibility(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donors with eligibility failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donors")
		return
	}

	status := r.URL.Query().Get("status")
	var items []map[string]any
	eligible, ineligible, neverDonated := 0, 0, 0
	for _, p := range pairs {
		if p.Eligibility.IsEligible {
			eligible++
		} else {
			ineligible++
		}
		if p.Eligibility.TotalDonations == 0 {
			neverDonated++
		}
		if status == "eligible" && !p.Eligibility.IsEligible {
			continue
		}
		if status == "ineligible" && p.Eligibility.IsEligible {
			continue
		}
		item := donorDTO(p.Donor)
		item["is_eligible"] = p.Eligibility.IsEligible
		item["total_donations"] = p.Eligibility.TotalDonations
		if p.Eligibility.LastDonationDate != nil {
			item["last_donation_date"] = p.Eligibility.LastDonationDate.Format("2006-01-02")
		} else {
			item["last_donation_date"] = nil
		}
		items = append(items, item)
	}

	a.json(w, http.StatusOK, map[string]any{
		"items": items,
		"summary": map[string]int{
			"total":         len(pairs),
			"eligible":      eligible,
			"ineligible":    ineligible,
			"never_donated": neverDonated,
		},
	})
}

// DonorsExport streams the current donor list as CSV, honoring the same
// filter query parameters as the list endpoint.
func (a *App) DonorsExport(w http.ResponseWriter, r *http.Request) {
	donors, err := a.Donors.List(r.Context(), filterFromQuery(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("export donors failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donors")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="donors-`+time.Now().Format("2006-01-02")+`.csv"`)
	if err := csvio.WriteDonors(w, donors); err != nil {
		a.Logger.Error().Err(err).Msg("write donor csv failed")
	}
}

// DonorsImport ingests a donor CSV upload. Row-level failures are reported,
// not fatal.
func (a *App) DonorsImport(w http.ResponseWriter, r *http.Request) {
	donors, result, err := csvio.ReadDonors(r.Body)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	for i := range donors {
		if err := a.Donors.Create(r.Context(), &donors[i]); err != nil {
			a.Logger.Error().Err(err).Str("phone", donors[i].Phone).Msg("import donor failed")
			result.Imported--
			result.Skipped++
			result.Errors = append(result.Errors, csvio.RowError{Reason: "failed to store donor " + donors[i].Name})
		}
	}
	a.json(w, http.StatusOK, result)
}
