package handlers

import (
	"bytes"
	"net/http"
	"time"

	"rakta/internal/csvio"
	"rakta/internal/domain"
	"rakta/pkg/zip"
)

// ExportAll bundles the full donor and donation datasets into one zip
// download for offline backups.
func (a *App) ExportAll(w http.ResponseWriter, r *http.Request) {
	donors, err := a.Donors.List(r.Context(), domain.CohortFilter{})
	if err != nil {
		a.Logger.Error().Err(err).Msg("export donors failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donors")
		return
	}
	donations, err := a.Donations.ListWithDonors(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("export donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}

	var donorsCSV, donationsCSV bytes.Buffer
	if err := csvio.WriteDonors(&donorsCSV, donors); err != nil {
		a.Logger.Error().Err(err).Msg("write donor csv failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build export")
		return
	}
	if err := csvio.WriteDonations(&donationsCSV, donations); err != nil {
		a.Logger.Error().Err(err).Msg("write donation csv failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build export")
		return
	}

	archive, err := zip.Archive([]zip.File{
		{Name: "donors.csv", Data: donorsCSV.Bytes()},
		{Name: "donations.csv", Data: donationsCSV.Bytes()},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("build export archive failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="rakta-export-`+time.Now().Format("2006-01-02")+`.zip"`)
	if _, err := w.Write(archive); err != nil {
		a.Logger.Error().Err(err).Msg("write export archive failed")
	}
}
