package handlers

import (
	"net/http"
)

// StatsDashboard serves the landing-page summary: donor totals and the most
// recently registered donors.
func (a *App) StatsDashboard(w http.ResponseWriter, r *http.Request) {
	total, err := a.Donors.Count(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("count donors failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	recent, err := a.Donors.ListRecent(r.Context(), 5)
	if err != nil {
		a.Logger.Error().Err(err).Msg("recent donors failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	items := make([]map[string]any, 0, len(recent))
	for _, d := range recent {
		items = append(items, donorDTO(d))
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_donors":  total,
		"recent_donors": items,
	})
}

// StatsDonations serves donation-volume counters.
func (a *App) StatsDonations(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Donations.Stats(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("donation stats failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total":        stats.Total,
		"last_30_days": stats.Last30Days,
		"last_90_days": stats.Last90Days,
	})
}
