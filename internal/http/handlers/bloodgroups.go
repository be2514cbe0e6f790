package handlers

import (
	"net/http"

	"rakta/internal/domain"
)

// BloodGroups serves the static ABO/Rh compatibility reference.
func (a *App) BloodGroups(w http.ResponseWriter, r *http.Request) {
	items := make([]map[string]any, 0, len(domain.BloodGroupCompatibilities))
	for _, c := range domain.BloodGroupCompatibilities {
		items = append(items, map[string]any{
			"name":             c.Name,
			"can_donate_to":    c.CanDonateTo,
			"can_receive_from": c.CanReceiveFrom,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
