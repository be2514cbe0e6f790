package handlers

import (
	"encoding/json"
	"net/http"

	"rakta/internal/broadcast"
	"rakta/internal/domain"
	"rakta/internal/infra"
)

// App is the handler container holding every collaborator the REST surface
// needs. Broadcast is nil when the SMS gateway is not configured.
type App struct {
	Donors     domain.DonorRepository
	Donations  domain.DonationRepository
	OrgProfile domain.OrgProfileRepository
	Broadcast  *broadcast.Service
	Logger     *infra.Logger
	JWTSecret  string

	AdminEmail    string
	AdminPassword string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": slug, "message": message},
	})
}
