package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rakta/internal/http/handlers"
	"rakta/internal/infra"
	"rakta/internal/middleware"
)

// RouterOptions carries the cross-cutting dependencies the route tree needs.
type RouterOptions struct {
	Logger          infra.Logger
	JWTSecret       string
	RateLimitPerMin int
	AllowedOrigins  []string
	Registry        *prometheus.Registry
}

// NewRouter builds the full REST surface. Mutating and broadcast routes sit
// behind bearer-token auth; the SMS send route additionally gets a per-IP
// rate limit.
func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(opts.Logger))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}

	r.Get("/v1/healthz", app.Health)
	if opts.Registry != nil {
		r.Method(stdhttp.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Post("/v1/auth/login", app.AuthLogin)
	r.Get("/v1/blood-groups", app.BloodGroups)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))

		r.Route("/donors", func(r chi.Router) {
			r.Get("/", app.DonorsList)
			r.Post("/", app.DonorsCreate)
			r.Get("/values", app.DonorsValues)
			r.Get("/eligibility", app.DonorsEligibility)
			r.Get("/export", app.DonorsExport)
			r.Post("/import", app.DonorsImport)
			r.Get("/{id}", app.DonorsGet)
			r.Put("/{id}", app.DonorsUpdate)
			r.Delete("/{id}", app.DonorsDelete)
			r.Get("/{id}/donations", app.DonationsByDonor)
		})

		r.Route("/donations", func(r chi.Router) {
			r.Get("/", app.DonationsList)
			r.Post("/", app.DonationsCreate)
			r.Post("/import", app.DonationsImport)
			r.Put("/{id}", app.DonationsUpdate)
			r.Delete("/{id}", app.DonationsDelete)
		})

		r.Get("/export", app.ExportAll)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/dashboard", app.StatsDashboard)
			r.Get("/donations", app.StatsDonations)
		})

		r.Route("/org-profile", func(r chi.Router) {
			r.Get("/", app.OrgProfileGet)
			r.Put("/", app.OrgProfileUpdate)
		})

		r.Route("/sms", func(r chi.Router) {
			r.Post("/preview", app.SMSPreview)
			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).
				Post("/send", app.SMSSend)
		})
	})

	return r
}
