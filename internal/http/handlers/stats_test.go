package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"rakta/internal/domain"
)

func TestStatsDashboard(t *testing.T) {
	app := testApp()
	app.Donors = &fakeDonorRepo{donors: kathmanduDonors()}

	req := httptest.NewRequest("GET", "/v1/stats/dashboard", nil)
	rr := httptest.NewRecorder()
	app.StatsDashboard(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	var payload struct {
		TotalDonors  int              `json:"total_donors"`
		RecentDonors []map[string]any `json:"recent_donors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.TotalDonors != 3 {
		t.Fatalf("expected 3 donors, got %d", payload.TotalDonors)
	}
	if len(payload.RecentDonors) != 3 {
		t.Fatalf("expected 3 recent donors, got %d", len(payload.RecentDonors))
	}
}

func TestStatsDonations(t *testing.T) {
	app := testApp()
	app.Donations = &fakeDonationRepo{stats: domain.DonationStats{Total: 12, Last30Days: 2, Last90Days: 7}}

	req := httptest.NewRequest("GET", "/v1/stats/donations", nil)
	rr := httptest.NewRecorder()
	app.StatsDonations(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	var payload map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["total"] != 12 || payload["last_30_days"] != 2 || payload["last_90_days"] != 7 {
		t.Fatalf("unexpected counters %#v", payload)
	}
}

func TestOrgProfileRoundTrip(t *testing.T) {
	app := testApp()
	repo := &fakeOrgProfileRepo{}
	app.OrgProfile = repo

	body := `{"org_name":"Rakta Sewa","contact_phone":"+9779800000000","province":"Bagmati","district":"Kathmandu","municipality":"Kathmandu"}`
	req := httptest.NewRequest("PUT", "/v1/org-profile", nil)
	rr := httptest.NewRecorder()
	app.OrgProfileUpdate(rr, req)
	if rr.Code != 400 {
		t.Fatalf("empty body should be rejected, got %d", rr.Code)
	}

	req = httptest.NewRequest("PUT", "/v1/org-profile", strings.NewReader(body))
	rr = httptest.NewRecorder()
	app.OrgProfileUpdate(rr, req)
	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	if repo.saved == nil || repo.saved.OrgName != "Rakta Sewa" {
		t.Fatalf("profile not stored: %#v", repo.saved)
	}

	app.OrgProfile = &fakeOrgProfileRepo{profile: repo.saved}
	req = httptest.NewRequest("GET", "/v1/org-profile", nil)
	rr = httptest.NewRecorder()
	app.OrgProfileGet(rr, req)
	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["contact_phone"] != "+9779800000000" {
		t.Fatalf("unexpected profile %#v", payload)
	}
}
