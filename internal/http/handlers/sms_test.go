package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"rakta/internal/broadcast"
	"rakta/internal/domain"
	"rakta/internal/providers/twilio"
)

type recordingGateway struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]string
}

func (g *recordingGateway) Send(_ context.Context, to, _ string) (*twilio.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if reason, ok := g.failFor[to]; ok {
		return nil, errors.New(reason)
	}
	g.sent = append(g.sent, to)
	return &twilio.Message{SID: "SM" + to, To: to, Status: "queued"}, nil
}

func broadcastApp(donors *fakeDonorRepo, gw broadcast.Gateway) *App {
	app := testApp()
	app.Donors = donors
	dispatcher := broadcast.NewDispatcher(gw, broadcast.DispatcherOptions{Concurrency: 2})
	app.Broadcast = broadcast.NewService(donors, dispatcher, broadcast.ServiceOptions{})
	return app
}

func TestSMSSendWithoutGateway(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("POST", "/v1/sms/send", strings.NewReader(`{"message":"hi"}`))
	rr := httptest.NewRecorder()
	app.SMSSend(rr, req)

	if rr.Code != 503 {
		t.Fatalf("unexpected status: got %d, want 503", rr.Code)
	}
}

func TestSMSSendPartialFailureStaysOK(t *testing.T) {
	gw := &recordingGateway{failFor: map[string]string{"+9772222222": "unreachable"}}
	app := broadcastApp(&fakeDonorRepo{donors: kathmanduDonors()}, gw)

	body := `{"filter":{"province":"Bagmati"},"message":"URGENT: blood needed"}`
	req := httptest.NewRequest("POST", "/v1/sms/send", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.SMSSend(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	var result broadcast.Result
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Success {
		t.Fatal("expected success=false with a failed recipient")
	}
	if result.SentCount != 1 {
		t.Fatalf("expected 1 delivery, got %d", result.SentCount)
	}
	if len(result.Errors) != 1 || result.Errors[0].Recipient != "+9772222222" {
		t.Fatalf("unexpected errors %#v", result.Errors)
	}
}

func TestSMSSendFetchFailureIsBadGateway(t *testing.T) {
	donors := &fakeDonorRepo{err: errors.New("connection refused")}
	app := broadcastApp(donors, &recordingGateway{})

	req := httptest.NewRequest("POST", "/v1/sms/send", strings.NewReader(`{"message":"hi"}`))
	rr := httptest.NewRecorder()
	app.SMSSend(rr, req)

	if rr.Code != 502 {
		t.Fatalf("unexpected status: got %d, want 502", rr.Code)
	}
}

func TestSMSSendEmptyCohortIsValidationError(t *testing.T) {
	app := broadcastApp(&fakeDonorRepo{donors: kathmanduDonors()}, &recordingGateway{})

	body := `{"filter":{"province":"Karnali"},"message":"URGENT: blood needed"}`
	req := httptest.NewRequest("POST", "/v1/sms/send", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.SMSSend(rr, req)

	if rr.Code != 400 {
		t.Fatalf("unexpected status: got %d, want 400", rr.Code)
	}
}

func TestSMSSendRequiresMessage(t *testing.T) {
	app := broadcastApp(&fakeDonorRepo{}, &recordingGateway{})

	req := httptest.NewRequest("POST", "/v1/sms/send", strings.NewReader(`{"filter":{}}`))
	rr := httptest.NewRecorder()
	app.SMSSend(rr, req)

	if rr.Code != 400 {
		t.Fatalf("unexpected status: got %d, want 400", rr.Code)
	}
}

func TestSMSPreviewUsesOrgProfile(t *testing.T) {
	app := testApp()
	app.OrgProfile = &fakeOrgProfileRepo{profile: &domain.OrgProfile{
		OrgName:      "Rakta Sewa",
		ContactPhone: "+9779800000000",
	}}

	body := `{"blood_group":"O-","municipality":"Kirtipur","district":"Kathmandu","province":"Bagmati"}`
	req := httptest.NewRequest("POST", "/v1/sms/preview", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.SMSPreview(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	var payload struct {
		Message      string `json:"message"`
		ExceedsLimit bool   `json:"exceeds_limit"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(payload.Message, "O- blood needed in Kirtipur, Kathmandu, Bagmati") {
		t.Fatalf("unexpected message %q", payload.Message)
	}
	if !strings.HasSuffix(payload.Message, "+9779800000000") {
		t.Fatalf("message must end with the contact phone, got %q", payload.Message)
	}
	if payload.ExceedsLimit {
		t.Fatalf("short preview should fit one segment: %q", payload.Message)
	}
}

func TestSMSPreviewWithoutProfile(t *testing.T) {
	app := testApp()

	body := `{"blood_group":"O-","municipality":"Kirtipur","district":"Kathmandu","province":"Bagmati"}`
	req := httptest.NewRequest("POST", "/v1/sms/preview", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.SMSPreview(rr, req)

	if rr.Code != 409 {
		t.Fatalf("unexpected status: got %d, want 409", rr.Code)
	}
}
