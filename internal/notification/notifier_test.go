package notification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ranjananubhav7/algobot/internal/model"
)

func TestTrendAlert(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	alert := TrendAlert("Stoic", "BTCUSDT", model.TrendNone, model.TrendBullish, ts)

	if alert.Level != AlertInfo {
		t.Errorf("level = %q", alert.Level)
	}
	if alert.Title != "BTCUSDT: Stoic BULLISH" {
		t.Errorf("title = %q", alert.Title)
	}
	if !strings.Contains(alert.Message, "NONE to BULLISH") {
		t.Errorf("message = %q", alert.Message)
	}
	if !strings.Contains(alert.Message, "2024-01-01T12:00:00Z") {
		t.Errorf("message missing timestamp: %q", alert.Message)
	}
}

type recordingNotifier struct {
	alerts []Alert
	err    error
}

func (r *recordingNotifier) Send(_ context.Context, a Alert) error {
	r.alerts = append(r.alerts, a)
	return r.err
}

func TestMulti_FansOutAndSurvivesFailures(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("down")}
	healthy := &recordingNotifier{}
	m := NewMulti(failing, healthy)

	alert := Alert{Level: AlertInfo, Title: "t", Message: "m"}
	if err := m.Send(context.Background(), alert); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(failing.alerts) != 1 || len(healthy.alerts) != 1 {
		t.Errorf("fan-out incomplete: failing=%d healthy=%d",
			len(failing.alerts), len(healthy.alerts))
	}
}

func TestWebhookNotifier_PostsJSON(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	alert := Alert{Level: AlertInfo, Title: "BTCUSDT: Stoic BULLISH", Message: "switched"}
	if err := n.Send(context.Background(), alert); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	for _, want := range []string{`"source":"algobot"`, `"title":"BTCUSDT: Stoic BULLISH"`, `"level":"INFO"`} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("body missing %s: %s", want, gotBody)
		}
	}
}

func TestWebhookNotifier_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	if err := n.Send(context.Background(), Alert{Title: "t"}); err == nil {
		t.Error("expected error for 502 response")
	}
}

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("a_b*c.d-e")
	want := `a\_b\*c\.d\-e`
	if got != want {
		t.Errorf("escapeMarkdown = %q, want %q", got, want)
	}
}
