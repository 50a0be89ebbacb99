package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestWebhook_SendsJSONPayload(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewWebhook(srv.URL, 2*time.Second)
	err := c.Send(context.Background(), Message{
		Title: "Foo", Summary: "gist", Path: "2026/01/15-foo.md", Date: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Title != "Foo" || got.Path != "2026/01/15-foo.md" {
		t.Errorf("payload = %+v", got)
	}
}

func TestWebhook_OmitsEmptySummary(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewWebhook(srv.URL, 2*time.Second)
	if err := c.Send(context.Background(), Message{Title: "Foo"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if strings.Contains(string(raw), "summary") {
		t.Errorf("empty summary serialized: %s", raw)
	}
}

func TestWebhook_RetriesOn5xx(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewWebhook(srv.URL, 2*time.Second)
	if err := c.Send(context.Background(), Message{Title: "Foo"}); err != nil {
		t.Fatalf("Send after retries: %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("hits = %d, want 3", hits.Load())
	}
}

func TestWebhook_NoRetryOn4xx(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewWebhook(srv.URL, 2*time.Second)
	if err := c.Send(context.Background(), Message{Title: "Foo"}); err == nil {
		t.Fatal("expected error on 400")
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
}

func TestEmail_BuildsHTMLMessage(t *testing.T) {
	var sentTo []string
	var sentMsg []byte
	c := NewEmail("smtp.example.com", 587, "user", "pass", "dagaz@example.com", []string{"me@example.com"})
	c.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if addr != "smtp.example.com:587" {
			t.Errorf("addr = %s", addr)
		}
		if from != "dagaz@example.com" {
			t.Errorf("from = %s", from)
		}
		sentTo = to
		sentMsg = msg
		return nil
	}

	err := c.Send(Message{Title: "有趣的標題 <tags>", Summary: "gist", Path: "2026/01/15-x.md", Date: "2026-01-15"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(sentTo) != 1 || sentTo[0] != "me@example.com" {
		t.Errorf("to = %v", sentTo)
	}
	body := string(sentMsg)
	if !strings.Contains(body, "Content-Type: text/html") {
		t.Error("missing html content type")
	}
	if !strings.Contains(body, "=?UTF-8?B?") {
		t.Error("non-ASCII subject not MIME encoded")
	}
	if strings.Contains(body, "<tags>") {
		t.Error("title not HTML-escaped in body")
	}
}

func TestEmail_OmitsEmptySummary(t *testing.T) {
	var sentMsg []byte
	c := NewEmail("h", 25, "", "", "a@b", []string{"c@d"})
	c.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		sentMsg = msg
		return nil
	}
	if err := c.Send(Message{Title: "Plain", Date: "2026-01-15", Path: "p.md"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if strings.Contains(string(sentMsg), "<blockquote>") {
		t.Error("empty summary rendered")
	}
}
