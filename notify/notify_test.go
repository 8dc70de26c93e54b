// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func capturePayload(t *testing.T, kind string, ev EventSummary) webhookPayload {
	t.Helper()

	var captured webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("Failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sender := NewDiscordSender("http://localhost:3324")
	if err := sender.Send(server.URL, kind, ev); err != nil {
		t.Fatalf("Unexpected send error: %v", err)
	}
	return captured
}

func TestSendEmbedKinds(t *testing.T) {
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	tests := []struct {
		name          string
		kind          string
		ev            EventSummary
		expectedColor int
		wantInterval  bool
	}{
		{
			name:          "create",
			kind:          "create",
			ev:            EventSummary{ID: "evt1", Title: "Standup", Description: "Weekly"},
			expectedColor: colorCreate,
		},
		{
			name: "finalize carries confirmed time",
			kind: "finalize",
			ev: EventSummary{
				ID: "evt1", Title: "Standup",
				ConfirmedStartAt: &start, ConfirmedEndAt: &end,
			},
			expectedColor: colorFinalize,
			wantInterval:  true,
		},
		{
			name: "update carries new time",
			kind: "update",
			ev: EventSummary{
				ID: "evt1", Title: "Standup",
				ConfirmedStartAt: &start, ConfirmedEndAt: &end,
			},
			expectedColor: colorUpdate,
			wantInterval:  true,
		},
		{
			name:          "remind",
			kind:          "remind",
			ev:            EventSummary{ID: "evt1", Title: "Standup"},
			expectedColor: colorRemind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := capturePayload(t, tt.kind, tt.ev)

			if payload.Username != "MeetGrid" {
				t.Errorf("Expected username MeetGrid, got %s", payload.Username)
			}
			if len(payload.Embeds) != 1 {
				t.Fatalf("Expected 1 embed, got %d", len(payload.Embeds))
			}

			e := payload.Embeds[0]
			if e.Color != tt.expectedColor {
				t.Errorf("Expected color %#x, got %#x", tt.expectedColor, e.Color)
			}
			if !strings.Contains(e.Description, "Standup") {
				t.Errorf("Expected title in description, got %q", e.Description)
			}

			var haveInterval, haveURL bool
			for _, f := range e.Fields {
				if strings.Contains(f.Value, "10:00 - 11:30") {
					haveInterval = true
				}
				if strings.Contains(f.Value, "/events/evt1") {
					haveURL = true
				}
			}
			if tt.wantInterval && !haveInterval {
				t.Errorf("Expected confirmed interval field, got %v", e.Fields)
			}
			if !haveURL {
				t.Errorf("Expected event page link field, got %v", e.Fields)
			}
		})
	}
}

func TestSendEmptyURLIsNoop(t *testing.T) {
	sender := NewDiscordSender("http://localhost:3324")
	if err := sender.Send("", "create", EventSummary{ID: "evt1", Title: "T"}); err != nil {
		t.Errorf("Expected nil error for empty webhook URL, got %v", err)
	}
}

func TestSendNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	sender := NewDiscordSender("http://localhost:3324")
	err := sender.Send(server.URL, "create", EventSummary{ID: "evt1", Title: "T"})
	if err == nil {
		t.Fatal("Expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("Expected status in error, got %v", err)
	}
}

func TestSendUnknownKindFallsBackToCreate(t *testing.T) {
	payload := capturePayload(t, "bogus", EventSummary{ID: "evt1", Title: "T"})
	if payload.Embeds[0].Color != colorCreate {
		t.Errorf("Expected create color for unknown kind, got %#x", payload.Embeds[0].Color)
	}
}
