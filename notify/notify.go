// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EventSummary is the slice of event state a notification needs.
type EventSummary struct {
	ID               string
	Title            string
	Description      string
	ConfirmedStartAt *time.Time
	ConfirmedEndAt   *time.Time
}

// Sender delivers an event notification to a webhook. Implementations
// must be safe for concurrent use; callers treat failures as
// log-and-continue, never as operation failures.
type Sender interface {
	Send(webhookURL, kind string, ev EventSummary) error
}

// Embed colors per notification kind
const (
	colorCreate   = 0x10B981 // emerald
	colorFinalize = 0xEC4899 // pink
	colorUpdate   = 0xF59E0B // amber
	colorRemind   = 0x3B82F6 // blue
)

type embedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
	Footer      struct {
		Text string `json:"text"`
	} `json:"footer"`
	Timestamp string `json:"timestamp"`
}

type webhookPayload struct {
	Username string  `json:"username"`
	Embeds   []embed `json:"embeds"`
}

// DiscordSender posts notifications as Discord webhook embeds.
type DiscordSender struct {
	client  *http.Client
	baseURL string
}

// NewDiscordSender creates a sender. baseURL is the public origin used
// to build event page links in the payload.
func NewDiscordSender(baseURL string) *DiscordSender {
	return &DiscordSender{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
	}
}

// Send builds and posts the embed for the given kind. A non-2xx reply
// is an error; the caller decides whether that matters (it usually only
// gets logged).
func (s *DiscordSender) Send(webhookURL, kind string, ev EventSummary) error {
	if webhookURL == "" {
		return nil
	}

	e := s.buildEmbed(kind, ev)
	payload := webhookPayload{
		Username: "MeetGrid",
		Embeds:   []embed{e},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	resp, err := s.client.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook post failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *DiscordSender) buildEmbed(kind string, ev EventSummary) embed {
	var e embed
	e.Footer.Text = "MeetGrid - group scheduling"
	e.Timestamp = time.Now().UTC().Format(time.RFC3339)

	eventURL := s.baseURL + "/events/" + ev.ID

	switch kind {
	case "finalize":
		e.Title = "Schedule confirmed"
		e.Color = colorFinalize
		e.Description = fmt.Sprintf("**%s**\n\nThe meeting time has been decided. Please add it to your calendar.", ev.Title)
		if ev.ConfirmedStartAt != nil && ev.ConfirmedEndAt != nil {
			e.Fields = append(e.Fields, embedField{
				Name:  "Confirmed time",
				Value: formatInterval(*ev.ConfirmedStartAt, *ev.ConfirmedEndAt),
			})
		}
		e.Fields = append(e.Fields, embedField{Name: "Event page", Value: eventURL})

	case "update":
		e.Title = "Schedule changed"
		e.Color = colorUpdate
		e.Description = fmt.Sprintf("**%s**\n\nThe confirmed time was rescheduled. Please check the new time.", ev.Title)
		if ev.ConfirmedStartAt != nil && ev.ConfirmedEndAt != nil {
			e.Fields = append(e.Fields, embedField{
				Name:  "New time",
				Value: formatInterval(*ev.ConfirmedStartAt, *ev.ConfirmedEndAt),
			})
		}
		e.Fields = append(e.Fields, embedField{Name: "Event page", Value: eventURL})

	case "remind":
		e.Title = "Response deadline approaching"
		e.Color = colorRemind
		e.Description = fmt.Sprintf("**%s**\n\nIf you haven't filled in your availability yet, please do so soon.", ev.Title)
		e.Fields = append(e.Fields, embedField{Name: "URL", Value: eventURL})

	default: // "create" and test sends
		e.Title = "New event created"
		e.Color = colorCreate
		e.Description = fmt.Sprintf("**%s**\n\nPlease fill in your availability!", ev.Title)
		e.Fields = append(e.Fields, embedField{Name: "URL", Value: eventURL})
		if ev.Description != "" {
			e.Fields = append(e.Fields, embedField{Name: "Notes", Value: ev.Description})
		}
	}

	return e
}

func formatInterval(start, end time.Time) string {
	return fmt.Sprintf("**%s**\n%s - %s",
		start.Format("Mon, Jan 2 2006"),
		start.Format("15:04"),
		end.Format("15:04"),
	)
}
