// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/meetgrid/meetgrid/models"
	"github.com/meetgrid/meetgrid/realtime"
	"github.com/meetgrid/meetgrid/testutil"
)

func TestGetRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, realtime.NewHub(), newFakeSender())
	eventID, adminToken := testutil.CreateTestEvent(t, db)
	slotIDs := testutil.CreateTestSlots(t, db, eventID, testSlotStarts(4))

	alice := testutil.CreateTestResponse(t, db, eventID, "Alice")
	bob := testutil.CreateTestResponse(t, db, eventID, "Bob")
	testutil.SetTestAvailability(t, db, alice, slotIDs[:3])
	testutil.SetTestAvailability(t, db, bob, slotIDs[1:3])

	t.Run("requires admin token", func(t *testing.T) {
		req := testutil.MakeRequest("GET",
			"/events/"+eventID+"/range?start="+slotIDs[0]+"&end="+slotIDs[2], nil, nil)
		req.SetPathValue("id", eventID)
		w := httptest.NewRecorder()

		handler.GetRange(w, req)
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("resolves range with match stats", func(t *testing.T) {
		req := testutil.MakeRequest("GET",
			"/events/"+eventID+"/range?token="+adminToken+"&start="+slotIDs[0]+"&end="+slotIDs[2], nil, nil)
		req.SetPathValue("id", eventID)
		w := httptest.NewRecorder()

		handler.GetRange(w, req)
		testutil.AssertStatus(t, w, 200)

		var resp models.RangeResponse
		testutil.AssertJSON(t, w, &resp)

		if len(resp.SlotIDs) != 3 {
			t.Fatalf("Expected 3 slots, got %d", len(resp.SlotIDs))
		}
		if resp.StartSlotID != slotIDs[0] || resp.EndSlotID != slotIDs[2] {
			t.Errorf("Unexpected boundaries: %s..%s", resp.StartSlotID, resp.EndSlotID)
		}
		// Slot 0 only has Alice, so the intersection is just her
		if resp.MinCount != 1 {
			t.Errorf("Expected min count 1, got %d", resp.MinCount)
		}
		if resp.PerfectMatchCount != 1 {
			t.Fatalf("Expected 1 perfect match, got %d", resp.PerfectMatchCount)
		}
		if resp.PerfectMatch[0].Name != "Alice" {
			t.Errorf("Expected Alice as perfect match, got %s", resp.PerfectMatch[0].Name)
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		req := testutil.MakeRequest("GET",
			"/events/"+eventID+"/range?token="+adminToken+"&start=nope&end="+slotIDs[0], nil, nil)
		req.SetPathValue("id", eventID)
		w := httptest.NewRecorder()

		handler.GetRange(w, req)
		testutil.AssertStatus(t, w, 400)
	})

	t.Run("missing query params", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/events/"+eventID+"/range?token="+adminToken, nil, nil)
		req.SetPathValue("id", eventID)
		w := httptest.NewRecorder()

		handler.GetRange(w, req)
		testutil.AssertStatus(t, w, 400)
	})
}

func TestFinalize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sender := newFakeSender()
	handler := NewAdminHandler(db, realtime.NewHub(), sender)
	eventID, adminToken := testutil.CreateTestEvent(t, db)
	slotIDs := testutil.CreateTestSlots(t, db, eventID, testSlotStarts(4))
	testutil.SetEventWebhook(t, db, eventID, "https://discord.test/hook", nil)

	doFinalize := func(token, startID, endID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/events/"+eventID+"/finalize?token="+token,
			models.FinalizeRequest{StartSlotID: startID, EndSlotID: endID}, nil)
		req.SetPathValue("id", eventID)
		w := httptest.NewRecorder()
		handler.Finalize(w, req)
		return w
	}

	t.Run("requires admin token", func(t *testing.T) {
		w := doFinalize("wrong", slotIDs[0], slotIDs[2])
		testutil.AssertStatus(t, w, 401)

		var confirmed *time.Time
		if err := db.QueryRow("SELECT confirmed_start_at FROM events WHERE id = $1", eventID).Scan(&confirmed); err != nil {
			t.Fatalf("Failed to query event: %v", err)
		}
		if confirmed != nil {
			t.Error("Expected no confirmation after failed auth")
		}
	})

	t.Run("end extends one interval past the end slot", func(t *testing.T) {
		// Slots start 10:00 at 30 minute steps; range [0,2] confirms
		// 10:00-11:30.
		w := doFinalize(adminToken, slotIDs[0], slotIDs[2])
		testutil.AssertStatus(t, w, 200)

		var resp models.FinalizeResponse
		testutil.AssertJSON(t, w, &resp)

		wantStart := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2026, 1, 5, 11, 30, 0, 0, time.UTC)
		if !resp.ConfirmedStartAt.Equal(wantStart) {
			t.Errorf("Expected start %v, got %v", wantStart, resp.ConfirmedStartAt)
		}
		if !resp.ConfirmedEndAt.Equal(wantEnd) {
			t.Errorf("Expected end %v, got %v", wantEnd, resp.ConfirmedEndAt)
		}
		if resp.Kind != models.NotifyFinalize {
			t.Errorf("Expected kind finalize, got %s", resp.Kind)
		}

		// First finalization fires the confirmed notification
		select {
		case <-sender.done:
		case <-time.After(time.Second):
			t.Fatal("Expected a notification")
		}
		sends := sender.all()
		if sends[len(sends)-1].kind != models.NotifyFinalize {
			t.Errorf("Expected finalize notification, got %s", sends[len(sends)-1].kind)
		}
	})

	t.Run("refinalize is an update", func(t *testing.T) {
		w := doFinalize(adminToken, slotIDs[1], slotIDs[3])
		testutil.AssertStatus(t, w, 200)

		var resp models.FinalizeResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Kind != models.NotifyUpdate {
			t.Errorf("Expected kind update, got %s", resp.Kind)
		}

		select {
		case <-sender.done:
		case <-time.After(time.Second):
			t.Fatal("Expected an update notification")
		}
		sends := sender.all()
		if sends[len(sends)-1].kind != models.NotifyUpdate {
			t.Errorf("Expected update notification, got %s", sends[len(sends)-1].kind)
		}
	})

	t.Run("reversed boundaries are swapped", func(t *testing.T) {
		w := doFinalize(adminToken, slotIDs[3], slotIDs[1])
		testutil.AssertStatus(t, w, 200)

		var resp models.FinalizeResponse
		testutil.AssertJSON(t, w, &resp)

		if !resp.ConfirmedStartAt.Before(resp.ConfirmedEndAt) {
			t.Error("Expected start before end after swap")
		}
		wantStart := time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC)
		if !resp.ConfirmedStartAt.Equal(wantStart) {
			t.Errorf("Expected start %v, got %v", wantStart, resp.ConfirmedStartAt)
		}
	})

	t.Run("single slot range", func(t *testing.T) {
		w := doFinalize(adminToken, slotIDs[0], slotIDs[0])
		testutil.AssertStatus(t, w, 200)

		var resp models.FinalizeResponse
		testutil.AssertJSON(t, w, &resp)
		if got := resp.ConfirmedEndAt.Sub(resp.ConfirmedStartAt); got != 30*time.Minute {
			t.Errorf("Expected one interval span, got %v", got)
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		w := doFinalize(adminToken, "nope", slotIDs[0])
		testutil.AssertStatus(t, w, 400)
	})
}

// Finalization notifications respect the per-event notify switches.
func TestFinalizeNotifyDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sender := newFakeSender()
	handler := NewAdminHandler(db, realtime.NewHub(), sender)
	eventID, adminToken := testutil.CreateTestEvent(t, db)
	slotIDs := testutil.CreateTestSlots(t, db, eventID, testSlotStarts(2))
	testutil.SetEventWebhook(t, db, eventID, "https://discord.test/hook", nil)

	if _, err := db.Exec("UPDATE events SET is_notify_confirmed = FALSE WHERE id = $1", eventID); err != nil {
		t.Fatalf("Failed to update event: %v", err)
	}

	req := testutil.MakeRequest("POST", "/events/"+eventID+"/finalize?token="+adminToken,
		models.FinalizeRequest{StartSlotID: slotIDs[0], EndSlotID: slotIDs[1]}, nil)
	req.SetPathValue("id", eventID)
	w := httptest.NewRecorder()
	handler.Finalize(w, req)
	testutil.AssertStatus(t, w, 200)

	select {
	case <-sender.done:
		t.Error("Expected no notification with is_notify_confirmed off")
	case <-time.After(100 * time.Millisecond):
	}
}
